package entities

import (
	"fmt"
	"log"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/ecs"
	"github.com/decker502/birthdaycard/pkg/timeline"
	"github.com/decker502/birthdaycard/pkg/utils"
)

// 场景对象的几何尺寸（世界单位）
//
// 蛋糕位置是蛋糕中心：落地位置 0.9 时底面贴着桌面（0.25），顶面正好在蜡烛底座高度（1.55）。
// 桌子位置是桌面板底面；蜡烛位置是蜡烛底座。
const (
	CakeRadius = 1.2
	CakeHeight = 1.3

	TableHalfWidth = 3.2
	TableHalfDepth = 1.8
	TableThickness = 0.25
	TableLegHeight = 2.0

	CandleRadius      = 0.08
	CandleHeight      = 0.6
	CandleFlameHeight = 0.25
)

var (
	cakeColor   = utils.RGB{R: 240, G: 170, B: 190}
	cakeTrim    = utils.RGB{R: 255, G: 244, B: 230}
	tableColor  = utils.RGB{R: 120, G: 80, B: 50}
	tableTrim   = utils.RGB{R: 235, G: 225, B: 240}
	candleColor = utils.RGB{R: 250, G: 240, B: 200}
	candleTrim  = utils.RGB{R: 230, G: 90, B: 110}
)

// SceneObjects 三个受时间轴控制的实体
type SceneObjects struct {
	Cake   ecs.EntityID
	Table  ecs.EntityID
	Candle ecs.EntityID
}

// NewSceneObjects 按起始位姿创建蛋糕、桌子和蜡烛
func NewSceneObjects(em *ecs.EntityManager, start timeline.Poses) (SceneObjects, error) {
	var objs SceneObjects
	var err error

	if objs.Cake, err = NewCakeEntity(em, start.Cake); err != nil {
		return objs, err
	}
	if objs.Table, err = NewTableEntity(em, start.Table); err != nil {
		return objs, err
	}
	if objs.Candle, err = NewCandleEntity(em, start.Candle); err != nil {
		return objs, err
	}

	log.Printf("[entities] 创建场景对象: cake=%d table=%d candle=%d", objs.Cake, objs.Table, objs.Candle)
	return objs, nil
}

// NewCakeEntity 创建蛋糕实体
func NewCakeEntity(em *ecs.EntityManager, pose timeline.ObjectPose) (ecs.EntityID, error) {
	return newSceneObject(em, pose, components.SceneObjectComponent{
		Kind:  components.KindCake,
		Size:  utils.Vec3{X: CakeRadius, Y: CakeHeight, Z: CakeRadius},
		Color: cakeColor,
		Trim:  cakeTrim,
	})
}

// NewTableEntity 创建桌子实体
func NewTableEntity(em *ecs.EntityManager, pose timeline.ObjectPose) (ecs.EntityID, error) {
	return newSceneObject(em, pose, components.SceneObjectComponent{
		Kind:  components.KindTable,
		Size:  utils.Vec3{X: TableHalfWidth, Y: TableThickness, Z: TableHalfDepth},
		Color: tableColor,
		Trim:  tableTrim,
	})
}

// NewCandleEntity 创建蜡烛实体（初始点燃）
func NewCandleEntity(em *ecs.EntityManager, pose timeline.ObjectPose) (ecs.EntityID, error) {
	id, err := newSceneObject(em, pose, components.SceneObjectComponent{
		Kind:  components.KindCandle,
		Size:  utils.Vec3{X: CandleRadius, Y: CandleHeight, Z: CandleRadius},
		Color: candleColor,
		Trim:  candleTrim,
	})
	if err != nil {
		return 0, err
	}

	ecs.AddComponent(em, id, &components.CandleComponent{
		Lit:         true,
		FlameHeight: CandleFlameHeight,
		Flicker:     1,
	})
	return id, nil
}

func newSceneObject(em *ecs.EntityManager, pose timeline.ObjectPose, obj components.SceneObjectComponent) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: pose.Position,
		Rotation: pose.Rotation,
		Visible:  pose.Visible,
	})
	ecs.AddComponent(em, id, &obj)
	return id, nil
}
