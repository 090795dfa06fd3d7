package utils

import (
	"github.com/chewxy/math32"
)

// 坐标系统说明
//
// 世界坐标：右手系，Y 轴向上，单位与配置文件一致。
// 相机固定在 Position，沿 -Z 方向水平观察，不旋转；
// 屏幕坐标：原点在左上角，Y 轴向下，单位像素。
//
// 投影公式（针孔相机）：
//
//	depth   = camera.Z - world.Z
//	scale   = focalLength / depth
//	screenX = width/2  + (world.X - camera.X) * scale
//	screenY = height/2 - (world.Y - camera.Y) * scale
//
// 绘制使用 float32（与 ebiten vector 一致），投影计算也在 float32 下完成。

// nearPlane 距离相机小于此值的点不投影
const nearPlane = 0.05

// Point2 屏幕坐标点
type Point2 struct {
	X, Y float32
}

// Camera 固定针孔相机
type Camera struct {
	Position    Vec3
	FocalLength float64
	ScreenW     int
	ScreenH     int
}

// Project 把世界坐标投影到屏幕
//
// 返回：
//   - p: 屏幕坐标
//   - scale: 该深度下 1 个世界单位对应的像素数
//   - ok: 点在近平面之后（可见）时为 true
func (c Camera) Project(world Vec3) (p Point2, scale float32, ok bool) {
	depth := float32(c.Position.Z - world.Z)
	if depth <= nearPlane {
		return Point2{}, 0, false
	}

	scale = float32(c.FocalLength) / depth
	p.X = float32(c.ScreenW)/2 + float32(world.X-c.Position.X)*scale
	p.Y = float32(c.ScreenH)/2 - float32(world.Y-c.Position.Y)*scale
	return p, scale, true
}

// ProjectCircle 投影一个水平圆（平行于 XZ 平面），返回多边形顶点
// rotation 为绕 Y 轴的起始角度，用于让装饰点跟随蛋糕旋转
// 任一顶点不可见时 ok=false
func (c Camera) ProjectCircle(center Vec3, radius, rotation float64, segments int) ([]Point2, bool) {
	if segments < 3 {
		segments = 3
	}

	points := make([]Point2, 0, segments)
	for i := 0; i < segments; i++ {
		angle := float32(rotation) + 2*math32.Pi*float32(i)/float32(segments)
		offset := RotateY(Vec3{X: radius}, float64(angle))
		p, _, ok := c.Project(center.Add(offset))
		if !ok {
			return nil, false
		}
		points = append(points, p)
	}
	return points, true
}

// RotateY 绕 Y 轴旋转向量（右手系，角度为弧度）
func RotateY(v Vec3, angle float64) Vec3 {
	sin, cos := math32.Sincos(float32(angle))
	x, z := float32(v.X), float32(v.Z)
	return Vec3{
		X: float64(x*cos + z*sin),
		Y: v.Y,
		Z: float64(-x*sin + z*cos),
	}
}
