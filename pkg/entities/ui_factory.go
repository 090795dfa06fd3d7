package entities

import (
	"fmt"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/ecs"
	"github.com/decker502/birthdaycard/pkg/typewriter"
)

// NewTextSequenceEntity 创建文字序列实体（尚未开始）
func NewTextSequenceEntity(em *ecs.EntityManager, kind components.TextSequenceKind, seq config.SequenceConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	sequencer := typewriter.New(typewriter.FromSequenceConfig(seq))
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TextSequenceComponent{
		Kind:      kind,
		Sequencer: sequencer,
		State:     sequencer.Reset(),
	})
	return id, nil
}

// NewHintEntity 创建操作提示实体（默认隐藏）
func NewHintEntity(em *ecs.EntityManager, text string) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.HintTextComponent{Text: text})
	return id, nil
}

// NewPhotoCardEntity 创建照片卡片实体（默认收起）
func NewPhotoCardEntity(em *ecs.EntityManager, card config.CardConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PhotoCardComponent{
		Settled:  true,
		Title:    card.Title,
		Captions: append([]string(nil), card.Captions...),
	})
	return id, nil
}
