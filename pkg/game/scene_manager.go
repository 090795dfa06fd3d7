package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于在配置热加载后重新创建场景，避免 game 包依赖 scenes 包
type SceneFactory func() (Scene, error)

// SceneManager controls which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is closed if it implements Closer.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if closer, ok := sm.currentScene.(Closer); ok && sm.currentScene != scene {
		closer.Close()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Reload 用场景工厂重新创建场景
// 创建失败时保留当前场景并返回 false
func (sm *SceneManager) Reload() bool {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	scene, err := sm.sceneFactory()
	if err != nil {
		log.Printf("[SceneManager] 错误: 无法重新创建场景: %v", err)
		return false
	}

	sm.SwitchTo(scene)
	log.Printf("[SceneManager] 场景已重新加载")
	return true
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
