package ecs

import "reflect"

// 泛型访问接口，避免调用方到处写 reflect.TypeOf 和类型断言。
// T 通常是组件指针类型，例如 *components.TransformComponent。

// AddComponent 为实体添加组件（泛型版本）
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.AddComponent(id, component)
}

// GetComponent 获取实体的 T 类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, reflect.TypeOf(zero))
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 检查实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	var zero T
	return em.HasComponent(id, reflect.TypeOf(zero))
}

// RemoveComponent 移除实体的 T 类型组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	var zero T
	em.RemoveComponent(id, reflect.TypeOf(zero))
}

// GetEntitiesWith1 查询拥有 T1 组件的实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	var c1 T1
	return em.GetEntitiesWith(reflect.TypeOf(c1))
}

// GetEntitiesWith2 查询同时拥有 T1、T2 组件的实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	var c1 T1
	var c2 T2
	return em.GetEntitiesWith(reflect.TypeOf(c1), reflect.TypeOf(c2))
}

// GetEntitiesWith3 查询同时拥有 T1、T2、T3 组件的实体
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	var c1 T1
	var c2 T2
	var c3 T3
	return em.GetEntitiesWith(reflect.TypeOf(c1), reflect.TypeOf(c2), reflect.TypeOf(c3))
}
