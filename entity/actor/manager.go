package actor

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/drivora/sandbox-go/entity"
)

// ActorManager actor注册表
// 说明：data用于按ID查找，actors保持插入顺序以保证tick顺序确定
type ActorManager struct {
	data   map[string]Actor
	actors []Actor
}

// NewManager 创建空的actor注册表
func NewManager() *ActorManager {
	return &ActorManager{data: make(map[string]Actor)}
}

// Add 注册actor，ID重复时报conflict
func (m *ActorManager) Add(a Actor) error {
	if _, ok := m.data[a.ID()]; ok {
		return fmt.Errorf("actor %s: %w", a.ID(), entity.ErrConflict)
	}
	m.data[a.ID()] = a
	m.actors = append(m.actors, a)
	return nil
}

// Remove 注销actor，不存在时报not found
func (m *ActorManager) Remove(id string) error {
	if _, ok := m.data[id]; !ok {
		return fmt.Errorf("actor %s: %w", id, entity.ErrNotFound)
	}
	delete(m.data, id)
	m.actors = lo.Filter(m.actors, func(a Actor, _ int) bool { return a.ID() != id })
	return nil
}

// Get 获取指定ID的actor
func (m *ActorManager) Get(id string) Actor {
	a, ok := m.data[id]
	if !ok {
		log.Panicf("no id %s in actor data", id)
	}
	return a
}

// GetOrError 获取指定ID的actor，不存在时返回error
func (m *ActorManager) GetOrError(id string) (Actor, error) {
	a, ok := m.data[id]
	if !ok {
		return nil, fmt.Errorf("actor %s: %w", id, entity.ErrNotFound)
	}
	return a, nil
}

// Actors 返回全部actor（插入顺序）
func (m *ActorManager) Actors() []Actor {
	return m.actors
}

// Len 返回actor数量
func (m *ActorManager) Len() int {
	return len(m.actors)
}

// AllReady 判断是否全部actor就绪，没有actor时为false
func (m *ActorManager) AllReady() bool {
	if len(m.actors) == 0 {
		return false
	}
	return lo.EveryBy(m.actors, func(a Actor) bool {
		return a.Status() == entity.StatusReady
	})
}

// Update 按插入顺序推进全部actor一个步长
func (m *ActorManager) Update(dt float64) {
	for _, a := range m.actors {
		a.Tick(dt)
	}
}

// Snapshots 导出全部actor的状态
func (m *ActorManager) Snapshots() map[string]Snapshot {
	return lo.SliceToMap(m.actors, func(a Actor) (string, Snapshot) {
		return a.ID(), a.Snapshot()
	})
}

// Reset 清空注册表
func (m *ActorManager) Reset() {
	m.data = make(map[string]Actor)
	m.actors = nil
}
