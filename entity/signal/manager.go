package signal

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/drivora/sandbox-go/entity"
)

// SignalManager 信号灯注册表
// 说明：data用于按ID查找，lights保持插入顺序以保证tick顺序确定
type SignalManager struct {
	data   map[string]*TrafficLight
	lights []*TrafficLight
}

// NewManager 创建空的信号灯注册表
func NewManager() *SignalManager {
	return &SignalManager{data: make(map[string]*TrafficLight)}
}

// Add 注册信号灯，ID重复时报conflict
func (m *SignalManager) Add(l *TrafficLight) error {
	if _, ok := m.data[l.ID()]; ok {
		return fmt.Errorf("signal %s: %w", l.ID(), entity.ErrConflict)
	}
	m.data[l.ID()] = l
	m.lights = append(m.lights, l)
	return nil
}

// Remove 注销信号灯，不存在时报not found
func (m *SignalManager) Remove(id string) error {
	if _, ok := m.data[id]; !ok {
		return fmt.Errorf("signal %s: %w", id, entity.ErrNotFound)
	}
	delete(m.data, id)
	m.lights = lo.Filter(m.lights, func(l *TrafficLight, _ int) bool { return l.ID() != id })
	return nil
}

// Get 获取指定ID的信号灯
func (m *SignalManager) Get(id string) *TrafficLight {
	l, ok := m.data[id]
	if !ok {
		log.Panicf("no id %s in signal data", id)
	}
	return l
}

// GetOrError 获取指定ID的信号灯，不存在时返回error
func (m *SignalManager) GetOrError(id string) (*TrafficLight, error) {
	l, ok := m.data[id]
	if !ok {
		return nil, fmt.Errorf("signal %s: %w", id, entity.ErrNotFound)
	}
	return l, nil
}

// Lights 返回全部信号灯（插入顺序）
func (m *SignalManager) Lights() []*TrafficLight {
	return m.lights
}

// Len 返回信号灯数量
func (m *SignalManager) Len() int {
	return len(m.lights)
}

// Update 按插入顺序推进全部信号灯一个步长
func (m *SignalManager) Update(dt float64) {
	for _, l := range m.lights {
		l.Tick(dt)
	}
}

// Snapshots 导出全部信号灯的状态
func (m *SignalManager) Snapshots() map[string]Snapshot {
	return lo.SliceToMap(m.lights, func(l *TrafficLight) (string, Snapshot) {
		return l.ID(), l.Snapshot()
	})
}

// Reset 清空注册表
func (m *SignalManager) Reset() {
	m.data = make(map[string]*TrafficLight)
	m.lights = nil
}
