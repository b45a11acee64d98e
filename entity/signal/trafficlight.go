package signal

// 快照中上报的类别
const (
	Category    = "signal"
	SubCategory = "traffic_light"
)

// 信号灯状态串
const (
	StateGreen   = "green"
	StateYellow  = "yellow"
	StateRed     = "red"
	StateUnknown = "unknown"
)

// Snapshot 信号灯的序列化状态
type Snapshot struct {
	ID          string  `json:"id"`           // 信号灯ID
	Category    string  `json:"category"`     // 固定为signal
	SubCategory string  `json:"sub_category"` // 固定为traffic_light
	State       string  `json:"state"`        // 当前状态串
	StateTime   float64 `json:"state_time"`   // 当前状态持续时间（秒）
}

// TrafficLight 信号灯
// 说明：状态串不参与运动学，只累计当前状态的持续时间；
// 状态变化时计时清零，设置同值状态不清零
type TrafficLight struct {
	id        string
	state     string
	stateTime float64
}

// New 创建信号灯，state为空时默认green
func New(id string, state string) *TrafficLight {
	if state == "" {
		state = StateGreen
	}
	return &TrafficLight{id: id, state: state}
}

// ID 返回信号灯ID
func (l *TrafficLight) ID() string { return l.id }

// State 返回当前状态串
func (l *TrafficLight) State() string { return l.state }

// StateTime 返回当前状态持续时间（秒）
func (l *TrafficLight) StateTime() float64 { return l.stateTime }

// SetState 设置状态串，状态变化时计时清零
func (l *TrafficLight) SetState(state string) {
	if l.state != state {
		l.state = state
		l.stateTime = 0
	}
}

// Tick 推进一个步长，累计状态持续时间
func (l *TrafficLight) Tick(dt float64) {
	l.stateTime += dt
}

// Snapshot 导出当前状态
func (l *TrafficLight) Snapshot() Snapshot {
	return Snapshot{
		ID:          l.id,
		Category:    Category,
		SubCategory: SubCategory,
		State:       l.state,
		StateTime:   l.stateTime,
	}
}
