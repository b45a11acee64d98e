package task

import (
	"fmt"

	"github.com/drivora/sandbox-go/clock"
	"github.com/drivora/sandbox-go/entity"
	"github.com/drivora/sandbox-go/entity/actor"
	"github.com/drivora/sandbox-go/entity/signal"
	"github.com/drivora/sandbox-go/utils/input"
)

// StartScenario 开始场景推进
// 说明：实际推进还需等待全部actor就绪
func (ctx *Context) StartScenario() {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	ctx.running = true
}

// StopScenario 暂停场景推进
// 说明：actor与信号灯状态保留，时钟继续推进
func (ctx *Context) StopScenario() {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	ctx.running = false
}

// ScenarioStatus 获取场景状态串
// 返回：场景已开始且全部actor就绪时为running，否则为waiting
func (ctx *Context) ScenarioStatus() string {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	if ctx.running && ctx.actorReady {
		return ScenarioRunning
	}
	return ScenarioWaiting
}

// CreateActor 按类别创建actor并注册
// 功能：按蓝图实例化actor，初始位姿由平面坐标与朝向角给出
// 参数：id-actor唯一ID，category-完整类别键，x/y/z-初始位置，yaw-初始朝向角
// 返回：错误信息
// 说明：信号灯类别不参与运动学更新，不能按actor创建，报not found；
// ID重复报conflict
func (ctx *Context) CreateActor(id, category string, x, y, z, yaw float64) error {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	a, err := actor.New(category, id, entity.Location{X: x, Y: y, Z: z, Yaw: yaw})
	if err != nil {
		return err
	}
	return ctx.actorManager.Add(a)
}

// CreateSignal 按类别创建信号灯并注册
// 参数：id-信号灯唯一ID，category-完整类别键，state-初始状态串，空串为green
// 返回：错误信息
// 说明：非信号灯类别报invalid input，ID重复报conflict
func (ctx *Context) CreateSignal(id, category, state string) error {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	bp, err := actor.GetBlueprint(category)
	if err != nil {
		return err
	}
	if bp.Category != actor.CategorySignal {
		return fmt.Errorf("actor category %s is not a signal: %w", category, entity.ErrInvalidInput)
	}
	return ctx.signalManager.Add(signal.New(id, state))
}

// RemoveActor 注销actor
func (ctx *Context) RemoveActor(id string) error {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.actorManager.Remove(id)
}

// RemoveSignal 注销信号灯
func (ctx *Context) RemoveSignal(id string) error {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.signalManager.Remove(id)
}

// SetActorStatus 设置actor就绪状态串
// 说明：状态串不做枚举校验，非ready的任何值都视为未就绪
func (ctx *Context) SetActorStatus(id, status string) error {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	a, err := ctx.actorManager.GetOrError(id)
	if err != nil {
		return err
	}
	a.SetStatus(status)
	return nil
}

// SetStaticLocation 重设静态actor的位姿
// 说明：仅静态actor支持直接改位姿，其余类别报invalid input
func (ctx *Context) SetStaticLocation(id string, loc entity.Location) error {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	a, err := ctx.actorManager.GetOrError(id)
	if err != nil {
		return err
	}
	r, ok := a.(actor.Relocatable)
	if !ok {
		return fmt.Errorf("actor %s does not support relocation: %w", id, entity.ErrInvalidInput)
	}
	r.SetLocation(loc)
	return nil
}

// SetSignalState 设置信号灯状态串
func (ctx *Context) SetSignalState(id, state string) error {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	l, err := ctx.signalManager.GetOrError(id)
	if err != nil {
		return err
	}
	l.SetState(state)
	return nil
}

// ApplyVehicleControl 下发车辆控制指令
// 功能：校验指令定义域后写入车辆，下一帧生效
// 参数：id-actor ID，c-控制指令
// 返回：错误信息
// 说明：throttle/brake在[0, 1]、steer在[-1, 1]之外报invalid input；
// 非自行车模型车辆报invalid input
func (ctx *Context) ApplyVehicleControl(id string, c actor.VehicleControl) error {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	a, err := ctx.actorManager.GetOrError(id)
	if err != nil {
		return err
	}
	v, ok := a.(actor.VehicleControlled)
	if !ok {
		return fmt.Errorf("actor %s does not accept vehicle control: %w", id, entity.ErrInvalidInput)
	}
	if c.Throttle < 0 || c.Throttle > 1 {
		return fmt.Errorf("invalid control command: throttle %v out of [0, 1]: %w",
			c.Throttle, entity.ErrInvalidInput)
	}
	if c.Brake < 0 || c.Brake > 1 {
		return fmt.Errorf("invalid control command: brake %v out of [0, 1]: %w",
			c.Brake, entity.ErrInvalidInput)
	}
	if c.Steer < -1 || c.Steer > 1 {
		return fmt.Errorf("invalid control command: steer %v out of [-1, 1]: %w",
			c.Steer, entity.ErrInvalidInput)
	}
	v.SetVehicleControl(c)
	return nil
}

// ApplyWalkerControl 下发期望加速度与期望朝向指令
// 说明：行人与完美跟踪车辆都接受该指令，其余类别报invalid input；
// 加速度在更新时按蓝图限幅，朝向角在更新时归一化，不做定义域校验
func (ctx *Context) ApplyWalkerControl(id string, c actor.MotionControl) error {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	a, err := ctx.actorManager.GetOrError(id)
	if err != nil {
		return err
	}
	m, ok := a.(actor.MotionControlled)
	if !ok {
		return fmt.Errorf("actor %s does not accept motion control: %w", id, entity.ErrInvalidInput)
	}
	m.SetMotionControl(c)
	return nil
}

// GetActor 获取单个actor的快照
func (ctx *Context) GetActor(id string) (actor.Snapshot, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	a, err := ctx.actorManager.GetOrError(id)
	if err != nil {
		return actor.Snapshot{}, err
	}
	return a.Snapshot(), nil
}

// GetSignal 获取单个信号灯的快照
func (ctx *Context) GetSignal(id string) (signal.Snapshot, error) {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	l, err := ctx.signalManager.GetOrError(id)
	if err != nil {
		return signal.Snapshot{}, err
	}
	return l.Snapshot(), nil
}

// GetBlueprint 获取类别蓝图
func (ctx *Context) GetBlueprint(category string) (actor.Blueprint, error) {
	return actor.GetBlueprint(category)
}

// GetSnapshot 获取整个沙盒的一帧快照
func (ctx *Context) GetSnapshot() WorldSnapshot {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return WorldSnapshot{
		Time:            ctx.clock.Snapshot(),
		ScenarioRunning: ctx.running && ctx.actorReady,
		Actors:          ctx.actorManager.Snapshots(),
		Signals:         ctx.signalManager.Snapshots(),
	}
}

// GetTime 获取时钟快照
func (ctx *Context) GetTime() clock.Snapshot {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.clock.Snapshot()
}

// Timeout 获取场景推进超时（秒）
func (ctx *Context) Timeout() float64 {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.timeout
}

// SetTimeout 设置场景推进超时（秒）
// 说明：超时仅记录上报，由外部调用方执行，非正值报invalid input
func (ctx *Context) SetTimeout(seconds float64) error {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	if seconds <= 0 {
		return fmt.Errorf("timeout %v must be positive: %w", seconds, entity.ErrInvalidInput)
	}
	ctx.timeout = seconds
	return nil
}

// LoadMap 按名字加载路网
// 功能：解析数据来源并替换当前路网
// 参数：name-路网名
// 返回：错误信息
// 算法说明：
// 1. 场景推进中不允许换图，报conflict
// 2. 同名路网已加载时跳过
// 3. 经file>cache>MongoDB加载数据并交给车道管理器校验装载，
// 失败时保留当前路网
func (ctx *Context) LoadMap(name string) error {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	if ctx.running && ctx.actorReady {
		return fmt.Errorf("cannot load map while scenario is advancing: %w", entity.ErrConflict)
	}
	if name == ctx.laneManager.Name() && ctx.laneManager.Len() > 0 {
		log.Infof("network %s is already loaded, skip", name)
		return nil
	}
	data, err := input.Load(ctx.config, name, ctx.cacheDir)
	if err != nil {
		return err
	}
	return ctx.laneManager.Load(data)
}

// CurrentMapName 获取当前路网名，未加载时为空串
func (ctx *Context) CurrentMapName() string {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	return ctx.laneManager.Name()
}
