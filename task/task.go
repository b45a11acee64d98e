package task

import (
	"sync"

	"github.com/drivora/sandbox-go/clock"
	"github.com/drivora/sandbox-go/entity/actor"
	"github.com/drivora/sandbox-go/entity/lane"
	"github.com/drivora/sandbox-go/entity/signal"
	"github.com/drivora/sandbox-go/utils/config"
)

// 场景状态串
const (
	ScenarioRunning = "running" // 场景推进中
	ScenarioWaiting = "waiting" // 等待开始或等待actor就绪
)

// WorldSnapshot 整个沙盒的一帧快照
type WorldSnapshot struct {
	Time            clock.Snapshot             `json:"time"`             // 时钟快照
	ScenarioRunning bool                       `json:"scenario_running"` // 场景是否在推进
	Actors          map[string]actor.Snapshot  `json:"actors"`           // 全部actor快照
	Signals         map[string]signal.Snapshot `json:"signals"`          // 全部信号灯快照
}

// Context 沙盒任务上下文
// 功能：包含一次沙盒任务的所有变量和状态，替代原来的全局变量
// 说明：一把互斥锁串行化全部公共操作与tick循环，
// 管理器不对外暴露，外部只通过公共操作访问
type Context struct {
	// 串行化公共操作与tick循环
	mtx sync.Mutex

	// 启动配置
	config config.Config
	// 缓存文件夹
	cacheDir string

	// 时钟
	clock *clock.Clock
	// actor管理器
	actorManager *actor.ActorManager
	// 信号灯管理器
	signalManager *signal.SignalManager
	// 车道管理器
	laneManager *lane.LaneManager

	// 场景是否已开始
	running bool
	// 就绪闸门，全部actor就绪后锁存，仅Reset清除
	actorReady bool
	// 场景推进超时（秒），仅记录上报，由外部调用方执行
	timeout float64

	// tick循环是否在运行
	loopRunning bool
	// 已发出停止指令
	stopping bool
	// 停止指令channel
	stopCh chan struct{}
	// 循环退出channel
	doneCh chan struct{}
}

// NewContext 创建新的沙盒任务上下文
// 功能：初始化沙盒的所有组件和配置
// 参数：c-配置对象，cacheDir-路网缓存目录
// 返回：初始化完成的Context实例
// 算法说明：
// 1. 填充缺省控制参数
// 2. 按目标帧率创建时钟
// 3. 创建actor、信号灯、车道管理器，此时路网为空，
// 需要调用LoadMap后才能使用地图相关操作
func NewContext(c config.Config, cacheDir string) *Context {
	c.FillDefaults()
	return &Context{
		config:        c,
		cacheDir:      cacheDir,
		clock:         clock.New(c.Control.FPS),
		actorManager:  actor.NewManager(),
		signalManager: signal.NewManager(),
		laneManager:   lane.NewManager(),
		timeout:       c.Control.Timeout,
	}
}

// Reset 复位沙盒
// 功能：清空全部actor与信号灯，时钟归零，场景回到等待状态
// 说明：已加载的路网与超时设置保留
func (ctx *Context) Reset() {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	ctx.resetLocked()
}

func (ctx *Context) resetLocked() {
	ctx.actorManager.Reset()
	ctx.signalManager.Reset()
	ctx.clock.Reset()
	ctx.running = false
	ctx.actorReady = false
}
