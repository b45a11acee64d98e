package task

import (
	"flag"
	"time"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔帧数")
)

// shutdownTimeout 等待tick循环退出的最长时间
const shutdownTimeout = 2 * time.Second

// tick 推进一帧，每帧执行一次
// 功能：在锁内完成一帧的全部状态更新
// 算法说明：
// 1. 就绪闸门未锁存时重新检查全部actor是否就绪
// 2. 场景已开始且闸门锁存时，按dt=1/目标帧率依次推进
// 全部actor与全部信号灯，均按注册顺序
// 3. 时钟推进一帧，与场景是否推进无关
// 4. 心跳日志：定期输出帧数与逻辑时间
// 说明：帧内panic被恢复并记录，沙盒继续下一帧，
// 该帧的时钟推进被跳过
func (ctx *Context) tick() {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("tick failed at frame %d: %v", ctx.clock.Frame(), r)
		}
	}()

	if !ctx.actorReady {
		ctx.actorReady = ctx.actorManager.AllReady()
	}
	if ctx.running && ctx.actorReady {
		dt := ctx.clock.DT()
		ctx.actorManager.Update(dt)
		ctx.signalManager.Update(dt)
	}
	ctx.clock.Tick()

	if hb := int64(*heartBeatInterval); hb > 0 && ctx.clock.Frame()%hb == 0 {
		hour, minute, second := ctx.clock.GetHourMinuteSecond()
		log.Infof(
			"FRAME: %d(%d:%d:%.2f)",
			ctx.clock.Frame(),
			hour, minute, second,
		)
	}
}

// Step 手动推进一帧
// 说明：与tick循环互斥，供嵌入方在不启动循环时自行驱动沙盒
func (ctx *Context) Step() {
	ctx.tick()
}

// loop tick循环体
// 算法说明：
// 1. 每次迭代推进一帧并测量耗时
// 2. 按目标帧率补足周期剩余时间，超时帧不补觉也不追帧
// 3. 收到停止指令后退出
func (ctx *Context) loop(stopCh, doneCh chan struct{}) {
	defer func() {
		ctx.mtx.Lock()
		ctx.loopRunning = false
		ctx.stopping = false
		ctx.mtx.Unlock()
		close(doneCh)
	}()

	period := time.Duration(float64(time.Second) / ctx.config.Control.FPS)
	for {
		select {
		case <-stopCh:
			return
		default:
		}
		start := time.Now()
		ctx.tick()
		if sleep := period - time.Since(start); sleep > 0 {
			select {
			case <-stopCh:
				return
			case <-time.After(sleep):
			}
		}
	}
}

// Start 启动tick循环
// 功能：在独立goroutine中按目标帧率持续推进沙盒
// 说明：重复启动只告警，不产生第二个循环
func (ctx *Context) Start() {
	ctx.mtx.Lock()
	defer ctx.mtx.Unlock()
	if ctx.loopRunning {
		log.Warn("Simulator already running.")
		return
	}
	ctx.loopRunning = true
	ctx.stopping = false
	ctx.stopCh = make(chan struct{})
	ctx.doneCh = make(chan struct{})
	go ctx.loop(ctx.stopCh, ctx.doneCh)
}

// Run 启动tick循环并阻塞到循环退出
func (ctx *Context) Run() {
	ctx.Start()
	ctx.mtx.Lock()
	doneCh := ctx.doneCh
	ctx.mtx.Unlock()
	<-doneCh
	log.Infof("engine complete")
}

// Shutdown 停止tick循环并复位沙盒
// 功能：发出停止指令，等待循环退出后复位
// 算法说明：
// 1. 循环未运行时直接复位
// 2. 发出停止指令，最多等待shutdownTimeout
// 3. 等待超时只告警，不阻塞关闭流程
func (ctx *Context) Shutdown() {
	ctx.mtx.Lock()
	if !ctx.loopRunning {
		ctx.resetLocked()
		ctx.mtx.Unlock()
		return
	}
	doneCh := ctx.doneCh
	if !ctx.stopping {
		ctx.stopping = true
		close(ctx.stopCh)
	}
	ctx.mtx.Unlock()

	select {
	case <-doneCh:
	case <-time.After(shutdownTimeout):
		log.Warnf("tick loop did not exit cleanly (timeout)")
	}
	ctx.Reset()
}
