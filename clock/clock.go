package clock

import (
	"fmt"
	"math"
	"time"
)

// Clock 仿真时钟
// 功能：维护逻辑帧计数与墙钟统计，逻辑时间 = 帧数/目标帧率
// 说明：不加锁，由task.Context统一串行化访问
type Clock struct {
	FPS float64 // 目标帧率（每秒推进的帧数）

	frame     int64     // 已推进的帧数
	startTime time.Time // 第一次Tick的墙钟时间
	lastTick  time.Time // 最近一次Tick的墙钟时间
	realFPS   float64   // 按相邻两次Tick间隔实测的瞬时帧率
}

// Snapshot 时钟快照（对外序列化表面）
type Snapshot struct {
	Frame           int64   `json:"frame"`             // 帧计数
	GameTime        float64 `json:"game_time"`         // 逻辑时间（秒）
	RealTimeElapsed float64 `json:"real_time_elapsed"` // 启动以来的墙钟时间（秒）
	RealFPS         float64 `json:"real_fps"`          // 实测瞬时帧率
	TargetFPS       float64 `json:"target_fps"`        // 目标帧率
	ServerTime      float64 `json:"server_time"`       // 服务器墙钟（Unix秒）
}

// New 创建时钟实例
// 参数：fps-目标帧率，必须为正
func New(fps float64) *Clock {
	if fps <= 0 {
		log.Panicf("clock: fps must be positive, got %v", fps)
	}
	return &Clock{FPS: fps}
}

// Tick 推进一帧
// 算法说明：
// 1. 首次Tick记录起始墙钟时间
// 2. 用与上一次Tick的间隔更新瞬时帧率（间隔为0时帧率记0）
// 3. 帧计数加一
func (c *Clock) Tick() {
	now := time.Now()
	if c.startTime.IsZero() {
		c.startTime = now
	}
	if !c.lastTick.IsZero() {
		if delta := now.Sub(c.lastTick).Seconds(); delta > 0 {
			c.realFPS = 1 / delta
		} else {
			c.realFPS = 0
		}
	}
	c.lastTick = now
	c.frame++
}

// Reset 复位时钟状态
func (c *Clock) Reset() {
	c.frame = 0
	c.startTime = time.Time{}
	c.lastTick = time.Time{}
	c.realFPS = 0
}

// Frame 获取帧计数
func (c *Clock) Frame() int64 {
	return c.frame
}

// DT 获取单帧时间步长（秒）
func (c *Clock) DT() float64 {
	return 1 / c.FPS
}

// GameTime 获取逻辑时间（秒）
func (c *Clock) GameTime() float64 {
	return float64(c.frame) / c.FPS
}

// RealElapsed 获取启动以来的墙钟时间（秒），尚未Tick过则为0
func (c *Clock) RealElapsed() float64 {
	if c.startTime.IsZero() {
		return 0
	}
	return time.Since(c.startTime).Seconds()
}

// Snapshot 产生时钟快照
func (c *Clock) Snapshot() Snapshot {
	return Snapshot{
		Frame:           c.frame,
		GameTime:        round(c.GameTime(), 4),
		RealTimeElapsed: round(c.RealElapsed(), 4),
		RealFPS:         round(c.realFPS, 2),
		TargetFPS:       c.FPS,
		ServerTime:      round(float64(time.Now().UnixNano())/1e9, 4),
	}
}

// String 获取时钟的字符串表示
// 功能：将当前逻辑时间格式化为可读的字符串（HH:MM:SS）
func (c *Clock) String() string {
	t := c.GameTime()
	h := int(t / 3600)
	t -= float64(h * 3600)
	m := int(t / 60)
	t -= float64(m * 60)
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// GetHourMinuteSecond 获取当前逻辑时间的小时、分钟、秒
// 返回：小时、分钟、秒（秒为浮点数，支持亚秒级精度）
func (c *Clock) GetHourMinuteSecond() (int, int, float64) {
	t := c.GameTime()
	hour := int(t) / 3600
	minute := int(t) % 3600 / 60
	second := t - float64(hour*3600+minute*60)
	return hour, minute, second
}

// round 保留digits位小数
func round(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}
