package config

// 控制参数默认值
const (
	DefaultFPS     = 100.0 // 默认目标帧率
	DefaultTimeout = 120.0 // 默认场景推进超时（秒）
)

// FillDefaults 填充缺省配置
// 功能：对未设置或非法的控制参数应用默认值
func (c *Config) FillDefaults() {
	if c.Control.FPS <= 0 {
		c.Control.FPS = DefaultFPS
	}
	if c.Control.Timeout <= 0 {
		c.Control.Timeout = DefaultTimeout
	}
}
