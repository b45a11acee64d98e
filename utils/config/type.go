package config

// InputPath 指定路网数据来源的配置（MongoDB、文件系统）
// 说明：支持MongoDB数据库和文件系统两种数据源，支持缓存机制
type InputPath struct {
	DB        string `yaml:"db"`                   // 数据库名
	Col       string `yaml:"col"`                  // 集合名，每张路网一个文档，按名字检索
	Cache     string `yaml:"cache,omitempty"`      // 缓存文件名，为空则采用默认路径{db}.{col}.{name}.json
	OnlyCache bool   `yaml:"only_cache,omitempty"` // 只从缓存中获取
	Dir       string `yaml:"dir,omitempty"`        // 文件目录（优先级高于MongoDB），按{dir}/{name}.json检索
	Default   string `yaml:"default,omitempty"`    // 启动时预加载的路网名，为空则不加载
}

// GetDb 获取数据库名
func (p InputPath) GetDb() string {
	return p.DB
}

// GetColl 获取集合名
func (p InputPath) GetColl() string {
	return p.Col
}

// GetCachePath 获取指定路网的缓存文件名
// 算法说明：
// 1. 如果指定了缓存路径，直接返回
// 2. 否则使用默认命名规则：{数据库名}.{集合名}.{路网名}.json
func (p InputPath) GetCachePath(name string) string {
	if p.Cache != "" {
		return p.Cache
	}
	return p.DB + "." + p.Col + "." + name + ".json"
}

// Input 指定模拟器所有输入数据的配置项
type Input struct {
	URI string    `yaml:"uri"` // MongoDB连接字符串，为空则只使用文件/缓存
	Map InputPath `yaml:"map"` // 路网
}

// Control 模拟器控制配置
type Control struct {
	FPS     float64 `yaml:"fps"`     // 目标帧率
	Timeout float64 `yaml:"timeout"` // 场景推进超时（秒），仅记录上报，由外部调用方执行
}

// Config YAML配置文件的根结构
type Config struct {
	Input   Input   `yaml:"input"`   // 输入
	Control Control `yaml:"control"` // 模拟过程控制
}
