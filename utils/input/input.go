package input

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drivora/sandbox-go/entity"
	"github.com/drivora/sandbox-go/utils/config"
)

// mongoTimeout MongoDB操作超时
const mongoTimeout = 30 * time.Second

// PointData 折线采样点
type PointData struct {
	X float64 `bson:"x" json:"x"`
	Y float64 `bson:"y" json:"y"`
	Z float64 `bson:"z,omitempty" json:"z,omitempty"`
}

// LaneData 单条车道的静态描述
// 说明：类型、转向、方向、边界线型等枚举以字符串形式存储（CITY_DRIVING、
// FORWARD、SOLID_WHITE等），长度由中心线折线推出，不单独存储
type LaneData struct {
	ID         string  `bson:"id" json:"id"`
	Type       string  `bson:"type" json:"type"`
	Turn       string  `bson:"turn,omitempty" json:"turn,omitempty"`
	Direction  string  `bson:"direction,omitempty" json:"direction,omitempty"`
	SpeedLimit float64 `bson:"speed_limit,omitempty" json:"speed_limit,omitempty"`

	CentralCurve  []PointData `bson:"central_curve" json:"central_curve"`
	LeftBoundary  []PointData `bson:"left_boundary" json:"left_boundary"`
	RightBoundary []PointData `bson:"right_boundary" json:"right_boundary"`

	LeftBoundaryType  string `bson:"left_boundary_type,omitempty" json:"left_boundary_type,omitempty"`
	RightBoundaryType string `bson:"right_boundary_type,omitempty" json:"right_boundary_type,omitempty"`

	PredecessorIDs          []string `bson:"predecessor_ids,omitempty" json:"predecessor_ids,omitempty"`
	SuccessorIDs            []string `bson:"successor_ids,omitempty" json:"successor_ids,omitempty"`
	LeftNeighborForwardIDs  []string `bson:"left_neighbor_forward_ids,omitempty" json:"left_neighbor_forward_ids,omitempty"`
	RightNeighborForwardIDs []string `bson:"right_neighbor_forward_ids,omitempty" json:"right_neighbor_forward_ids,omitempty"`
	LeftNeighborReverseIDs  []string `bson:"left_neighbor_reverse_ids,omitempty" json:"left_neighbor_reverse_ids,omitempty"`
	RightNeighborReverseIDs []string `bson:"right_neighbor_reverse_ids,omitempty" json:"right_neighbor_reverse_ids,omitempty"`
	OverlapIDs              []string `bson:"overlap_ids,omitempty" json:"overlap_ids,omitempty"`

	IsJunction      bool     `bson:"is_junction,omitempty" json:"is_junction,omitempty"`
	StopSignIDs     []string `bson:"stop_sign_ids,omitempty" json:"stop_sign_ids,omitempty"`
	TrafficLightIDs []string `bson:"traffic_light_ids,omitempty" json:"traffic_light_ids,omitempty"`
}

// NetworkData 一张路网的完整静态数据
type NetworkData struct {
	Name  string     `bson:"name" json:"name"`
	Lanes []LaneData `bson:"lanes" json:"lanes"`
}

// Load 按名字加载一张路网
// 功能：按优先级 文件 > 缓存 > MongoDB 解析数据来源并加载
// 参数：c-配置，name-路网名，cacheDir-缓存目录（为空则禁用缓存）
// 返回：路网数据与错误信息
// 算法说明：
// 1. 配置了文件目录且{dir}/{name}.json存在时直接从文件加载
// 2. 否则查找缓存文件{cacheDir}/{db}.{col}.{name}.json
// 3. only_cache时缓存未命中直接报错
// 4. 最后从MongoDB按name字段检索文档，成功后回写缓存
// 说明：结构完整性（悬空连接、过短折线等）由车道管理器在Load时校验
func Load(c config.Config, name string, cacheDir string) (*NetworkData, error) {
	if name == "" {
		return nil, fmt.Errorf("network name is empty: %w", entity.ErrInvalidInput)
	}

	if c.Input.Map.Dir != "" {
		path := filepath.Join(c.Input.Map.Dir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return loadFile(path)
		}
	}

	cachePath := ""
	if cacheDir != "" {
		cachePath = filepath.Join(cacheDir, c.Input.Map.GetCachePath(name))
		if _, err := os.Stat(cachePath); err == nil {
			return loadFile(cachePath)
		}
	}
	if c.Input.Map.OnlyCache {
		return nil, fmt.Errorf("network %s not in cache and only_cache is set: %w", name, entity.ErrNotFound)
	}

	data, err := loadMongo(c, name)
	if err != nil {
		return nil, err
	}
	if cachePath != "" {
		writeCache(cachePath, data)
	}
	return data, nil
}

// loadFile 从JSON文件加载路网数据
func loadFile(path string) (*NetworkData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network file %s: %w", path, err)
	}
	var data NetworkData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse network file %s: %w", path, err)
	}
	log.Infof("load network from %s", path)
	return &data, nil
}

// loadMongo 从MongoDB按名字检索路网文档
func loadMongo(c config.Config, name string) (*NetworkData, error) {
	if c.Input.URI == "" {
		return nil, fmt.Errorf("network %s: no file, no cache and no mongodb uri: %w", name, entity.ErrNotFound)
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.Input.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	defer client.Disconnect(context.Background())

	col := client.Database(c.Input.Map.GetDb()).Collection(c.Input.Map.GetColl())
	var data NetworkData
	if err := col.FindOne(ctx, bson.M{"name": name}).Decode(&data); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("network %s not in %s.%s: %w",
				name, c.Input.Map.GetDb(), c.Input.Map.GetColl(), entity.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch network %s: %w", name, err)
	}
	log.Infof("load network %s from mongodb %s.%s", name, c.Input.Map.GetDb(), c.Input.Map.GetColl())
	return &data, nil
}

// writeCache 回写缓存文件，失败只告警
func writeCache(path string, data *NetworkData) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Warnf("failed to create cache dir for %s: %v", path, err)
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		log.Warnf("failed to encode cache %s: %v", path, err)
		return
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		log.Warnf("failed to write cache %s: %v", path, err)
		return
	}
	log.Infof("write network cache to %s", path)
}
