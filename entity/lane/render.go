package lane

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
)

// LaneRenderData 单条车道的渲染数据
type LaneRenderData struct {
	ID                string           `json:"id"`                  // 车道ID
	Type              string           `json:"type"`                // 车道类型串
	Central           []geometry.Point `json:"central"`             // 中心线
	LeftBoundary      []geometry.Point `json:"left_boundary"`       // 左边线
	RightBoundary     []geometry.Point `json:"right_boundary"`      // 右边线
	LeftBoundaryType  string           `json:"left_boundary_type"`  // 左边线类型串
	RightBoundaryType string           `json:"right_boundary_type"` // 右边线类型串
	Polygon           []geometry.Point `json:"polygon"`             // 车道多边形点列
}

// RenderData 整张路网的渲染数据
type RenderData struct {
	MapName string           `json:"map_name"` // 路网名
	Lanes   []LaneRenderData `json:"lanes"`    // 全部车道的渲染数据
}

// GetRenderData 导出整张路网的渲染数据
// 功能：汇总全部车道的几何信息，供外部渲染使用
func (m *LaneManager) GetRenderData() *RenderData {
	return &RenderData{
		MapName: m.name,
		Lanes: lo.Map(m.lanes, func(l *Lane, _ int) LaneRenderData {
			return LaneRenderData{
				ID:                l.id,
				Type:              l.laneType,
				Central:           l.line,
				LeftBoundary:      l.leftBoundary,
				RightBoundary:     l.rightBoundary,
				LeftBoundaryType:  l.leftBoundaryType,
				RightBoundaryType: l.rightBoundaryType,
				Polygon:           l.BoundaryPolygon(),
			}
		}),
	}
}
