package actor

import (
	"git.fiblab.net/general/common/v2/geometry"

	"github.com/drivora/sandbox-go/entity"
)

// Static 静态障碍物
// 说明：不参与运动学推进，只能整体替换位姿
type Static struct {
	base
}

func newStatic(bp *Blueprint, id string, loc entity.Location) Actor {
	return &Static{base: newBase(bp, id, loc)}
}

// Tick 静态障碍物无运动学，tick为空操作
func (s *Static) Tick(dt float64) {}

// SetLocation 整体替换位姿
func (s *Static) SetLocation(loc entity.Location) {
	loc.Yaw = entity.NormalizeAngle(loc.Yaw)
	s.loc = loc
}

// PolygonPoints 返回世界系下的四角footprint
func (s *Static) PolygonPoints() []geometry.Point {
	return s.footprint(s.bp.BBox.Length/2, -s.bp.BBox.Length/2, s.bp.BBox.Width/2)
}

// Snapshot 导出当前状态
func (s *Static) Snapshot() Snapshot {
	return s.snapshot(s.PolygonPoints())
}
