package lane

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/drivora/sandbox-go/entity"
)

// waypointOf 按车道坐标构造waypoint，不校验s范围
func (m *LaneManager) waypointOf(l *Lane, s, offset float64) entity.Waypoint {
	pos := l.GetOffsetPositionByS(s, offset)
	return entity.Waypoint{
		LanePosition: entity.LanePosition{LaneID: l.id, S: s, L: offset},
		IsJunction:   l.isJunction,
		X:            pos.X,
		Y:            pos.Y,
		Heading:      l.GetDirectionByS(s),
	}
}

// GetWaypoint 根据车道坐标构造waypoint
// 功能：由车道ID与s/l坐标生成带实际位置与方向角的waypoint
// 参数：laneID-车道ID，s-纵向距离，l-横向偏移
// 返回：waypoint对象
// 说明：s超出[0, length]属于调用方错误，报invalid input
func (m *LaneManager) GetWaypoint(laneID string, s, l float64) (entity.Waypoint, error) {
	lane, err := m.GetOrError(laneID)
	if err != nil {
		return entity.Waypoint{}, err
	}
	if s < 0 || s > lane.length {
		return entity.Waypoint{}, fmt.Errorf("s %v out of range [0, %v] for lane %s: %w",
			s, lane.length, laneID, entity.ErrInvalidInput)
	}
	return m.waypointOf(lane, s, l), nil
}

// GetNextWaypoint 沿通行方向获取前方的waypoint列表
// 功能：从(laneID, s)沿通行方向前进distance，越界时扩展到连接车道
// 参数：laneID-车道ID，s-纵向距离，l-横向偏移，distance-前进距离
// 返回：waypoint列表，无连接车道可达时为空列表
// 算法说明：
// 1. FORWARD取next_s=s+distance，BACKWARD取next_s=s-distance，
// 其余方向按FORWARD处理
// 2. next_s仍在[0, length]内时返回本车道上的单个waypoint
// 3. 越界时BACKWARD沿前驱扩展、剩余距离|next_s|，
// 否则沿后继扩展、剩余距离next_s-length
// 4. 连接车道上的s限制在[0, length-0.01]
func (m *LaneManager) GetNextWaypoint(laneID string, s, l, distance float64) ([]entity.Waypoint, error) {
	lane, err := m.GetOrError(laneID)
	if err != nil {
		return nil, err
	}
	var nextS float64
	if lane.direction == DirectionBackward {
		nextS = s - distance
	} else {
		nextS = s + distance
	}
	if 0 <= nextS && nextS <= lane.length {
		return []entity.Waypoint{m.waypointOf(lane, nextS, l)}, nil
	}
	var nextIDs []string
	var remaining float64
	if lane.direction == DirectionBackward {
		nextIDs = lo.Uniq(lane.predecessorIDs)
		remaining = math.Abs(nextS)
	} else {
		nextIDs = lo.Uniq(lane.successorIDs)
		remaining = nextS - lane.length
	}
	waypoints := make([]entity.Waypoint, 0, len(nextIDs))
	for _, id := range nextIDs {
		next := m.data[id]
		waypoints = append(waypoints, m.waypointOf(next, lo.Clamp(remaining, 0, next.length-0.01), l))
	}
	return waypoints, nil
}

// GetPreviousWaypoint 沿通行方向获取后方的waypoint列表
// 功能：从(laneID, s)沿通行方向后退distance，越界时扩展到连接车道
// 参数：laneID-车道ID，s-纵向距离，l-横向偏移，distance-后退距离
// 返回：waypoint列表，无连接车道可达时为空列表
// 算法说明：
// 1. FORWARD取prev_s=s-distance，BACKWARD取prev_s=s+distance，
// 其余方向按FORWARD处理
// 2. prev_s仍在[0, length]内时返回本车道上的单个waypoint
// 3. 越界时BACKWARD沿后继扩展、剩余距离|prev_s-length|，
// 否则沿前驱扩展、剩余距离|prev_s|
// 4. 连接车道上的s取max(length-剩余距离, 0.01)
func (m *LaneManager) GetPreviousWaypoint(laneID string, s, l, distance float64) ([]entity.Waypoint, error) {
	lane, err := m.GetOrError(laneID)
	if err != nil {
		return nil, err
	}
	var prevS float64
	if lane.direction == DirectionBackward {
		prevS = s + distance
	} else {
		prevS = s - distance
	}
	if 0 <= prevS && prevS <= lane.length {
		return []entity.Waypoint{m.waypointOf(lane, prevS, l)}, nil
	}
	var prevIDs []string
	var remaining float64
	if lane.direction == DirectionBackward {
		prevIDs = lo.Uniq(lane.successorIDs)
		remaining = math.Abs(prevS - lane.length)
	} else {
		prevIDs = lo.Uniq(lane.predecessorIDs)
		remaining = math.Abs(prevS)
	}
	waypoints := make([]entity.Waypoint, 0, len(prevIDs))
	for _, id := range prevIDs {
		prev := m.data[id]
		waypoints = append(waypoints, m.waypointOf(prev, math.Max(prev.length-remaining, 0.01), l))
	}
	return waypoints, nil
}
