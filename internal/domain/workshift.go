package domain

import (
	"time"
)

// GatePolicy 表示工作日信号对排班的干预方式
type GatePolicy string

const (
	// GateDisabled 完全忽略工作日信号，排班仅由循环模式决定
	GateDisabled GatePolicy = "disabled"
	// GateToday 仅今天的查询受工作日信号门控
	GateToday GatePolicy = "today"
	// GateTodayAndTomorrow 今天和明天的查询都受工作日信号门控（明天使用专用信号源）
	GateTodayAndTomorrow GatePolicy = "today_and_tomorrow"
)

type DateRange struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD，含端点
}

type Workshift struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	OwnerEmail    string     `json:"ownerEmail"`
	ShiftCount    int        `json:"shiftCount"`
	StartTimes    []string   `json:"startTimes"`   // HH:MM，按班次序号排列
	DurationHours float64    `json:"durationHours"`
	Pattern       string     `json:"pattern"`      // 每个字符对应一天，0 表示休息
	PatternStart  string     `json:"patternStart"` // YYYY-MM-DD，pattern[0] 对应的日期
	GatePolicy    GatePolicy `json:"gatePolicy"`
	// HolidaysAlwaysOff 为 true 时，即使未启用工作日信号门控，
	// 周末和节假日也会把当天强制置为休息
	HolidaysAlwaysOff bool        `json:"holidaysAlwaysOff"`
	DaysOff           []DateRange `json:"daysOff"`
	CreatedAt         time.Time   `json:"createdAt"`
	Version           int32       `json:"-"`
}
