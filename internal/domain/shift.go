package domain

import "time"

// DayShiftResult 描述某个日历日解析出来的班次
type DayShiftResult struct {
	Date       time.Time  `json:"date"`
	ShiftIndex int        `json:"shiftIndex"` // 0 表示休息
	ShiftStart *time.Time `json:"shiftStart"` // 仅在 ShiftIndex > 0 时存在
	ShiftEnd   *time.Time `json:"shiftEnd"`   // 跨夜班次的结束时间会落在下一个日历日
	IsWorkday  bool       `json:"isWorkday"`
}

// ShiftEvent 是日历视图中的一个班次实例
type ShiftEvent struct {
	ShiftIndex int       `json:"shiftIndex"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}
