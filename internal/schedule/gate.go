package schedule

import "time"

// Signal 是外部工作日信号对某个日期的回答
type Signal int

const (
	// SignalUnknown 表示信号不可用，此时不干预排班模式（宁可按模式排班，也不凭空休息）
	SignalUnknown Signal = iota
	SignalWorkday
	SignalNonWorkday
)

// Gate 是外部的工作日信号源，按日期回答某天是否为工作日。
// 引擎只消费这个信号，不关心它背后是节假日表、周末规则还是别的什么
type Gate interface {
	Signal(date time.Time) Signal
}

// TomorrowAware 由能够前瞻次日状态的信号源实现。
// 未配置专用次日信号源时，引擎会尝试通过这个接口获取明天的信号
type TomorrowAware interface {
	TomorrowSignal(today time.Time) Signal
}

// GateFunc 允许用普通函数充当 Gate
type GateFunc func(date time.Time) Signal

func (f GateFunc) Signal(date time.Time) Signal {
	return f(date)
}
