package schedule

import (
	"time"

	"github.com/workshift-tools/workshift/backend/internal/domain"
)

// Engine 基于一份校验过的排班配置做纯函数式的日期/班次解析。
// 引擎本身无状态，所有方法都只依赖显式传入的时间参数，
// 并发调用无需任何同步
type Engine struct {
	ws           *domain.Workshift
	startMinutes []int     // 每个班次开始时刻距零点的分钟数
	patternStart time.Time // 归一化为 UTC 零点的日历日
	daysOff      [][2]time.Time
	duration     time.Duration
}

// NewEngine 校验配置并构造引擎。
// 校验失败时返回 ValidationErrors，包含所有字段的错误
func NewEngine(ws *domain.Workshift) (*Engine, error) {
	if errs := Validate(ws); len(errs) > 0 {
		return nil, errs
	}

	e := &Engine{
		ws:       ws,
		duration: time.Duration(ws.DurationHours * float64(time.Hour)),
	}

	for _, st := range ws.StartTimes {
		t, _ := time.Parse(timeLayout, st)
		e.startMinutes = append(e.startMinutes, t.Hour()*60+t.Minute())
	}

	start, _ := time.Parse(dateLayout, ws.PatternStart)
	e.patternStart = start

	for _, dr := range ws.DaysOff {
		s, _ := time.Parse(dateLayout, dr.Start)
		en, _ := time.Parse(dateLayout, dr.End)
		e.daysOff = append(e.daysOff, [2]time.Time{s, en})
	}

	return e, nil
}

// dayStart 返回 t 所在日历日的零点，保留时区
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// civilUTC 把日历日归一化成 UTC 零点，这样天数差就是精确的整数，
// 不会因为夏令时出现 23 或 25 小时的天
func civilUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (e *Engine) patternIndex(day time.Time) int {
	offset := int(civilUTC(day).Sub(e.patternStart).Hours() / 24)
	n := len(e.ws.Pattern)
	// 规范化取模，起始日期之前的日期（offset 为负）也要正确回绕
	return ((offset % n) + n) % n
}

func (e *Engine) patternCode(day time.Time) int {
	return int(e.ws.Pattern[e.patternIndex(day)] - '0')
}

func (e *Engine) manualDayOff(day time.Time) bool {
	d := civilUTC(day)
	for _, dr := range e.daysOff {
		if !d.Before(dr[0]) && !d.After(dr[1]) {
			return true
		}
	}
	return false
}

func (e *Engine) gateEnabled() bool {
	return e.ws.HolidaysAlwaysOff || e.ws.GatePolicy != domain.GateDisabled
}

func (e *Engine) signalFor(gate Gate, day time.Time) Signal {
	if gate == nil {
		return SignalUnknown
	}
	return gate.Signal(day)
}

func (e *Engine) shiftStart(day time.Time, code int) time.Time {
	mins := e.startMinutes[code-1]
	y, m, d := day.Date()
	return time.Date(y, m, d, mins/60, mins%60, 0, 0, day.Location())
}

// ResolveDay 解析某个日历日的班次。
// 模式排定的休息日永远是休息日；工作日信号只能把上班日改成休息
// （周末/节假日），不能让休息日变成上班日。信号为 Unknown 时不做任何干预
func (e *Engine) ResolveDay(date time.Time, sig Signal) domain.DayShiftResult {
	day := dayStart(date)
	res := domain.DayShiftResult{Date: day}

	code := e.patternCode(day)
	if code == 0 {
		return res
	}
	if e.manualDayOff(day) {
		return res
	}
	if e.gateEnabled() && sig == SignalNonWorkday {
		return res
	}

	start := e.shiftStart(day, code)
	end := start.Add(e.duration) // 时长相加而不是时刻回绕，跨夜班次自然落到第二天
	res.ShiftIndex = code
	res.ShiftStart = &start
	res.ShiftEnd = &end
	res.IsWorkday = true
	return res
}

// ResolveTomorrow 解析明天的班次。
// 信号来源的优先级：专用的次日信号源 > 今日信号源的前瞻属性 > 未知。
// 未知时不做干预，仅由排班模式决定（这是刻意的保守选择，见 DESIGN.md）
func (e *Engine) ResolveTomorrow(today time.Time, gate Gate) domain.DayShiftResult {
	tomorrow := dayStart(today).AddDate(0, 0, 1)

	sig := SignalUnknown
	if gate != nil {
		switch {
		case e.ws.GatePolicy == domain.GateTodayAndTomorrow || e.ws.HolidaysAlwaysOff:
			sig = gate.Signal(tomorrow)
		case e.ws.GatePolicy == domain.GateToday:
			// 没有专用的次日信号源时，不能把今天的信号照搬到明天
			if ta, ok := gate.(TomorrowAware); ok {
				sig = ta.TomorrowSignal(dayStart(today))
			}
		}
	}

	return e.ResolveDay(tomorrow, sig)
}

// ShiftCovering 返回窗口 [开始, 结束) 覆盖 at 的班次。
// 必须同时检查前一个日历日：跨夜班次的窗口会延伸到第二天，
// 只查当天会漏掉凌晨仍在进行的班次
func (e *Engine) ShiftCovering(at time.Time, gate Gate) *domain.DayShiftResult {
	today := dayStart(at)
	for _, day := range []time.Time{today, today.AddDate(0, 0, -1)} {
		res := e.ResolveDay(day, e.signalFor(gate, day))
		if res.ShiftIndex == 0 {
			continue
		}
		if !at.Before(*res.ShiftStart) && at.Before(*res.ShiftEnd) {
			return &res
		}
	}
	return nil
}

// IsActiveAt 判断 at 时刻是否处于某个班次之中
func (e *Engine) IsActiveAt(at time.Time, gate Gate) bool {
	return e.ShiftCovering(at, gate) != nil
}

// NextBoundary 返回 from 之后需要刷新状态的最早时刻：
// 当前班次的结束、下一个班次的开始、下一个零点三者中最早的一个。
// 刷新本身由外部的定时协作方负责，引擎只负责回答时刻
func (e *Engine) NextBoundary(from time.Time, gate Gate) time.Time {
	boundary := dayStart(from).AddDate(0, 0, 1) // 下一个零点兜底

	if covering := e.ShiftCovering(from, gate); covering != nil {
		if covering.ShiftEnd.Before(boundary) {
			boundary = *covering.ShiftEnd
		}
	}

	// 向后扫描寻找下一个班次开始。模式是循环的，最多扫一个周期就够了
	today := dayStart(from)
	for ahead := 0; ahead <= len(e.ws.Pattern); ahead++ {
		day := today.AddDate(0, 0, ahead)
		res := e.ResolveDay(day, e.signalFor(gate, day))
		if res.ShiftIndex == 0 || !res.ShiftStart.After(from) {
			continue
		}
		if res.ShiftStart.Before(boundary) {
			boundary = *res.ShiftStart
		}
		break
	}

	return boundary
}

// EventsBetween 列出与 [start, end) 有交集的所有班次实例，供日历视图使用
func (e *Engine) EventsBetween(start, end time.Time, gate Gate) []domain.ShiftEvent {
	events := make([]domain.ShiftEvent, 0)

	// 从前一天开始扫，跨夜班次也可能与区间相交
	day := dayStart(start).AddDate(0, 0, -1)
	last := dayStart(end)
	for !day.After(last) {
		res := e.ResolveDay(day, e.signalFor(gate, day))
		if res.ShiftIndex > 0 && res.ShiftEnd.After(start) && res.ShiftStart.Before(end) {
			events = append(events, domain.ShiftEvent{
				ShiftIndex: res.ShiftIndex,
				Start:      *res.ShiftStart,
				End:        *res.ShiftEnd,
			})
		}
		day = day.AddDate(0, 0, 1)
	}

	return events
}
