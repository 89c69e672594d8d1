// Package workday 提供 schedule.Gate 的具体实现。
// 引擎只消费工作日信号，信号背后的节假日表、周末规则和缓存都在这里
package workday

import (
	"log/slog"
	"time"

	"github.com/workshift-tools/workshift/backend/internal/schedule"
)

// HolidayLookup 是节假日表的查询能力，由 repository 提供
type HolidayLookup interface {
	IsHoliday(date string) (bool, error)
}

// CalendarGate 按「周末或节假日即非工作日」的规则回答工作日信号。
// 节假日表查询失败时返回 Unknown：信号不可用时宁可按模式排班，
// 也不能凭空把上班日改成休息
type CalendarGate struct {
	lookup HolidayLookup
}

func NewCalendarGate(lookup HolidayLookup) *CalendarGate {
	return &CalendarGate{lookup: lookup}
}

func (g *CalendarGate) Signal(date time.Time) schedule.Signal {
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return schedule.SignalNonWorkday
	}

	isHoliday, err := g.lookup.IsHoliday(date.Format("2006-01-02"))
	if err != nil {
		slog.Warn("节假日表查询失败，按信号不可用处理", "date", date.Format("2006-01-02"), "error", err)
		return schedule.SignalUnknown
	}
	if isHoliday {
		return schedule.SignalNonWorkday
	}
	return schedule.SignalWorkday
}

// TomorrowSignal 实现 schedule.TomorrowAware。
// 节假日表按日期记录，未来日期直接查询即可
func (g *CalendarGate) TomorrowSignal(today time.Time) schedule.Signal {
	return g.Signal(today.AddDate(0, 0, 1))
}
