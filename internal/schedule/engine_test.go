package schedule

import (
	"testing"
	"time"

	"github.com/workshift-tools/workshift/backend/internal/domain"
)

// staticGate 用固定的日期表充当工作日信号源
type staticGate map[string]Signal

func (g staticGate) Signal(date time.Time) Signal {
	if sig, ok := g[date.Format(dateLayout)]; ok {
		return sig
	}
	return SignalUnknown
}

// forwardGate 额外带前瞻属性的信号源
type forwardGate struct {
	staticGate
	tomorrow Signal
}

func (g forwardGate) TomorrowSignal(today time.Time) Signal {
	return g.tomorrow
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func mustEngine(t *testing.T, ws *domain.Workshift) *Engine {
	t.Helper()
	e, err := NewEngine(ws)
	if err != nil {
		t.Fatalf("构造引擎失败: %v", err)
	}
	return e
}

func threeShifts() *domain.Workshift {
	return &domain.Workshift{
		Name:          "三班倒",
		ShiftCount:    3,
		StartTimes:    []string{"06:00", "14:00", "22:00"},
		DurationHours: 8,
		Pattern:       "1230",
		PatternStart:  "2024-01-01",
		GatePolicy:    domain.GateDisabled,
	}
}

func TestResolveDayEndToEnd(t *testing.T) {
	e := mustEngine(t, threeShifts())

	tests := []struct {
		day        time.Time
		shiftIndex int
		start      time.Time
		end        time.Time
	}{
		{date(2024, 1, 1), 1, at(2024, 1, 1, 6, 0), at(2024, 1, 1, 14, 0)},
		{date(2024, 1, 2), 2, at(2024, 1, 2, 14, 0), at(2024, 1, 2, 22, 0)},
		{date(2024, 1, 3), 3, at(2024, 1, 3, 22, 0), at(2024, 1, 4, 6, 0)}, // 跨夜
		{date(2024, 1, 4), 0, time.Time{}, time.Time{}},
		{date(2024, 1, 5), 1, at(2024, 1, 5, 6, 0), at(2024, 1, 5, 14, 0)}, // 周期为 4
	}

	for _, tt := range tests {
		res := e.ResolveDay(tt.day, SignalUnknown)
		if res.ShiftIndex != tt.shiftIndex {
			t.Errorf("%s: 期望班次 %d，得到 %d", tt.day.Format(dateLayout), tt.shiftIndex, res.ShiftIndex)
			continue
		}
		if tt.shiftIndex == 0 {
			if res.ShiftStart != nil || res.ShiftEnd != nil || res.IsWorkday {
				t.Errorf("%s: 休息日不应有开始/结束时间", tt.day.Format(dateLayout))
			}
			continue
		}
		if !res.ShiftStart.Equal(tt.start) || !res.ShiftEnd.Equal(tt.end) {
			t.Errorf("%s: 期望 %v ~ %v，得到 %v ~ %v",
				tt.day.Format(dateLayout), tt.start, tt.end, res.ShiftStart, res.ShiftEnd)
		}
	}
}

// 对任意整数 n，起始日期偏移 n 个周期后的解析结果应与起始日期相同
func TestResolveDayPeriodicity(t *testing.T) {
	e := mustEngine(t, threeShifts())
	base := e.ResolveDay(date(2024, 1, 1), SignalUnknown)

	for _, n := range []int{-300, -3, -1, 1, 2, 500} {
		day := date(2024, 1, 1).AddDate(0, 0, n*4)
		res := e.ResolveDay(day, SignalUnknown)
		if res.ShiftIndex != base.ShiftIndex {
			t.Errorf("偏移 %d 个周期: 期望班次 %d，得到 %d", n, base.ShiftIndex, res.ShiftIndex)
		}
	}
}

// 起始日期之前的日期必须通过规范化取模正确回绕，而不是报错或返回休息
func TestResolveDayBeforePatternStart(t *testing.T) {
	ws := threeShifts()
	ws.Pattern = "123"
	e := mustEngine(t, ws)

	// 起始日期前一天对应 pattern 的最后一位
	res := e.ResolveDay(date(2023, 12, 31), SignalUnknown)
	if res.ShiftIndex != 3 {
		t.Fatalf("期望班次 3，得到 %d", res.ShiftIndex)
	}

	// 几年之前也应当直接用同样的取模解析。
	// 2020-01-01 距 2024-01-01 共 1461 天，1461 是 3 的整数倍，对应 pattern[0]
	res = e.ResolveDay(date(2020, 1, 1), SignalUnknown)
	if res.ShiftIndex != 1 {
		t.Fatalf("期望班次 1，得到 %d", res.ShiftIndex)
	}
}

// 模式排定的休息日不受工作日信号影响，信号不能把休息日变成上班日
func TestPatternOffNeverOverridden(t *testing.T) {
	ws := threeShifts()
	ws.GatePolicy = domain.GateToday
	e := mustEngine(t, ws)

	for _, sig := range []Signal{SignalUnknown, SignalWorkday, SignalNonWorkday} {
		if res := e.ResolveDay(date(2024, 1, 4), sig); res.ShiftIndex != 0 {
			t.Errorf("信号 %v: 模式休息日被解析成班次 %d", sig, res.ShiftIndex)
		}
	}
}

// 门控关闭时完全忽略工作日信号
func TestGateDisabledIgnoresSignal(t *testing.T) {
	e := mustEngine(t, threeShifts())

	a := e.ResolveDay(date(2024, 1, 1), SignalWorkday)
	b := e.ResolveDay(date(2024, 1, 1), SignalNonWorkday)
	if a.ShiftIndex != b.ShiftIndex || a.ShiftIndex != 1 {
		t.Fatalf("门控关闭时信号不应影响结果: %d vs %d", a.ShiftIndex, b.ShiftIndex)
	}
}

func TestGateEnabledOverridesActiveDay(t *testing.T) {
	ws := threeShifts()
	ws.GatePolicy = domain.GateToday
	e := mustEngine(t, ws)

	if res := e.ResolveDay(date(2024, 1, 1), SignalNonWorkday); res.ShiftIndex != 0 {
		t.Fatalf("非工作日信号应把上班日改成休息，得到班次 %d", res.ShiftIndex)
	}
	// 信号不可用时不做干预，按模式排班
	if res := e.ResolveDay(date(2024, 1, 1), SignalUnknown); res.ShiftIndex != 1 {
		t.Fatalf("信号不可用时应按模式排班，得到班次 %d", res.ShiftIndex)
	}
}

// 未启用门控但开了节假日强制休息时，非工作日信号同样生效
func TestHolidaysAlwaysOff(t *testing.T) {
	ws := threeShifts()
	ws.HolidaysAlwaysOff = true
	e := mustEngine(t, ws)

	if res := e.ResolveDay(date(2024, 1, 1), SignalNonWorkday); res.ShiftIndex != 0 {
		t.Fatalf("节假日强制休息未生效，得到班次 %d", res.ShiftIndex)
	}
}

func TestManualDaysOff(t *testing.T) {
	ws := threeShifts()
	ws.DaysOff = []domain.DateRange{{Start: "2024-01-01", End: "2024-01-02"}}
	e := mustEngine(t, ws)

	for d := 1; d <= 2; d++ {
		if res := e.ResolveDay(date(2024, 1, d), SignalUnknown); res.ShiftIndex != 0 {
			t.Errorf("1 月 %d 日在手动休息区间内，得到班次 %d", d, res.ShiftIndex)
		}
	}
	if res := e.ResolveDay(date(2024, 1, 3), SignalUnknown); res.ShiftIndex != 3 {
		t.Errorf("区间外的日期不应受影响，得到班次 %d", res.ShiftIndex)
	}
}

func TestResolveTomorrow(t *testing.T) {
	today := date(2024, 1, 4) // 模式休息日，明天是班次 1

	t.Run("配置了专用次日信号源", func(t *testing.T) {
		ws := threeShifts()
		ws.GatePolicy = domain.GateTodayAndTomorrow
		e := mustEngine(t, ws)

		gate := staticGate{"2024-01-05": SignalNonWorkday}
		if res := e.ResolveTomorrow(today, gate); res.ShiftIndex != 0 {
			t.Fatalf("次日信号源说明天是非工作日，得到班次 %d", res.ShiftIndex)
		}
	})

	t.Run("今日信号源带前瞻属性", func(t *testing.T) {
		ws := threeShifts()
		ws.GatePolicy = domain.GateToday
		e := mustEngine(t, ws)

		gate := forwardGate{staticGate: staticGate{}, tomorrow: SignalNonWorkday}
		if res := e.ResolveTomorrow(today, gate); res.ShiftIndex != 0 {
			t.Fatalf("前瞻信号说明天是非工作日，得到班次 %d", res.ShiftIndex)
		}
	})

	t.Run("无次日信号源时仅由模式决定", func(t *testing.T) {
		ws := threeShifts()
		ws.GatePolicy = domain.GateToday
		e := mustEngine(t, ws)

		// 今天的信号是非工作日，但不能照搬到明天
		gate := staticGate{"2024-01-04": SignalNonWorkday}
		if res := e.ResolveTomorrow(today, gate); res.ShiftIndex != 1 {
			t.Fatalf("无次日信号时应按模式排班，得到班次 %d", res.ShiftIndex)
		}
	})
}

func TestOvernightShiftActive(t *testing.T) {
	ws := &domain.Workshift{
		Name:          "夜班",
		ShiftCount:    1,
		StartTimes:    []string{"22:00"},
		DurationHours: 10,
		Pattern:       "10",
		PatternStart:  "2024-01-01",
		GatePolicy:    domain.GateDisabled,
	}
	e := mustEngine(t, ws)

	res := e.ResolveDay(date(2024, 1, 1), SignalUnknown)
	if res.ShiftIndex != 1 {
		t.Fatalf("期望班次 1，得到 %d", res.ShiftIndex)
	}
	if want := at(2024, 1, 2, 8, 0); !res.ShiftEnd.Equal(want) {
		t.Fatalf("跨夜班次应在次日 08:00 结束，得到 %v", res.ShiftEnd)
	}

	// 次日凌晨 01:00 仍在昨天的班次中，只查当天会漏掉
	if !e.IsActiveAt(at(2024, 1, 2, 1, 0), nil) {
		t.Fatal("凌晨 01:00 应处于昨天开始的夜班中")
	}
	// 窗口右端开区间
	if e.IsActiveAt(at(2024, 1, 2, 8, 0), nil) {
		t.Fatal("结束时刻本身不应算作在班")
	}
	if e.IsActiveAt(at(2024, 1, 1, 21, 59), nil) {
		t.Fatal("班次开始前不应在班")
	}
	if !e.IsActiveAt(at(2024, 1, 1, 22, 0), nil) {
		t.Fatal("班次开始时刻应在班")
	}
}

func TestNextBoundary(t *testing.T) {
	e := mustEngine(t, threeShifts())

	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{
			// 班次进行中：边界是当前班次的结束
			name: "当前班次结束",
			from: at(2024, 1, 1, 7, 0),
			want: at(2024, 1, 1, 14, 0),
		},
		{
			// 班次结束后：今天已无班次，边界是下一个零点
			name: "下一个零点",
			from: at(2024, 1, 1, 15, 0),
			want: at(2024, 1, 2, 0, 0),
		},
		{
			// 班次开始前：边界是今天的班次开始
			name: "今天的班次开始",
			from: at(2024, 1, 1, 5, 0),
			want: at(2024, 1, 1, 6, 0),
		},
		{
			// 休息日：下一个班次在明天，但下一个零点更早
			name: "休息日的零点",
			from: at(2024, 1, 4, 10, 0),
			want: at(2024, 1, 5, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.NextBoundary(tt.from, nil)
			if !got.Equal(tt.want) {
				t.Fatalf("期望 %v，得到 %v", tt.want, got)
			}
		})
	}
}

// 边界计算必须是全函数：即使整个模式都是休息日也要返回下一个零点
func TestNextBoundaryAllOffPattern(t *testing.T) {
	ws := threeShifts()
	ws.Pattern = "0"
	e := mustEngine(t, ws)

	got := e.NextBoundary(at(2024, 6, 1, 13, 30), nil)
	if want := at(2024, 6, 2, 0, 0); !got.Equal(want) {
		t.Fatalf("期望 %v，得到 %v", want, got)
	}
}

func TestEventsBetween(t *testing.T) {
	e := mustEngine(t, threeShifts())

	// 区间从 1 月 4 日凌晨开始：1 月 3 日的夜班跨夜延伸进来，也要列出
	events := e.EventsBetween(at(2024, 1, 4, 0, 0), at(2024, 1, 6, 0, 0), nil)
	if len(events) != 2 {
		t.Fatalf("期望 2 个班次实例，得到 %d 个", len(events))
	}
	if events[0].ShiftIndex != 3 || !events[0].Start.Equal(at(2024, 1, 3, 22, 0)) {
		t.Errorf("第一个实例应是 1 月 3 日的跨夜班次，得到 %+v", events[0])
	}
	if events[1].ShiftIndex != 1 || !events[1].Start.Equal(at(2024, 1, 5, 6, 0)) {
		t.Errorf("第二个实例应是 1 月 5 日的早班，得到 %+v", events[1])
	}
}

// 单字符模式是合法的：每天都一样
func TestSingleDayPattern(t *testing.T) {
	ws := threeShifts()
	ws.Pattern = "2"
	e := mustEngine(t, ws)

	for _, d := range []time.Time{date(2024, 1, 1), date(2024, 1, 2), date(2030, 12, 25)} {
		if res := e.ResolveDay(d, SignalUnknown); res.ShiftIndex != 2 {
			t.Errorf("%s: 期望班次 2，得到 %d", d.Format(dateLayout), res.ShiftIndex)
		}
	}
}
