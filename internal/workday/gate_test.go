package workday

import (
	"errors"
	"testing"
	"time"

	"github.com/workshift-tools/workshift/backend/internal/schedule"
)

type fakeLookup struct {
	holidays map[string]bool
	err      error
}

func (f *fakeLookup) IsHoliday(date string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.holidays[date], nil
}

func TestCalendarGateSignal(t *testing.T) {
	gate := NewCalendarGate(&fakeLookup{holidays: map[string]bool{
		"2024-01-01": true, // 元旦，周一
	}})

	tests := []struct {
		name string
		date time.Time
		want schedule.Signal
	}{
		{"周六", time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), schedule.SignalNonWorkday},
		{"周日", time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), schedule.SignalNonWorkday},
		{"节假日", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), schedule.SignalNonWorkday},
		{"普通工作日", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), schedule.SignalWorkday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.Signal(tt.date); got != tt.want {
				t.Fatalf("期望 %v，得到 %v", tt.want, got)
			}
		})
	}
}

// 节假日表不可用时必须返回 Unknown，而不是随便猜一个答案
func TestCalendarGateFailOpen(t *testing.T) {
	gate := NewCalendarGate(&fakeLookup{err: errors.New("数据库连接失败")})

	// 周末不需要查表，照常回答
	if got := gate.Signal(time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)); got != schedule.SignalNonWorkday {
		t.Fatalf("周末判定不依赖节假日表，得到 %v", got)
	}
	// 工作日需要查表，查不到就是 Unknown
	if got := gate.Signal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)); got != schedule.SignalUnknown {
		t.Fatalf("节假日表不可用时应返回 Unknown，得到 %v", got)
	}
}

func TestCalendarGateTomorrowSignal(t *testing.T) {
	gate := NewCalendarGate(&fakeLookup{holidays: map[string]bool{}})

	// 周五的次日是周六
	friday := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	if got := gate.TomorrowSignal(friday); got != schedule.SignalNonWorkday {
		t.Fatalf("周五的次日信号应为非工作日，得到 %v", got)
	}
}
