package schedule

import (
	"testing"

	"github.com/workshift-tools/workshift/backend/internal/domain"
)

func validInput() *domain.Workshift {
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

func TestValidateOK(t *testing.T) {
	if errs := Validate(validInput()); len(errs) != 0 {
		t.Fatalf("合法配置不应有校验错误，得到 %v", errs)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ws *domain.Workshift)
		field  string
		kind   ErrorKind
	}{
		{
			name:   "班次数为 0",
			mutate: func(ws *domain.Workshift) { ws.ShiftCount = 0 },
			field:  "shiftCount",
			kind:   InvalidShiftCount,
		},
		{
			name:   "班次数为 10",
			mutate: func(ws *domain.Workshift) { ws.ShiftCount = 10 },
			field:  "shiftCount",
			kind:   InvalidShiftCount,
		},
		{
			name: "开始时间格式错误",
			mutate: func(ws *domain.Workshift) {
				ws.StartTimes = []string{"06:00", "25:00", "22:00"}
			},
			field: "startTimes",
			kind:  InvalidTimeFormat,
		},
		{
			name: "开始时间数量与班次数不一致",
			mutate: func(ws *domain.Workshift) {
				ws.StartTimes = []string{"06:00", "14:00"}
			},
			field: "startTimes",
			kind:  InvalidTimeFormat,
		},
		{
			name: "开始时间未严格递增",
			mutate: func(ws *domain.Workshift) {
				ws.ShiftCount = 2
				ws.StartTimes = []string{"09:00", "08:00"}
				ws.Pattern = "120"
			},
			field: "startTimes",
			kind:  TimesNotSorted,
		},
		{
			name:   "时长为 0",
			mutate: func(ws *domain.Workshift) { ws.DurationHours = 0 },
			field:  "durationHours",
			kind:   InvalidDuration,
		},
		{
			name:   "时长为负",
			mutate: func(ws *domain.Workshift) { ws.DurationHours = -8 },
			field:  "durationHours",
			kind:   InvalidDuration,
		},
		{
			name:   "起始日期不合法",
			mutate: func(ws *domain.Workshift) { ws.PatternStart = "2024-02-30" },
			field:  "patternStart",
			kind:   InvalidDate,
		},
		{
			name:   "模式中的数字超过班次数",
			mutate: func(ws *domain.Workshift) { ws.Pattern = "05" },
			field:  "pattern",
			kind:   InvalidSchedulePattern,
		},
		{
			name:   "模式包含非数字字符",
			mutate: func(ws *domain.Workshift) { ws.Pattern = "12a0" },
			field:  "pattern",
			kind:   InvalidSchedulePattern,
		},
		{
			name:   "模式为空",
			mutate: func(ws *domain.Workshift) { ws.Pattern = "" },
			field:  "pattern",
			kind:   EmptySchedulePattern,
		},
		{
			name: "休息日区间结束早于开始",
			mutate: func(ws *domain.Workshift) {
				ws.DaysOff = []domain.DateRange{{Start: "2024-03-10", End: "2024-03-01"}}
			},
			field: "daysOff",
			kind:  InvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := validInput()
			tt.mutate(ws)

			errs := Validate(ws)
			if len(errs) == 0 {
				t.Fatal("期望校验失败，但没有任何错误")
			}
			found := false
			for _, fe := range errs {
				if fe.Field == tt.field && fe.Kind == tt.kind {
					found = true
				}
			}
			if !found {
				t.Fatalf("期望字段 %s 出现 %s 错误，得到 %v", tt.field, tt.kind, errs)
			}
		})
	}
}

// 不同字段的错误应当一次性全部收集，而不是逐个返回
func TestValidateCollectsAllFieldErrors(t *testing.T) {
	ws := validInput()
	ws.ShiftCount = 0
	ws.DurationHours = -1
	ws.PatternStart = "昨天"

	errs := Validate(ws)
	if len(errs) < 3 {
		t.Fatalf("期望至少 3 个字段错误，得到 %d 个: %v", len(errs), errs)
	}

	fields := make(map[string]bool)
	for _, fe := range errs {
		fields[fe.Field] = true
	}
	for _, f := range []string{"shiftCount", "durationHours", "patternStart"} {
		if !fields[f] {
			t.Errorf("缺少字段 %s 的错误", f)
		}
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	ws := validInput()
	ws.Pattern = "9"

	if _, err := NewEngine(ws); err == nil {
		t.Fatal("期望构造失败")
	}

	if _, err := NewEngine(validInput()); err != nil {
		t.Fatalf("合法配置构造失败: %v", err)
	}
}
