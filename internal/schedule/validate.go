package schedule

import (
	"fmt"
	"time"

	"github.com/workshift-tools/workshift/backend/internal/domain"
)

const (
	timeLayout = "15:04"
	dateLayout = "2006-01-02"

	minShiftCount = 1
	maxShiftCount = 9
)

// Validate 对原始配置做全量校验。
// 同一字段内遇到第一类错误即停止，但不同字段的错误会全部收集后一次返回，
// 方便前端表单一次展示所有问题
func Validate(ws *domain.Workshift) ValidationErrors {
	var errs ValidationErrors

	shiftCountOK := true
	if ws.ShiftCount < minShiftCount || ws.ShiftCount > maxShiftCount {
		shiftCountOK = false
		errs = append(errs, FieldError{
			Field:   "shiftCount",
			Kind:    InvalidShiftCount,
			Message: fmt.Sprintf("班次数必须在 %d 到 %d 之间", minShiftCount, maxShiftCount),
		})
	}

	// 开始时间：先检查格式，格式全部正确后再检查顺序
	startTimesOK := true
	if shiftCountOK && len(ws.StartTimes) != ws.ShiftCount {
		startTimesOK = false
		errs = append(errs, FieldError{
			Field:   "startTimes",
			Kind:    InvalidTimeFormat,
			Message: "开始时间的数量必须与班次数一致",
		})
	}
	parsed := make([]time.Time, 0, len(ws.StartTimes))
	for _, st := range ws.StartTimes {
		t, err := time.Parse(timeLayout, st)
		if err != nil {
			startTimesOK = false
			errs = append(errs, FieldError{
				Field:   "startTimes",
				Kind:    InvalidTimeFormat,
				Message: fmt.Sprintf("开始时间 %q 不符合 HH:MM 格式", st),
			})
			break
		}
		parsed = append(parsed, t)
	}
	if startTimesOK {
		// 序号顺序即重要性顺序，允许跨夜班次排在最后，但数组内必须严格递增
		for i := 1; i < len(parsed); i++ {
			if !parsed[i].After(parsed[i-1]) {
				errs = append(errs, FieldError{
					Field:   "startTimes",
					Kind:    TimesNotSorted,
					Message: "开始时间必须按数组顺序严格递增",
				})
				break
			}
		}
	}

	if ws.DurationHours <= 0 {
		errs = append(errs, FieldError{
			Field:   "durationHours",
			Kind:    InvalidDuration,
			Message: "班次时长必须大于 0",
		})
	}

	if _, err := time.Parse(dateLayout, ws.PatternStart); err != nil {
		errs = append(errs, FieldError{
			Field:   "patternStart",
			Kind:    InvalidDate,
			Message: fmt.Sprintf("起始日期 %q 不是合法的日历日期", ws.PatternStart),
		})
	}

	if len(ws.Pattern) == 0 {
		errs = append(errs, FieldError{
			Field:   "pattern",
			Kind:    EmptySchedulePattern,
			Message: "排班模式不能为空",
		})
	} else {
		for _, c := range ws.Pattern {
			if c < '0' || c > '9' {
				errs = append(errs, FieldError{
					Field:   "pattern",
					Kind:    InvalidSchedulePattern,
					Message: fmt.Sprintf("排班模式包含非数字字符 %q", c),
				})
				break
			}
			// 只有在班次数本身合法时才检查数字是否越界
			if shiftCountOK && int(c-'0') > ws.ShiftCount {
				errs = append(errs, FieldError{
					Field:   "pattern",
					Kind:    InvalidSchedulePattern,
					Message: fmt.Sprintf("排班模式中的数字 %c 超过了班次数 %d", c, ws.ShiftCount),
				})
				break
			}
		}
	}

	for _, dr := range ws.DaysOff {
		start, err1 := time.Parse(dateLayout, dr.Start)
		end, err2 := time.Parse(dateLayout, dr.End)
		if err1 != nil || err2 != nil {
			errs = append(errs, FieldError{
				Field:   "daysOff",
				Kind:    InvalidDate,
				Message: fmt.Sprintf("休息日区间 %s ~ %s 不是合法的日历日期", dr.Start, dr.End),
			})
			break
		}
		if end.Before(start) {
			errs = append(errs, FieldError{
				Field:   "daysOff",
				Kind:    InvalidDate,
				Message: fmt.Sprintf("休息日区间 %s ~ %s 的结束早于开始", dr.Start, dr.End),
			})
			break
		}
	}

	return errs
}
