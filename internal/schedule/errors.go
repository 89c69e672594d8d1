package schedule

import (
	"fmt"
	"strings"
)

// ErrorKind 标识配置校验失败的类别
type ErrorKind string

const (
	InvalidShiftCount      ErrorKind = "invalid_shift_count"
	InvalidTimeFormat      ErrorKind = "invalid_time_format"
	TimesNotSorted         ErrorKind = "times_not_sorted"
	InvalidDuration        ErrorKind = "invalid_duration"
	InvalidDate            ErrorKind = "invalid_date"
	InvalidSchedulePattern ErrorKind = "invalid_schedule_pattern"
	EmptySchedulePattern   ErrorKind = "empty_schedule_pattern"
)

// FieldError 描述单个字段的校验失败
type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors 汇总所有字段的校验失败，一次返回给调用方
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}
