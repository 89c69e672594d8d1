package handler

import (
	"net/http"
	"time"

	"github.com/workshift-tools/workshift/backend/internal/domain"
	"github.com/workshift-tools/workshift/backend/internal/schedule"
)

// engineFromCtx 基于路由中间件加载的排班配置构造引擎。
// 入库的配置在创建/更新时已经校验过，这里构造失败属于内部错误
func (h *Handler) engineFromCtx(w http.ResponseWriter, r *http.Request) (*schedule.Engine, bool) {
	ws := r.Context().Value(WorkshiftCtx).(*domain.Workshift)
	engine, err := schedule.NewEngine(ws)
	if err != nil {
		h.internalServerError(w, r, err)
		return nil, false
	}
	return engine, true
}

func parseDateParam(r *http.Request, key string) (time.Time, bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

func parseTimeParam(r *http.Request, key string) (time.Time, bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

func (h *Handler) GetTodayShift(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.engineFromCtx(w, r)
	if !ok {
		return
	}

	target, given, err := parseDateParam(r, "date")
	if err != nil {
		h.errorResponse(w, r, "date 参数格式应为 YYYY-MM-DD")
		return
	}
	if !given {
		target = time.Now()
	}

	sig := h.workdayGate.Signal(target)
	h.successResponse(w, r, "获取当日班次成功", engine.ResolveDay(target, sig))
}

func (h *Handler) GetTomorrowShift(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.engineFromCtx(w, r)
	if !ok {
		return
	}

	today, given, err := parseDateParam(r, "date")
	if err != nil {
		h.errorResponse(w, r, "date 参数格式应为 YYYY-MM-DD")
		return
	}
	if !given {
		today = time.Now()
	}

	h.successResponse(w, r, "获取次日班次成功", engine.ResolveTomorrow(today, h.workdayGate))
}

func (h *Handler) GetActiveShift(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.engineFromCtx(w, r)
	if !ok {
		return
	}

	at, given, err := parseTimeParam(r, "at")
	if err != nil {
		h.errorResponse(w, r, "at 参数格式应为 RFC3339 时间")
		return
	}
	if !given {
		at = time.Now()
	}

	covering := engine.ShiftCovering(at, h.workdayGate)
	h.successResponse(w, r, "获取当前班次成功", map[string]any{
		"active": covering != nil,
		"shift":  covering,
	})
}

func (h *Handler) GetNextBoundary(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.engineFromCtx(w, r)
	if !ok {
		return
	}

	from, given, err := parseTimeParam(r, "from")
	if err != nil {
		h.errorResponse(w, r, "from 参数格式应为 RFC3339 时间")
		return
	}
	if !given {
		from = time.Now()
	}

	h.successResponse(w, r, "获取下一个刷新时刻成功", map[string]any{
		"nextBoundary": engine.NextBoundary(from, h.workdayGate),
	})
}

func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.engineFromCtx(w, r)
	if !ok {
		return
	}

	start, givenStart, err := parseDateParam(r, "start")
	if err != nil || !givenStart {
		h.errorResponse(w, r, "start 参数格式应为 YYYY-MM-DD")
		return
	}
	end, givenEnd, err := parseDateParam(r, "end")
	if err != nil || !givenEnd {
		h.errorResponse(w, r, "end 参数格式应为 YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		h.errorResponse(w, r, "end 不能早于 start")
		return
	}

	// 区间按日期闭区间理解，end 当天的班次也要包含进来
	events := engine.EventsBetween(start, end.AddDate(0, 0, 1), h.workdayGate)
	h.successResponse(w, r, "获取日历成功", events)
}
