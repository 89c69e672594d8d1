package handler

import (
	"log/slog"
	"net/http"

	"github.com/workshift-tools/workshift/backend/internal/domain"
	"github.com/workshift-tools/workshift/backend/internal/schedule"
)

func (h *Handler) CreateWorkshift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name              string             `json:"name" validate:"required"`
		OwnerEmail        string             `json:"ownerEmail" validate:"omitempty,email"`
		ShiftCount        int                `json:"shiftCount"`
		StartTimes        []string           `json:"startTimes"`
		DurationHours     float64            `json:"durationHours"`
		Pattern           string             `json:"pattern"`
		PatternStart      string             `json:"patternStart"`
		GatePolicy        string             `json:"gatePolicy" validate:"omitempty,oneof=disabled today today_and_tomorrow"`
		HolidaysAlwaysOff bool               `json:"holidaysAlwaysOff"`
		DaysOff           []domain.DateRange `json:"daysOff"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.GatePolicy == "" {
		req.GatePolicy = string(domain.GateDisabled)
	}

	ws := &domain.Workshift{
		Name:              req.Name,
		OwnerEmail:        req.OwnerEmail,
		ShiftCount:        req.ShiftCount,
		StartTimes:        req.StartTimes,
		DurationHours:     req.DurationHours,
		Pattern:           req.Pattern,
		PatternStart:      req.PatternStart,
		GatePolicy:        domain.GatePolicy(req.GatePolicy),
		HolidaysAlwaysOff: req.HolidaysAlwaysOff,
		DaysOff:           req.DaysOff,
	}

	// 配置校验是唯一的准入关口，入库的配置一定是合法的
	if errs := schedule.Validate(ws); len(errs) > 0 {
		h.validationFailed(w, r, errs)
		return
	}

	if err := h.repository.CreateWorkshift(ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.notifyWorkshiftChanged(ws, "created"); err != nil {
		// 通知失败不影响创建本身
		slog.Warn("排班配置变更通知发送失败", "workshift", ws.ID, "error", err)
	}

	h.successResponse(w, r, "排班配置创建成功", ws)
}

func (h *Handler) GetAllWorkshifts(w http.ResponseWriter, r *http.Request) {
	workshifts, err := h.repository.GetAllWorkshifts()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班配置列表成功", workshifts)
}

func (h *Handler) GetWorkshift(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkshiftCtx).(*domain.Workshift)
	h.successResponse(w, r, "获取排班配置成功", ws)
}

func (h *Handler) UpdateWorkshift(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkshiftCtx).(*domain.Workshift)

	var req struct {
		Name              *string             `json:"name"`
		OwnerEmail        *string             `json:"ownerEmail" validate:"omitempty,email"`
		ShiftCount        *int                `json:"shiftCount"`
		StartTimes        *[]string           `json:"startTimes"`
		DurationHours     *float64            `json:"durationHours"`
		Pattern           *string             `json:"pattern"`
		PatternStart      *string             `json:"patternStart"`
		GatePolicy        *string             `json:"gatePolicy" validate:"omitempty,oneof=disabled today today_and_tomorrow"`
		HolidaysAlwaysOff *bool               `json:"holidaysAlwaysOff"`
		DaysOff           *[]domain.DateRange `json:"daysOff"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		ws.Name = *req.Name
	}
	if req.OwnerEmail != nil {
		ws.OwnerEmail = *req.OwnerEmail
	}
	if req.ShiftCount != nil {
		ws.ShiftCount = *req.ShiftCount
	}
	if req.StartTimes != nil {
		ws.StartTimes = *req.StartTimes
	}
	if req.DurationHours != nil {
		ws.DurationHours = *req.DurationHours
	}
	if req.Pattern != nil {
		ws.Pattern = *req.Pattern
	}
	if req.PatternStart != nil {
		ws.PatternStart = *req.PatternStart
	}
	if req.GatePolicy != nil {
		ws.GatePolicy = domain.GatePolicy(*req.GatePolicy)
	}
	if req.HolidaysAlwaysOff != nil {
		ws.HolidaysAlwaysOff = *req.HolidaysAlwaysOff
	}
	if req.DaysOff != nil {
		ws.DaysOff = *req.DaysOff
	}

	// 合并后的配置整体重新校验
	if errs := schedule.Validate(ws); len(errs) > 0 {
		h.validationFailed(w, r, errs)
		return
	}

	if err := h.repository.UpdateWorkshift(ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.notifyWorkshiftChanged(ws, "updated"); err != nil {
		slog.Warn("排班配置变更通知发送失败", "workshift", ws.ID, "error", err)
	}

	h.successResponse(w, r, "排班配置更新成功", ws)
}

func (h *Handler) DeleteWorkshift(w http.ResponseWriter, r *http.Request) {
	ws := r.Context().Value(WorkshiftCtx).(*domain.Workshift)

	if err := h.repository.DeleteWorkshift(ws.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.notifyWorkshiftChanged(ws, "deleted"); err != nil {
		slog.Warn("排班配置变更通知发送失败", "workshift", ws.ID, "error", err)
	}

	h.successResponse(w, r, "排班配置删除成功", nil)
}
