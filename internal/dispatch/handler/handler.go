package handler

import (
	"net/http"

	"cleanops_backend/internal/dispatch/service"
	"cleanops_backend/internal/dispatch/transport"
	"cleanops_backend/platform/httpkit"
	"cleanops_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request body"
	msgValidationFailed = "validation failed"
)

// Handler handles admin HTTP requests for the worker roster and dispatch.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new dispatch handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the dispatch admin routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/workers", h.ListWorkers)
	rg.GET("/workers/available", h.AvailableWorkers)
	rg.GET("/workers/:id", h.GetWorker)
	rg.GET("/workers/:id/schedule", h.WorkerSchedule)
	rg.GET("/workers/:id/metrics", h.WorkerMetrics)
	rg.POST("/workers", h.UpsertWorker)
	rg.PATCH("/workers/:id/active", h.SetActive)
	rg.POST("/assign", h.Assign)
	rg.POST("/reassign", h.Reassign)
}

// ListWorkers handles GET /api/v1/admin/dispatch/workers
func (h *Handler) ListWorkers(c *gin.Context) {
	workers := h.svc.Roster()
	out := make([]transport.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		out = append(out, toWorkerResponse(w))
	}
	httpkit.OK(c, out)
}

// AvailableWorkers handles GET /api/v1/admin/dispatch/workers/available
func (h *Handler) AvailableWorkers(c *gin.Context) {
	var req transport.AvailableWorkersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	workers, err := h.svc.AvailableWorkers(req.Date, req.Time, req.Duration)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		out = append(out, toWorkerResponse(w))
	}
	httpkit.OK(c, out)
}

// GetWorker handles GET /api/v1/admin/dispatch/workers/:id
func (h *Handler) GetWorker(c *gin.Context) {
	worker, err := h.svc.GetWorker(c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toWorkerResponse(worker))
}

// WorkerSchedule handles GET /api/v1/admin/dispatch/workers/:id/schedule?date=YYYY-MM-DD
func (h *Handler) WorkerSchedule(c *gin.Context) {
	workerID := c.Param("id")
	date := c.Query("date")
	if err := h.val.Var(date, "required,datetime=2006-01-02"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
		return
	}

	day, err := h.svc.WorkerSchedule(workerID, date)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.ScheduleResponse{
		WorkerID:    workerID,
		Date:        date,
		WindowStart: service.RenderClock(day.WindowStart),
		WindowEnd:   service.RenderClock(day.WindowEnd),
		Booked:      make([]transport.ReservationResponse, 0, len(day.Booked)),
	}
	for _, r := range day.Booked {
		resp.Booked = append(resp.Booked, transport.ReservationResponse{
			Start:     service.RenderClock(r.StartMinute),
			End:       service.RenderClock(r.EndMinute),
			BookingID: r.BookingID,
		})
	}
	httpkit.OK(c, resp)
}

// WorkerMetrics handles GET /api/v1/admin/dispatch/workers/:id/metrics
func (h *Handler) WorkerMetrics(c *gin.Context) {
	m, err := h.svc.WorkerMetrics(c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.MetricsResponse{
		WorkerID:      m.WorkerID,
		Name:          m.Name,
		Rating:        m.Rating,
		CompletedJobs: m.CompletedJobs,
		IsActive:      m.IsActive,
		UpcomingJobs:  m.UpcomingJobs,
		DailyLoad:     m.DailyLoad,
	})
}

// UpsertWorker handles POST /api/v1/admin/dispatch/workers
func (h *Handler) UpsertWorker(c *gin.Context) {
	var req transport.UpsertWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err := h.svc.UpsertWorker(c.Request.Context(), service.Worker{
		ID:                req.ID,
		Name:              req.Name,
		Phone:             req.Phone,
		Skills:            req.Skills,
		Zones:             req.Zones,
		PreferredJobTypes: req.PreferredJobTypes,
		MaxDailyJobs:      req.MaxDailyJobs,
		Rating:            req.Rating,
		CompletedJobs:     req.CompletedJobs,
		IsActive:          req.IsActive,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	worker, err := h.svc.GetWorker(req.ID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, toWorkerResponse(worker))
}

// SetActive handles PATCH /api/v1/admin/dispatch/workers/:id/active
func (h *Handler) SetActive(c *gin.Context) {
	var req transport.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err := h.svc.SetWorkerActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"id": c.Param("id"), "isActive": *req.IsActive})
}

// Assign handles POST /api/v1/admin/dispatch/assign
func (h *Handler) Assign(c *gin.Context) {
	var req transport.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	assignment, err := h.svc.ManualAssign(c.Request.Context(), service.Job{
		BookingID:     req.BookingID,
		Address:       req.Address,
		ServiceType:   req.ServiceType,
		ServiceDate:   req.ServiceDate,
		ServiceTime:   req.ServiceTime,
		DurationHours: req.DurationHours,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.AssignmentResponse{
		BookingID: req.BookingID,
		Assigned:  assignment.Assigned,
		Reason:    assignment.Reason,
	}
	if assignment.Assigned {
		w := toWorkerResponse(assignment.Worker)
		resp.Worker = &w
	}
	for _, alt := range assignment.Alternatives {
		resp.Alternatives = append(resp.Alternatives, transport.WorkerRefResponse{ID: alt.ID, Name: alt.Name})
	}
	httpkit.OK(c, resp)
}

// Reassign handles POST /api/v1/admin/dispatch/reassign
func (h *Handler) Reassign(c *gin.Context) {
	var req transport.ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	worker, err := h.svc.ReassignBooking(c.Request.Context(), req.BookingID, req.ServiceDate, req.ToWorkerID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{
		"bookingId": req.BookingID,
		"worker":    toWorkerResponse(worker),
	})
}

func toWorkerResponse(w *service.Worker) transport.WorkerResponse {
	return transport.WorkerResponse{
		ID:                w.ID,
		Name:              w.Name,
		Phone:             w.Phone,
		Skills:            w.Skills,
		Zones:             w.Zones,
		PreferredJobTypes: w.PreferredJobTypes,
		MaxDailyJobs:      w.MaxDailyJobs,
		Rating:            w.Rating,
		CompletedJobs:     w.CompletedJobs,
		IsActive:          w.IsActive,
	}
}
