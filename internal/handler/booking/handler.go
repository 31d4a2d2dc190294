package booking

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/barberbook/barber-api/internal/middleware"
	"github.com/barberbook/barber-api/internal/model"
	"github.com/barberbook/barber-api/internal/service/booking"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
	"github.com/barberbook/barber-api/pkg/httputil"
	"github.com/barberbook/barber-api/pkg/metrics"
)

type Handler struct {
	service *booking.Service
	metrics *metrics.Metrics
}

func NewHandler(service *booking.Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/bookings")
	{
		grp.POST("", h.Create)
		grp.GET("", h.List)
		grp.GET("/calendar", h.Calendar)
		grp.GET("/:id", h.Get)
		grp.PUT("/:id", h.Update)
		grp.PATCH("/:id", h.Update)
		grp.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("authentication required", nil))
		return
	}

	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		if h.metrics != nil && apperrors.IsConflict(err) {
			h.metrics.BookingConflicts.Inc()
		}
		httputil.RespondWithError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.BookingsCreated.Inc()
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) List(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("authentication required", nil))
		return
	}

	bookings, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, bookings)
}

func (h *Handler) Get(c *gin.Context) {
	actor, id, err := h.actorAndID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	found, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) Update(c *gin.Context) {
	actor, id, err := h.actorAndID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if h.metrics != nil && req.Status != nil && *req.Status == model.BookingStatusCancelled {
		h.metrics.BookingsCancelled.Inc()
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	actor, id, err := h.actorAndID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}

// Calendar returns the acting barber's bookings grouped by date. The range
// filter applies only when both start_date and end_date are supplied.
func (h *Handler) Calendar(c *gin.Context) {
	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("authentication required", nil))
		return
	}

	days, err := h.service.Calendar(c.Request.Context(), actor, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, days)
}

func (h *Handler) actorAndID(c *gin.Context) (*model.AuthContext, uuid.UUID, error) {
	actor, ok := middleware.Actor(c)
	if !ok {
		return nil, uuid.Nil, apperrors.Unauthorized("authentication required", nil)
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, uuid.Nil, apperrors.BadRequest("invalid booking id", err)
	}
	return actor, id, nil
}
