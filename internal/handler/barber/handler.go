package barber

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/barberbook/barber-api/internal/service/barber"
	"github.com/barberbook/barber-api/internal/service/booking"
	apperrors "github.com/barberbook/barber-api/pkg/errors"
	"github.com/barberbook/barber-api/pkg/httputil"
	"github.com/barberbook/barber-api/pkg/metrics"
)

// Handler serves the public barber catalog and availability endpoints.
type Handler struct {
	barbers  *barber.Service
	bookings *booking.Service
	metrics  *metrics.Metrics
}

func NewHandler(barbers *barber.Service, bookings *booking.Service, m *metrics.Metrics) *Handler {
	return &Handler{barbers: barbers, bookings: bookings, metrics: m}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/barbers")
	{
		grp.GET("", h.List)
		grp.GET("/:id", h.Get)
		grp.GET("/:id/availability", h.Availability)
		grp.GET("/:id/slots", h.Slots)
	}
}

func (h *Handler) List(c *gin.Context) {
	barbers, err := h.barbers.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, barbers)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid barber id", err))
		return
	}

	profile, err := h.barbers.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("date is required", nil))
		return
	}

	avail, err := h.bookings.Availability(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, avail)
}

// Slots returns the bookable grid for a date. The duration comes from
// service_id when given, otherwise from an explicit duration parameter.
func (h *Handler) Slots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httputil.RespondWithError(c, apperrors.BadRequest("date is required", nil))
		return
	}

	duration := 0
	if raw := c.Query("duration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid duration", err))
			return
		}
		duration = parsed
	}

	slots, err := h.bookings.Slots(c.Request.Context(), c.Param("id"), date, c.Query("service_id"), duration)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.SlotQueries.Inc()
	}

	httputil.RespondWithSuccess(c, gin.H{
		"date":  date,
		"slots": slots,
	})
}
