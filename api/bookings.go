package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skylift/skybook/internal/metrics"
	"github.com/skylift/skybook/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

type verifyFlightRequest struct {
	FlightID       int64  `json:"flight_id"`
	ReturnFlightID *int64 `json:"return_flight_id,omitempty"`
}

func (h *BookingHandler) Register(public, admin *gin.RouterGroup) {
	public.POST("/create-payment-intent", h.createPaymentIntent)
	public.POST("/confirm-booking", h.confirm)
	public.POST("/confirm-booking-paylater", h.confirmPayLater)
	public.POST("/verify-flight", h.verifyFlight)
	public.GET("/booking-details/:reference", h.get)

	admin.GET("/booking-list", h.list)
	admin.PATCH("/booking-cancel/:reference", h.cancel)
}

func (h *BookingHandler) createPaymentIntent(c *gin.Context) {
	var req booking.CreateIntentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intent, err := h.service.CreatePaymentIntent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment_intent_id": intent.ID,
		"client_secret":     intent.ClientSecret,
		"amount_cents":      intent.AmountCents,
		"currency":          intent.Currency,
	})
}

func (h *BookingHandler) confirm(c *gin.Context) {
	var req booking.ConfirmBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.ConfirmBooking(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.BookingsConfirmed.Inc()
	c.JSON(http.StatusCreated, result)
}

func (h *BookingHandler) confirmPayLater(c *gin.Context) {
	var req booking.ConfirmBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.ConfirmBookingPayLater(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *BookingHandler) verifyFlight(c *gin.Context) {
	var req verifyFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.VerifyFlight(c.Request.Context(), req.FlightID, req.ReturnFlightID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) list(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) get(c *gin.Context) {
	b, passengers, err := h.service.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b, "passengers": passengers})
}

func (h *BookingHandler) cancel(c *gin.Context) {
	result, err := h.service.Cancel(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
