package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skylift/skybook/internal/domain"
	"github.com/skylift/skybook/internal/repository"
	"github.com/skylift/skybook/internal/service/booking"
	"github.com/skylift/skybook/internal/service/users"
)

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrInsufficientSeats):
		status = http.StatusConflict
	case errors.Is(err, booking.ErrPaymentNotSucceeded):
		status = http.StatusPaymentRequired
	case errors.Is(err, users.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
