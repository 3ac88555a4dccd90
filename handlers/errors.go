package handlers

import (
	"errors"
	"net/http"

	"homepro/services/booking"
	"homepro/services/professional"
	"homepro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, action string, err error) {
	var verr *professional.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", verr.Error())
	case errors.Is(err, booking.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, booking.ErrProfessionalNotFound), errors.Is(err, professional.ErrProfessionalNotFound):
		utils.JSONError(c, http.StatusNotFound, "Professional not found", "")
	default:
		getLogger(c).Error("Failed to "+action, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to "+action, "")
	}
}
