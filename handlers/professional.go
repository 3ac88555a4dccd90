package handlers

import (
	"net/http"

	"homepro/models"
	"homepro/services/professional"
	"homepro/utils"

	"github.com/gin-gonic/gin"
)

// ProfessionalHandler serves profile reads and the professional's own settings.
type ProfessionalHandler struct {
	Service professional.ProfessionalService
}

type scheduleRequest struct {
	WeeklySchedule    models.WeeklySchedule `json:"weeklySchedule" binding:"required"`
	BufferTimeMinutes int                   `json:"bufferTimeMinutes"`
}

type blockedDatesRequest struct {
	BlockedDates []string `json:"blockedDates"`
}

func (h *ProfessionalHandler) GetProfessionalHandler(c *gin.Context) {
	pro, err := h.Service.GetProfessional(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "load professional", err)
		return
	}
	c.JSON(http.StatusOK, pro)
}

func (h *ProfessionalHandler) UpdateScheduleHandler(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	pro, err := h.Service.UpdateSchedule(c.Request.Context(), c.Param("id"), req.WeeklySchedule, req.BufferTimeMinutes)
	if err != nil {
		respondError(c, "update schedule", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule updated", "professional": pro})
}

func (h *ProfessionalHandler) UpdateVacationHandler(c *gin.Context) {
	var req professional.VacationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	pro, err := h.Service.UpdateVacation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "update vacation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vacation updated", "professional": pro})
}

func (h *ProfessionalHandler) UpdateBlockedDatesHandler(c *gin.Context) {
	var req blockedDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	pro, err := h.Service.UpdateBlockedDates(c.Request.Context(), c.Param("id"), req.BlockedDates)
	if err != nil {
		respondError(c, "update blocked dates", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blocked dates updated", "professional": pro})
}

func (h *ProfessionalHandler) UpdateServiceAreasHandler(c *gin.Context) {
	var req professional.CoverageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	pro, err := h.Service.UpdateServiceAreas(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "update service areas", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service areas updated", "professional": pro})
}
