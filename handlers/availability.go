package handlers

import (
	"net/http"
	"strconv"

	"homepro/models"
	"homepro/services/booking"
	"homepro/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves the customer-facing availability endpoints.
type AvailabilityHandler struct {
	Service booking.AvailabilityService
}

type slotCheckRequest struct {
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Duration int    `json:"duration" binding:"required"`
}

// GetSlotsHandler lists the bookable start times for a day.
func (h *AvailabilityHandler) GetSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "date is required")
		return
	}
	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "duration must be a number of minutes")
		return
	}
	interval := 0
	if raw := c.Query("interval"); raw != "" {
		if interval, err = strconv.Atoi(raw); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "interval must be a number of minutes")
			return
		}
	}

	slots, err := h.Service.GetDaySlots(c.Request.Context(), c.Param("id"), date, duration, interval)
	if err != nil {
		respondError(c, "load slots", err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// CheckSlotHandler decides whether one candidate slot can be booked.
func (h *AvailabilityHandler) CheckSlotHandler(c *gin.Context) {
	var req slotCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	result, err := h.Service.CheckSlot(c.Request.Context(), c.Param("id"), req.Date, req.Time, req.Duration)
	if err != nil {
		respondError(c, "check availability", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// TravelFeeHandler quotes the travel fee from the professional to the customer.
func (h *AvailabilityHandler) TravelFeeHandler(c *gin.Context) {
	var customer models.CustomerLocation
	if err := c.ShouldBindJSON(&customer); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	quote, err := h.Service.QuoteTravelFee(c.Request.Context(), c.Param("id"), customer)
	if err != nil {
		respondError(c, "quote travel fee", err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// NearbyHandler finds professionals whose coverage includes the customer.
func (h *AvailabilityHandler) NearbyHandler(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "lat and lon are required")
		return
	}
	q := booking.NearbyQuery{
		Customer:    models.CustomerLocation{Latitude: &lat, Longitude: &lon},
		ServiceType: c.Query("serviceType"),
	}
	if raw := c.Query("maxKm"); raw != "" {
		maxKm, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxKm < 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "maxKm must be a positive number")
			return
		}
		q.MaxDistanceKm = maxKm
	}

	results, err := h.Service.FindNearby(c.Request.Context(), q)
	if err != nil {
		respondError(c, "search professionals", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"professionals": results})
}
