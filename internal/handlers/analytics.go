package handlers

import (
	"net/http"
	"strconv"

	"realassist/internal/analytics"
	"realassist/internal/models"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandler summarizes inquiry activity
// @Summary Inquiry analytics
// @Produce json
// @Param days query int false "Window in days (1-365, default 30)"
// @Success 200 {object} models.AnalyticsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/inquiries/analytics [get]
func AnalyticsHandler(service *analytics.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		days, _ := strconv.Atoi(c.QueryParam("days"))
		if days <= 0 {
			days = 30
		}
		if days > 365 {
			days = 365
		}

		summary, err := service.Summary(c.Request().Context(), days)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		}

		return c.JSON(http.StatusOK, summary)
	}
}
