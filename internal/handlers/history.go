package handlers

import (
	"net/http"
	"strconv"
	"time"

	"realassist/internal/database"
	"realassist/internal/models"

	"github.com/labstack/echo/v4"
)

// HistoryHandler returns stored inquiries with filtering and pagination
// @Summary Inquiry history
// @Produce json
// @Param skip query int false "Records to skip"
// @Param limit query int false "Records to return (max 1000)"
// @Param email query string false "Filter by email"
// @Param category query string false "Filter by category"
// @Param date_from query string false "Filter from date (RFC3339)"
// @Param date_to query string false "Filter to date (RFC3339)"
// @Param search query string false "Substring search over message, response and email"
// @Success 200 {array} models.InquiryRecord
// @Failure 400 {object} models.ErrorResponse
// @Router /api/inquiries/history [get]
func HistoryHandler(store *database.InquiryStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := database.HistoryFilter{
			Email:    c.QueryParam("email"),
			Category: c.QueryParam("category"),
			Search:   c.QueryParam("search"),
		}

		filter.Skip, _ = strconv.Atoi(c.QueryParam("skip"))
		if filter.Skip < 0 {
			filter.Skip = 0
		}

		filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
		if filter.Limit <= 0 {
			filter.Limit = 100
		}
		if filter.Limit > 1000 {
			filter.Limit = 1000
		}

		if from := c.QueryParam("date_from"); from != "" {
			parsed, err := time.Parse(time.RFC3339, from)
			if err != nil {
				return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid date_from"})
			}
			filter.DateFrom = &parsed
		}
		if to := c.QueryParam("date_to"); to != "" {
			parsed, err := time.Parse(time.RFC3339, to)
			if err != nil {
				return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid date_to"})
			}
			filter.DateTo = &parsed
		}

		records, err := store.History(c.Request().Context(), filter)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		}
		if records == nil {
			records = []models.InquiryRecord{}
		}

		return c.JSON(http.StatusOK, records)
	}
}

// HistoryByIDHandler returns a single stored inquiry
// @Summary Inquiry by id
// @Produce json
// @Param id path int true "Inquiry id"
// @Success 200 {object} models.InquiryRecord
// @Failure 404 {object} models.ErrorResponse
// @Router /api/inquiries/history/{id} [get]
func HistoryByIDHandler(store *database.InquiryStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid inquiry id"})
		}

		record, err := store.GetByID(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Inquiry not found"})
		}

		return c.JSON(http.StatusOK, record)
	}
}
