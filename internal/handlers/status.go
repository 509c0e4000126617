package handlers

import (
	"context"
	"net/http"
	"time"

	"realassist/internal/database"
	"realassist/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

const statusCheckTimeout = 5 * time.Second

// VectorChecker reports vector index reachability.
type VectorChecker interface {
	Healthy(ctx context.Context) error
}

// StatusHandler reports combined system status: database connectivity,
// vector store reachability and the last hour's inquiry volume
// @Summary System status
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Router /api/inquiries/status [get]
func StatusHandler(db *sqlx.DB, vector VectorChecker, store *database.InquiryStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), statusCheckTimeout)
		defer cancel()

		response := models.StatusResponse{
			DatabaseStatus:    "healthy",
			VectorStoreStatus: "healthy",
			LastCheck:         time.Now().UTC(),
		}

		if db == nil || db.PingContext(ctx) != nil {
			response.DatabaseStatus = "unhealthy"
		}
		if vector == nil || vector.Healthy(ctx) != nil {
			response.VectorStoreStatus = "unhealthy"
		}

		if store != nil {
			since := time.Now().UTC().Add(-time.Hour)
			if count, err := store.CountSince(ctx, since); err == nil {
				response.RecentInquiries = count
			}
		}

		response.Status = "healthy"
		if response.DatabaseStatus != "healthy" || response.VectorStoreStatus != "healthy" {
			response.Status = "degraded"
		}

		return c.JSON(http.StatusOK, response)
	}
}
