package routes

import (
	"errors"
	"net/http"

	"castnet/internal/server/middleware"
	"castnet/pkg/logger"
	"castnet/pkg/store"

	"github.com/labstack/echo/v4"
)

// DeleteAnalysisHandler removes an analysis and its stored result.
func DeleteAnalysisHandler(c echo.Context) error {
	type deleteAnalysisResponse struct {
		Message string `json:"message"`
	}

	id := c.Param("id")
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	if err := app.Store.DeleteAnalysis(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, deleteAnalysisResponse{
				Message: "Analysis not found",
			})
		}
		logger.Error("Failed to delete analysis", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, deleteAnalysisResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, deleteAnalysisResponse{
		Message: "Analysis deleted",
	})
}
