package routes

import (
	"errors"
	"net/http"
	"strconv"

	"castnet/internal/server/middleware"
	"castnet/pkg/logger"
	"castnet/pkg/store"

	"github.com/labstack/echo/v4"
)

// GetAnalysisHandler returns a single analysis with its status and, once
// completed, the materialized graph.
func GetAnalysisHandler(c echo.Context) error {
	type getAnalysisResponse struct {
		Message  string          `json:"message"`
		Analysis *store.Analysis `json:"analysis,omitempty"`
	}

	id := c.Param("id")
	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	analysis, err := app.Store.GetAnalysis(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, getAnalysisResponse{
				Message: "Analysis not found",
			})
		}
		logger.Error("Failed to get analysis", "id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, getAnalysisResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getAnalysisResponse{
		Message:  "OK",
		Analysis: analysis,
	})
}

// GetAnalysesHandler lists analyses, newest first.
func GetAnalysesHandler(c echo.Context) error {
	type getAnalysesResponse struct {
		Message  string           `json:"message"`
		Analyses []store.Analysis `json:"analyses,omitempty"`
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	analyses, err := app.Store.ListAnalyses(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list analyses", "err", err)
		return c.JSON(http.StatusInternalServerError, getAnalysesResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getAnalysesResponse{
		Message:  "OK",
		Analyses: analyses,
	})
}
