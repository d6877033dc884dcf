package routes

import (
	"encoding/json"
	"net/http"

	"castnet/internal/queue"
	"castnet/internal/server/middleware"
	"castnet/pkg/logger"
	"castnet/pkg/network"
	"castnet/pkg/store"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// CreateAnalysisHandler accepts a new analysis job and queues it for the worker.
func CreateAnalysisHandler(c echo.Context) error {
	type createAnalysisBody struct {
		SourceType   string   `json:"source_type" validate:"required,oneof=text s3 url"`
		Source       string   `json:"source" validate:"required"`
		MinMentions  int      `json:"min_mentions" validate:"omitempty,min=1"`
		UseSentiment bool     `json:"use_sentiment"`
		EntityLabels []string `json:"entity_labels"`
	}

	type createAnalysisResponse struct {
		Message  string          `json:"message"`
		Analysis *store.Analysis `json:"analysis,omitempty"`
	}

	data := new(createAnalysisBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createAnalysisResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createAnalysisResponse{
			Message: "Invalid request body",
		})
	}

	if data.MinMentions == 0 {
		data.MinMentions = network.DefaultMinMentions
	}
	if len(data.EntityLabels) == 0 {
		data.EntityLabels = []string{"PERSON"}
	}

	id, err := gonanoid.New()
	if err != nil {
		logger.Error("Failed to generate analysis id", "err", err)
		return c.JSON(http.StatusInternalServerError, createAnalysisResponse{
			Message: "Internal server error",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	analysis, err := app.Store.CreateAnalysis(ctx, store.CreateAnalysisParams{
		ID:         id,
		SourceType: data.SourceType,
		Source:     data.Source,
		Options: store.AnalysisOptions{
			MinMentions:  data.MinMentions,
			UseSentiment: data.UseSentiment,
			EntityLabels: data.EntityLabels,
		},
	})
	if err != nil {
		logger.Error("Failed to create analysis", "err", err)
		return c.JSON(http.StatusInternalServerError, createAnalysisResponse{
			Message: "Internal server error",
		})
	}

	msg, err := json.Marshal(queue.AnalyzeMsg{
		Message:    "New analysis",
		AnalysisID: analysis.ID,
	})
	if err != nil {
		logger.Error("Failed to marshal queue message", "err", err)
		return c.JSON(http.StatusInternalServerError, createAnalysisResponse{
			Message: "Internal server error",
		})
	}

	if err := queue.PublishFIFO(app.Queue, queue.AnalyzeQueue, msg); err != nil {
		logger.Error("Failed to publish analysis job", "id", analysis.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, createAnalysisResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusAccepted, createAnalysisResponse{
		Message:  "Analysis queued",
		Analysis: analysis,
	})
}
