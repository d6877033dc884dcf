package routes

import (
	"net/http"

	"castnet/internal/server/middleware"
	"castnet/internal/storage"
	"castnet/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DeleteDocumentHandler removes an uploaded document from S3 by its object key.
func DeleteDocumentHandler(c echo.Context) error {
	type deleteDocumentResponse struct {
		Message string `json:"message"`
	}

	key := c.Param("*")
	if key == "" {
		return c.JSON(http.StatusBadRequest, deleteDocumentResponse{
			Message: "Missing document key",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	if err := storage.DeleteFile(ctx, app.S3, key); err != nil {
		logger.Error("Failed to delete document", "key", key, "err", err)
		return c.JSON(http.StatusInternalServerError, deleteDocumentResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, deleteDocumentResponse{
		Message: "Document deleted",
	})
}
