package routes

import (
	"net/http"

	"castnet/internal/server/middleware"
	"castnet/internal/storage"
	"castnet/pkg/logger"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// UploadDocumentHandler stores an uploaded document in S3 and returns the
// object key to use as an analysis source.
func UploadDocumentHandler(c echo.Context) error {
	type uploadDocumentResponse struct {
		Message string `json:"message"`
		Key     string `json:"key,omitempty"`
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, uploadDocumentResponse{
			Message: "Missing file",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", "err", err)
		return c.JSON(http.StatusInternalServerError, uploadDocumentResponse{
			Message: "Internal server error",
		})
	}
	defer file.Close()

	id, err := gonanoid.New()
	if err != nil {
		logger.Error("Failed to generate document id", "err", err)
		return c.JSON(http.StatusInternalServerError, uploadDocumentResponse{
			Message: "Internal server error",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	key, err := storage.PutFile(ctx, app.S3, "documents", fileHeader.Filename, id, file)
	if err != nil {
		logger.Error("Failed to upload document", "err", err)
		return c.JSON(http.StatusInternalServerError, uploadDocumentResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusCreated, uploadDocumentResponse{
		Message: "Document uploaded",
		Key:     key,
	})
}
