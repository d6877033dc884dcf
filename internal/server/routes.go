package server

import (
	"castnet/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Analysis routes
	apiRoutes.POST("/analyses", routes.CreateAnalysisHandler)
	apiRoutes.GET("/analyses", routes.GetAnalysesHandler)
	apiRoutes.GET("/analyses/:id", routes.GetAnalysisHandler)
	apiRoutes.DELETE("/analyses/:id", routes.DeleteAnalysisHandler)

	// Document routes
	apiRoutes.POST("/documents", routes.UploadDocumentHandler)
	apiRoutes.DELETE("/documents/*", routes.DeleteDocumentHandler)
}
