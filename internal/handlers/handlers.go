package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cristianadrielbraun/qrstyle/internal/pipeline"
)

// Handler holds the dependencies shared by the HTTP handlers. Requests share
// no mutable state.
type Handler struct {
	log    zerolog.Logger
	runner *pipeline.Runner
}

// New returns a new Handler instance.
func New(log zerolog.Logger) *Handler {
	return &Handler{log: log, runner: pipeline.New(log)}
}

// Register mounts the API routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Healthz)
	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/htmx/toast", h.GenericToast)
	}
}

// Healthz reports that the server is up.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
