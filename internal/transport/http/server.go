package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wsecho/internal/config"
	"github.com/vovakirdan/wsecho/internal/echo"
)

// HealthResponse is the body served on /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Connections int64  `json:"connections"`
}

// NewServer builds an HTTP server serving /health and the echo WebSocket on / and /ws.
// The WebSocket routes sit on the plain mux: gin's writer refuses to hijack once
// the 101 status has been written.
func NewServer(responder *echo.Responder, cfg config.ServerConfig, logger *zerolog.Logger) *stdhttp.Server {
	ws := NewWSHandler(responder, cfg.ReadLimit, logger)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(stdhttp.StatusOK, HealthResponse{Status: "ok", Connections: ws.Active()})
	})

	mux := stdhttp.NewServeMux()
	mux.Handle("/health", router)
	mux.Handle("/{$}", ws)
	mux.Handle("/ws", ws)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
