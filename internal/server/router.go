/* Copyright (c) 2025 David Bulkow */

package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the store contract onto a gin engine.
func NewRouter(store *Store, tokens *TokenAuthority, log *zap.Logger) *gin.Engine {
	h := &handler{store: store, tokens: tokens, log: log}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	auth := router.Group("/api/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/register", h.register)
	}

	router.GET("/api/rooms", h.rooms)
	router.GET("/api/reservations", h.reservations)
	router.GET("/api/reservations/availability", h.availability)

	protected := router.Group("/api/reservations")
	protected.Use(tokens.Middleware())
	{
		protected.POST("", h.create)
		protected.DELETE("/:id", h.delete)
	}

	return router
}

// requestLogger logs one line per request, carrying the client's
// correlation id when it sent one.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("reqid", c.GetHeader("X-Request-Id")))
	}
}
