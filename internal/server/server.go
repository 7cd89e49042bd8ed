// Package server exposes the submission pipeline over HTTP for the web front
// end: one proxy endpoint that formats, validates and forwards a profile, and
// a health probe.
package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/heartbeam/matchsim/internal/scoring"
)

type Server struct {
	router *gin.Engine
	scorer scoring.Scorer
	logger *zap.Logger
}

func New(scorer scoring.Scorer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		scorer: scorer,
		logger: log,
	}

	router.POST("/api/submit-form", s.handleSubmitForm)
	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	return s
}

// Run blocks serving HTTP on the given address.
func (s *Server) Run(addr string) error {
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
