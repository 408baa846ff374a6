package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vitos/crypto_gainers/internal/usecase"
	"go.uber.org/zap"
)

type Server struct {
	router  *http.ServeMux
	server  *http.Server
	tracker *usecase.TrackerService
	insight *usecase.InsightService
	hub     *Hub
	logger  *zap.Logger
}

func NewServer(
	port int,
	tracker *usecase.TrackerService,
	insight *usecase.InsightService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:  http.NewServeMux(),
		tracker: tracker,
		insight: insight,
		hub:     NewHub(logger),
		logger:  logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}

	// Every completed refresh is pushed to connected dashboards.
	tracker.Subscribe(func(res usecase.RefreshResult) {
		s.hub.Broadcast(renderPayload(res))
	})

	return s
}

func (s *Server) routes() {
	// Dashboard
	s.router.HandleFunc("GET /", s.handleDashboard)

	// Snapshots
	s.router.HandleFunc("GET /api/snapshots", s.handleSnapshots)
	s.router.HandleFunc("POST /api/refresh", s.handleRefresh)

	// Insight
	s.router.HandleFunc("POST /api/insight", s.handleInsight)

	// Status
	s.router.HandleFunc("GET /status", s.handleStatus)

	// Render-event push
	s.router.HandleFunc("GET /ws", s.handleWS)
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
