package http

import (
	"net/http"

	"github.com/mauv0809/rally-stats/internal/config"
	"github.com/mauv0809/rally-stats/internal/notifier"
	"github.com/mauv0809/rally-stats/internal/service"
)

// NewServer wires the HTTP routes. notifier may be nil, in which case pushed events are acknowledged and dropped.
func NewServer(services *service.Services, notifier notifier.Notifier, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Players:        services.Players,
		Tests:          services.Tests,
		Results:        services.Results,
		Notifier:       notifier,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	if s.MetricsHandler != nil {
		s.Router.Handle("GET /metrics", s.MetricsHandler)
	}
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(s.CreatePlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{id}", Chain(s.GetPlayerHandler(), paramsMiddleware))
	s.Router.Handle("PATCH /players/{id}", Chain(s.UpdatePlayerHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /players/{id}", Chain(s.DeletePlayerHandler(), paramsMiddleware))

	s.Router.Handle("GET /tests", Chain(s.ListTestsHandler(), paramsMiddleware))
	s.Router.Handle("POST /tests", Chain(s.CreateTestHandler(), paramsMiddleware))
	s.Router.Handle("GET /tests/{id}", Chain(s.GetTestHandler(), paramsMiddleware))
	s.Router.Handle("PATCH /tests/{id}", Chain(s.UpdateTestHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /tests/{id}", Chain(s.DeleteTestHandler(), paramsMiddleware))

	s.Router.Handle("GET /results", Chain(s.ListResultsHandler(), paramsMiddleware))
	s.Router.Handle("POST /results", Chain(s.CreateResultHandler(), paramsMiddleware))
	s.Router.Handle("GET /results/{id}", Chain(s.GetResultHandler(), paramsMiddleware))
	s.Router.Handle("PATCH /results/{id}", Chain(s.UpdateResultHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /results/{id}", Chain(s.DeleteResultHandler(), paramsMiddleware))

	s.Router.Handle("POST /events/result-recorded", Chain(s.ResultRecordedHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
