package http

import (
	"net/http"

	"github.com/mauv0809/rally-stats/internal/config"
	"github.com/mauv0809/rally-stats/internal/notifier"
	"github.com/mauv0809/rally-stats/internal/service"
)

type Server struct {
	Players        service.PlayerService
	Tests          service.TestService
	Results        service.ResultService
	Notifier       notifier.Notifier
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message,omitempty"`
	Fields  []service.FieldError `json:"fields,omitempty"`
}
