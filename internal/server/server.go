package server

import (
	"net/http"

	"github.com/compmotifs/likeminds/internal/collector"
	"github.com/compmotifs/likeminds/internal/recommender"
	"github.com/compmotifs/likeminds/pkg/config"
	"github.com/compmotifs/likeminds/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/fx"
)

// Server exposes the pipeline over HTTP: a recommendations endpoint running
// the full collect-filter-rank flow and a likers endpoint for the reverse
// lookup. The interactive UI lives elsewhere and calls into this API.
type Server struct {
	Recommender recommender.Client
	Collector   collector.Client
	Config      *config.Config
	Logger      logger.Logger
}

type Opts struct {
	fx.In

	Recommender recommender.Client
	Collector   collector.Client
	Config      *config.Config
	Logger      logger.Logger
}

func New(opts Opts) *Server {
	return &Server{
		Recommender: opts.Recommender,
		Collector:   opts.Collector,
		Config:      opts.Config,
		Logger:      opts.Logger.WithComponent("HTTPServer"),
	}
}

// Handler builds the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/recommendations", s.handleRecommendations).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/likers", s.handleLikers).Methods(http.MethodPost)

	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		s.Logger.Error("Failed to write response", "error", err)
	}
}
