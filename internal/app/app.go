package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/compmotifs/likeminds/internal/bluesky"
	"github.com/compmotifs/likeminds/internal/classifier"
	"github.com/compmotifs/likeminds/internal/classifier/scienceimpl"
	"github.com/compmotifs/likeminds/internal/collector"
	"github.com/compmotifs/likeminds/internal/collector/collectorimpl"
	"github.com/compmotifs/likeminds/internal/embedding"
	"github.com/compmotifs/likeminds/internal/embedding/hashimpl"
	"github.com/compmotifs/likeminds/internal/embedding/openaiimpl"
	"github.com/compmotifs/likeminds/internal/identity"
	"github.com/compmotifs/likeminds/internal/identity/identityimpl"
	"github.com/compmotifs/likeminds/internal/recommender"
	"github.com/compmotifs/likeminds/internal/recommender/recommenderimpl"
	"github.com/compmotifs/likeminds/internal/server"
	"github.com/compmotifs/likeminds/pkg/config"
	"github.com/compmotifs/likeminds/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		bluesky.New,
	),
	fx.Provide(
		fx.Annotate(
			identityimpl.New,
			fx.As(new(identity.Resolver)),
		),
		fx.Annotate(
			collectorimpl.New,
			fx.As(new(collector.Client)),
		),
		fx.Annotate(
			scienceimpl.New,
			fx.As(new(classifier.Classifier)),
		),
		newEmbedder,
		fx.Annotate(
			recommenderimpl.New,
			fx.As(new(recommender.Client)),
		),
		server.New,
	),
	fx.Invoke(run),
)

// newEmbedder picks the embedding strategy: the remote semantic embedder
// when an API key is configured, the offline term-frequency hasher
// otherwise.
func newEmbedder(cfg *config.Config, log logger.Logger) embedding.Embedder {
	if cfg.Embedding.APIKey != "" {
		return openaiimpl.New(openaiimpl.Opts{Config: cfg, Logger: log})
	}
	log.Info("No embedding API key configured, using term-frequency embedder")
	return hashimpl.New(cfg.Embedding.Dimensions)
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, srv *server.Server) {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("Starting HTTP server", "port", cfg.App.Port)
			go func() {
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("HTTP server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return httpServer.Shutdown(ctx)
		},
	})
}
