package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"symptom-service/internal/config"
	"symptom-service/internal/diagnosis"
	serverhttp "symptom-service/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	// каталог грузится один раз; без него не стартуем
	eng, err := diagnosis.Load(diagnosis.Sources{
		CatalogPath:      cfg.CatalogPath,
		CatalogHeaderRow: cfg.CatalogHeaderRow,
		TreatmentPath:    cfg.TreatmentPath,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("engine init")
	}

	r := serverhttp.NewRouter(cfg, eng, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", cfg.Addr()).Int("diseases", eng.Stats.Diseases).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
