package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"searchd/internal/config"
	"searchd/internal/httpapi"
	"searchd/internal/model"
	"searchd/internal/predictor"
	"searchd/internal/store"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("load configuration")
	}

	// Flags override config file and environment.
	addr := flag.String("addr", cfg.Addr, "HTTP listen address, e.g. :8080")
	modelDir := flag.String("model-dir", cfg.ModelDir, "Directory holding columns.json, dtypes.json and pipeline.json")
	dbTarget := flag.String("db", cfg.StoreTarget(), "SQLite file path or postgres:// URL for the prediction store")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	httpapi.SetLogger(logger)
	if cfg.MaxBodyBytes > 0 {
		httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	}
	httpapi.SetCORSOptions(cfg.CORS(), cfg.CORSOrigins,
		[]string{http.MethodGet, http.MethodPost}, []string{"Content-Type", "X-Log-Level"})

	art, err := model.Load(*modelDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", *modelDir).Msg("load model artifact")
	}
	st, err := store.Open(*dbTarget)
	if err != nil {
		logger.Fatal().Err(err).Msg("open prediction store")
	}
	defer st.Close()

	svc := predictor.New(art, st)

	// Base context canceled on shutdown so in-flight predictions stop too.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(svc)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", *addr).
			Str("model_dir", art.Path()).
			Str("store", st.Driver()).
			Msg("searchd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
	cancelBase()
}
