// Command perfindex trains the student performance model once and serves the
// prediction form over HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ezoic/perfindex/dataset"
	"github.com/ezoic/perfindex/model_selection"
	"github.com/ezoic/perfindex/pipeline"
	"github.com/ezoic/perfindex/pkg/log"
	"github.com/ezoic/perfindex/web"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dataPath := flag.String("data", dataset.DefaultPath, "path to the student performance CSV")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	testSize := flag.Float64("test-size", model_selection.DefaultTestSize, "holdout fraction")
	seed := flag.Int64("seed", model_selection.DefaultSeed, "split seed")
	flag.Parse()

	log.SetupLogger(*logLevel)
	logger := log.GetLoggerWithName("perfindex")

	cfg := pipeline.NewConfig(
		pipeline.WithDataPath(*dataPath),
		pipeline.WithTestSize(*testSize),
		pipeline.WithSeed(*seed),
	)
	res, err := pipeline.Train(cfg)
	if err != nil {
		log.LogError(err, "Failed to train model", log.PathKey, cfg.DataPath)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := web.NewHandler(res).Routes()
	if err := web.Serve(ctx, *addr, handler, logger); err != nil {
		log.LogError(err, "Server stopped with error")
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
