// Command export writes one cycle's aggregated results as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/godilite/feedback360-server/internal/app"
	"github.com/godilite/feedback360-server/internal/config"
	"github.com/godilite/feedback360-server/pkg/metrics"
)

func main() {
	cycleID := flag.String("cycle", "", "cycle id to export (required)")
	out := flag.String("out", "-", "output file, - for stdout")
	flag.Parse()

	_ = godotenv.Load(".env")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if *cycleID == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *cycleID, *out); err != nil {
		logger.Fatal("Export failed", zap.String("cycle", *cycleID), zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, cycleID, out string) (err error) {
	db, err := app.NewDatabase(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	svc := app.NewResultsService(db, cfg, logger, metrics.New())

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", out, cerr)
			}
		}()
		w = f
	}

	if err := svc.ExportCSV(ctx, cycleID, w); err != nil {
		return err
	}
	logger.Info("Export completed", zap.String("cycle", cycleID), zap.String("out", out))
	return nil
}
