package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mitra9917/FinDash/internal/amqp"
	"github.com/mitra9917/FinDash/internal/cli"
	"github.com/mitra9917/FinDash/internal/export"
	exportgoogle "github.com/mitra9917/FinDash/internal/export/google"
	exportmem "github.com/mitra9917/FinDash/internal/export/memory"
	"github.com/mitra9917/FinDash/internal/log"
	"github.com/mitra9917/FinDash/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("Starting findash-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	store := cli.InitStore(logger, cfg)
	defer store.Close()

	// Sheet export target: Google Sheets when configured, otherwise an
	// in-memory sheet so the worker still drains the queue.
	var (
		appender export.TransactionAppender
		budgets  export.BudgetWriter
	)
	if cfg.GoogleSpreadsheetID != "" {
		client, err := exportgoogle.NewFromConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		appender, budgets = client, client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		sheet := exportmem.New()
		appender, budgets = sheet, sheet
		logger.Info("Sheet export disabled - no GOOGLE_SPREADSHEET_ID provided, using in-memory sink")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exportWorker := worker.NewExportWorker(store, appender, budgets, cfg.ExportBatchSize)

	// Mark existing history as mirrored so a restart does not re-append it
	exportWorker.StartupCheck(ctx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeLedgerEvents(gctx, exportWorker.HandleLedgerEvent)
	})

	// Periodic sweep for any missed messages
	g.Go(func() error {
		ticker := time.NewTicker(cfg.ExportInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := exportWorker.ProcessPending(gctx); err != nil {
					logger.Error("Periodic export sweep failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
