package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/roboard/spares-kiosk/internal/config"
	"github.com/roboard/spares-kiosk/internal/handlers"
	"github.com/roboard/spares-kiosk/internal/metrics"
	"github.com/roboard/spares-kiosk/internal/server"
	"github.com/roboard/spares-kiosk/internal/services"
	"github.com/roboard/spares-kiosk/internal/store"
	"github.com/roboard/spares-kiosk/internal/store/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:          "spares-kiosk",
		Short:        "Spare-parts kiosk API server",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := initLogger(cfg.LogLevel); err != nil {
				return err
			}
			defer zap.L().Sync() //nolint:errcheck

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := store.NewDB(cfg.Database.Path)
			if err != nil {
				return err
			}
			if err := migrations.Run(ctx, db); err != nil {
				db.Close()
				return err
			}

			st := store.NewStore(db)
			defer st.Close()

			aggregator := metrics.NewAggregator(st.Metrics())

			exportSrv := services.NewExportService(st, cfg)
			handler := handlers.New(
				services.NewPartService(st),
				services.NewRobService(st),
				services.NewWishlistService(st),
				services.NewLocationService(st),
				exportSrv,
				services.NewImportService(st, exportSrv),
			)

			srv := server.NewServer(cfg, aggregator, handler.Routes)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Stop(shutdownCtx); err != nil {
				zap.S().Errorw("graceful shutdown failed", "error", err)
			}
			if err := aggregator.Close(shutdownCtx); err != nil {
				zap.S().Errorw("final usage flush failed", "error", err)
			}
			return <-errCh
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := initLogger(cfg.LogLevel); err != nil {
				return err
			}

			db, err := store.NewDB(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			before, err := migrations.Applied(ctx, db)
			if err != nil {
				return err
			}
			if err := migrations.Run(ctx, db); err != nil {
				color.Red("migration run failed: %v", err)
				return err
			}

			for _, id := range migrations.IDs() {
				if before[id] {
					fmt.Printf("%s %s\n", color.HiBlackString("already applied"), id)
				} else {
					fmt.Printf("%s %s\n", color.GreenString("applied"), id)
				}
			}
			return nil
		},
	}
}

// initLogger installs the global zap logger. Unknown levels fall back to
// info rather than failing startup.
func initLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
