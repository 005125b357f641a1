package main

import (
	"DentalClinic/cache"
	"DentalClinic/config"
	"DentalClinic/database"
	"DentalClinic/routes"
	"DentalClinic/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dental",
		Short: "Dental clinic records API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed the roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			utils.InitLogger(cfg.Env)

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := database.Open(ctx, cfg.DBURL, cfg.Env); err != nil {
				return err
			}
			defer database.Close()

			if err := database.Migrate(database.DB); err != nil {
				return err
			}
			utils.Logger.Info().Msg("migrations applied")
			return nil
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	utils.InitLogger(cfg.Env)

	if err := utils.SetSymmetricKey(cfg.SymmetricKey); err != nil {
		return fmt.Errorf("failed to set token key: %w", err)
	}

	db, err := database.InitDB(context.Background(), cfg.DBURL, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := database.InitializeRedis(cfg); err != nil {
		return fmt.Errorf("failed to initialize Redis client: %w", err)
	}

	redisCache, err := cache.NewCache(database.RedisClient)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	go database.MonitorRedisPool(monitorCtx, time.Minute)

	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        routes.SetupRoutes(redisCache, cfg, db),
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		utils.Logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	case <-quit:
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	utils.Logger.Info().Msg("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	<-serverErr
	if database.RedisClient != nil {
		if err := database.RedisClient.Close(); err != nil {
			utils.Logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	utils.Logger.Info().Msg("server exited gracefully")
	return nil
}
