package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	adapterHTTP "github.com/comitanigiacomo/concentria/internal/adapters/handler/http"
	"github.com/comitanigiacomo/concentria/internal/adapters/handler/tui"
	"github.com/comitanigiacomo/concentria/internal/adapters/render"
	"github.com/comitanigiacomo/concentria/internal/core/quotes"
	"github.com/comitanigiacomo/concentria/internal/core/services"
	"github.com/comitanigiacomo/concentria/internal/core/workers"
	"github.com/comitanigiacomo/concentria/internal/platform/config"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the session logger and focus timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(_ *cobra.Command, opts *rootOptions) error {
	ctx := context.Background()
	a, err := loadApp(ctx, opts, false)
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := quotes.Load(a.cfg.QuotesPath)
	if err != nil {
		log.Printf("[QUOTES] Falling back to built-in quotes: %v", err)
		list, _ = quotes.Load("")
	}

	return tui.Run(tui.Options{
		Store:         a.entries,
		CSVPath:       a.cfg.CSVPath,
		Quotes:        list,
		QuoteInterval: a.cfg.QuoteInterval,
		AutoLog:       a.cfg.AutoLog,
	}, a.cfg.LogFile)
}

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	var (
		port string
		open bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Serve the web dashboard and JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			startTime := time.Now()

			ctx, stop := context.WithCancel(context.Background())
			defer stop()

			a, err := loadApp(ctx, opts, true)
			if err != nil {
				return err
			}
			defer a.Close()
			if port == "" {
				port = a.cfg.Port
			}

			var invalidator workers.Invalidator
			if a.cached != nil {
				invalidator = a.cached
			}
			reloader := workers.NewReloadWorker(invalidator, a.entries)
			reloader.Start(ctx)
			if a.cfg.Storage == config.StorageCSV {
				if err := reloader.Watch(ctx, a.cfg.CSVPath); err != nil {
					log.Printf("[WORKER] Live reload disabled: %v", err)
				}
			}

			tokens := services.NewTokenService(a.cfg.TokenSecret, a.cfg.TokenIssuer, a.cfg.TokenTTL)
			if !tokens.Enabled() {
				log.Println("[AUTH] No token secret configured, write endpoints are open")
			}

			router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
				DashboardHandler: adapterHTTP.NewDashboardHandler(a.entries, a.dashboard, a.stats, render.NewEChartsSink()),
				EntryHandler:     adapterHTTP.NewEntryHandler(a.entries),
				ExportHandler:    adapterHTTP.NewExportHandler(a.entries, a.dashboard),
				TokenService:     tokens,
				DB:               a.db,
				Redis:            a.redis,
				RateLimit:        a.cfg.RateLimit,
				StartTime:        startTime,
			})

			srv := &http.Server{
				Addr:         ":" + port,
				Handler:      router,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			serveErr := make(chan error, 1)
			go func() {
				log.Printf("Concentria dashboard running on http://localhost:%s", port)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					serveErr <- err
				}
			}()

			if open {
				if err := browser.OpenURL("http://localhost:" + port); err != nil {
					log.Printf("Could not open browser: %v", err)
				}
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-serveErr:
				return fmt.Errorf("critical server error: %w", err)
			case <-quit:
			}

			log.Println("Stop signal received. Shutting down...")
			stop()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("forced shutdown: %w", err)
			}

			log.Println("Server stopped gracefully.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default from config, 8501)")
	cmd.Flags().BoolVar(&open, "open", false, "open the dashboard in a browser")
	return cmd
}

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the dashboard write endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			tokens := services.NewTokenService(cfg.TokenSecret, cfg.TokenIssuer, cfg.TokenTTL)
			if !tokens.Enabled() {
				return fmt.Errorf("no token secret configured: set token.secret or JWT_SECRET")
			}
			token, err := tokens.GenerateToken(subject)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", defaultSubject(), "token subject")
	return cmd
}

func defaultSubject() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return config.AppName
}
