package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/projects"
	"github.com/Zachkp/portfolio/internal/schedule"
	"github.com/Zachkp/portfolio/internal/site"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		mode, err := projects.ParseMatchMode(cfg.Projects.MatchMode)
		if err != nil {
			return err
		}

		var store *analytics.Store
		if cfg.Analytics.Enabled {
			if err := os.MkdirAll(filepath.Dir(cfg.Analytics.DBPath), 0o755); err != nil {
				return fmt.Errorf("creating data directory: %w", err)
			}
			store, err = analytics.Open(cfg.Analytics.DBPath)
			if err != nil {
				return fmt.Errorf("opening analytics database: %w", err)
			}
			defer store.Close()
		}

		sched := schedule.New(nil)
		defer sched.Close()

		gin.SetMode(gin.ReleaseMode)
		srv, err := site.New(site.Options{
			SendDelay:       cfg.Contact.SendDelay,
			ResetDelay:      cfg.Contact.ResetDelay,
			SimulateFailure: cfg.Contact.SimulateFailure,
			MatchMode:       mode,
			SessionTTL:      cfg.Session.TTL,
			SweepInterval:   cfg.Session.SweepInterval,
			SecureCookie:    cfg.Session.SecureCookie,
			AdminUsername:   cfg.Admin.Username,
			AdminPassword:   cfg.Admin.Password,
			Retention:       cfg.Analytics.Retention,
		}, catalog, logger, sched, store)
		if err != nil {
			return fmt.Errorf("building site: %w", err)
		}

		if tracker := srv.Tracker(); tracker != nil {
			defer tracker.Wait()
			tracker.Cleanup(context.Background(), cfg.Analytics.Retention)
			sched.Every(24*time.Hour, func() {
				tracker.Cleanup(context.Background(), cfg.Analytics.Retention)
			})
		}
		if cfg.Admin.Password == config.Default().Admin.Password {
			logger.Warn("admin password is the default, set PORTFOLIO_ADMIN__PASSWORD")
		}

		httpSrv := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server starting", zap.String("addr", httpSrv.Addr), zap.Bool("analytics", store != nil))
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	},
}

func loadCatalog(cfg *config.Config) (*content.Catalog, error) {
	if cfg.Content.Path == "" {
		return content.Default()
	}
	catalog, err := content.Load(cfg.Content.Path)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	return catalog, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
