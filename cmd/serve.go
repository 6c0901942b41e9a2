package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shahriarislam71/kaf-tar-sub002/internal/audit"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/db"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/live"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/logging"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/notifications"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/server"
	"github.com/shahriarislam71/kaf-tar-sub002/internal/site"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the site server",
	Long:  `Starts the HTTP server for the public pages, the admin editors, the edit history API and the live refresh socket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Port = servePort
		}
		log := setupLogging(cfg)

		database, err := db.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		auditStore := audit.NewStore(database)

		st, err := newStore(cfg)
		if err != nil {
			return err
		}
		timeout, _ := cfg.Timeout()

		s, err := site.New(site.Config{SiteName: cfg.SiteName, PageSize: cfg.PageSize}, st, auditStore, logging.Component("site"))
		if err != nil {
			return fmt.Errorf("building site: %w", err)
		}

		srv := server.New(server.Config{
			Port:           cfg.Port,
			AllowedOrigins: cfg.AllowedOrigins,
			HandlerTimeout: handlerTimeout(timeout),
		}, logging.Component("http"))

		s.RegisterRoutes(srv.Router())
		audit.RegisterRoutes(srv.Router(), auditStore)
		live.NewHub(st, logging.Component("live")).RegisterRoutes(srv.StreamRouter())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if len(cfg.Webhooks) > 0 {
			go notifications.NewDispatcher(cfg.Webhooks, logging.Component("notifications")).Run(ctx, st)
		}

		go func() {
			<-ctx.Done()
			log.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown")
			}
		}()

		log.Info().
			Str("api", cfg.APIBaseURL).
			Str("database", database.Path()).
			Str("environment", string(cfg.Environment)).
			Msgf("kaftar %s starting on port %d", Version, cfg.Port)

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

// handlerTimeout leaves room for one full upstream request. An unbounded
// upstream leaves the server default in place.
func handlerTimeout(upstream time.Duration) time.Duration {
	if upstream <= 0 {
		return 0
	}
	return upstream + 5*time.Second
}
