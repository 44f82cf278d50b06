package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hitroute/hitroute/api"
	"github.com/hitroute/hitroute/raid"
)

var listenAddr string // HTTP listen address

// serveCmd exposes the planner over HTTP and websocket
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner over HTTP (/api/plan) and websocket (/ws/plan)",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolvePlannerConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		srv, err := newServer(cfg, listenAddr)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logrus.Warnf("Shutdown: %v", err)
			}
		}()

		logrus.Infof("Listening on %s", listenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server failed: %v", err)
		}
		logrus.Info("Server stopped.")
	},
}

// newServer binds the API router to addr with cfg as the request defaults.
func newServer(cfg raid.PlannerConfig, addr string) (*http.Server, error) {
	svc, err := api.NewService(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "HTTP listen address")
	overrides.register(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}
