package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/dekarrin/bandbook/internal/logging"
	"github.com/dekarrin/bandbook/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve bands over HTTP",
		Long: `Serve the bands as a read-only JSON API until interrupted.

Routes:
  GET /bands       all bands in ID order
  GET /bands/{id}  the band with the given ID

Every response carries the snapshot ID of the loaded bands as its ETag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts, listen, cmd)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Address to listen on, overriding the configured one")

	return cmd
}

func runServe(opts *RootOptions, listen string, cmd *cobra.Command) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Listen = listen
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	log, err := cfg.Log.Create()
	if err != nil {
		return err
	}
	defer logging.Close(log)

	dir, err := directory(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)
	defer signal.Stop(signalChan)
	go func() {
		select {
		case <-signalChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	srv := server.New(dir, cfg.Listen, log)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ServeForever()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "serving %d band(s) on %s; Ctrl-C (SIGINT) to stop\n", dir.Store().Len(), cfg.Listen)

	select {
	case err := <-serveErr:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	// ctrl-C tends to echo "^C" to the terminal, so start on a fresh line
	log.InfoBreak()
	log.Info("interrupted; shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
