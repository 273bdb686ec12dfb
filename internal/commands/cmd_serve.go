package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/remark/internal/core/source"
	"github.com/colonyops/remark/internal/dashboard"
	"github.com/colonyops/remark/internal/server"
)

type ServeCmd struct {
	flags *Flags

	// flags
	addr string
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Serve the dashboard as a JSON API",
		UsageText: "remark serve [--addr host:port]",
		Description: `Starts an HTTP server exposing one dashboard session. The datasets load in
the background; navigation and edit endpoints answer 503 until the load settles.

Edits live in memory for the lifetime of the process.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (defaults to server.addr from config)",
				Sources:     cli.EnvVars("REMARK_ADDR"),
				Destination: &cmd.addr,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, c *cli.Command) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stop, err := startProfiler(ctx, cmd.flags.ProfilerPort)
	if err != nil {
		return err
	}
	defer stop()

	cfg := cmd.flags.Config
	addr := cmd.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	src, err := cfg.NewSource()
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	sess := dashboard.NewSession(ctx, source.NewLoader(src))
	defer sess.Close()
	sess.Start()

	srv := server.New(sess, server.Options{
		Addr:        addr,
		CORSOrigins: cfg.Server.CORSOrigins,
	})
	if err := srv.Start(ctx); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Listening on http://%s\n", srv.Addr())

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown api server")
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
