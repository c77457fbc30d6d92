package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"mixtape/internal/jobs"
	"mixtape/internal/server"
)

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web service for asynchronous playlist generation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Bind address (default from config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default from config)",
			},
		},
		Action: r.Serve,
	}
}

// Serve starts the job engine, the retention janitor, and the HTTP server,
// then blocks until interrupted. Shutdown drains the in-flight job and
// abandons the rest of the queue.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := r.config.Server.Host
	if cmd.String("host") != "" {
		host = cmd.String("host")
	}
	port := r.config.Server.Port
	if cmd.Int("port") != 0 {
		port = int(cmd.Int("port"))
	}

	// The worker keeps the pre-signal context: an interrupt stops intake and
	// the HTTP server while the in-flight job runs to completion.
	jobCtx := ctx
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := jobs.NewStore()
	engine := jobs.NewEngine(r.engine.Run, store, r.logger)
	engine.Start(jobCtx)

	retention := jobs.DefaultRetention
	if r.config.Jobs.RetentionMinutes > 0 {
		retention = time.Duration(r.config.Jobs.RetentionMinutes) * time.Minute
	}
	go store.Janitor(ctx, time.Minute, retention)

	app := server.NewApp(engine, store, server.AppOpts{
		Logger:  r.logger,
		History: r.config.Jobs.HistoryLimit,
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: app.Handler(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	r.writePlain("Mixtape web service on http://%s\n", addr)

	select {
	case err := <-serverErrors:
		engine.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	r.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	engine.Stop()
	return nil
}
