package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Thorongil80/fireplan-alarm-divera/internal/api/web"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/config"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/fireplan"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/logger"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/parser"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/repository/auditlog"
	"github.com/Thorongil80/fireplan-alarm-divera/internal/service/trigger"
)

const (
	// readHeaderTimeout bounds how long a client may take to send headers.
	readHeaderTimeout = 10 * time.Second
	// shutdownTimeout bounds the HTTP connection drain on stop.
	shutdownTimeout = 5 * time.Second
)

// Options controls the bridge process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ListenAddress optionally overrides the listen address from the settings.
	ListenAddress string
}

// Run wires settings, parser, dispatcher, pipeline and ingest server
// together and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "bridge")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	prs, err := parser.New(cfg.RegexOrt, cfg.RegexOrtsteil, cfg.RegexObjektname, cfg.Rics)
	if err != nil {
		return fmt.Errorf("initialize parser: %w", err)
	}

	recorder := auditlog.NewFileRecorder(cfg.ReceivedLogFile, cfg.SubmittedLogFile)

	clientOpts := []fireplan.Option{
		fireplan.WithBaseURL(cfg.FireplanBaseURL),
		fireplan.WithNotifier(recorder),
	}

	if cfg.SimpleTrigger != "" {
		command := cfg.SimpleTrigger
		clientOpts = append(clientOpts, fireplan.WithHook(func(hookCtx context.Context) {
			if err := trigger.Start(hookCtx, command); err != nil {
				logger.ErrorKV(hookCtx, "trigger command not started",
					"command", command,
					"error", err)
			}
		}))
	}

	client := fireplan.NewClient(cfg.FireplanAPIKey, clientOpts...)
	defer client.Close()

	pipe := NewPipeline(prs, client, recorder, cfg.Standort, cfg.QueueSize)

	listenAddress := cfg.ListenAddress()
	if opts.ListenAddress != "" {
		listenAddress = opts.ListenAddress
	}

	srv := &http.Server{
		Addr:              listenAddress,
		Handler:           web.New(cfg.AuthToken, pipe, pipe).Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go pipe.Run(ctx)

	serveErr := make(chan error, 1)

	go func() {
		logger.InfoKV(ctx, "ingest server listening",
			"listen_address", listenAddress,
			"tls", cfg.UseTLS())

		var err error
		if cfg.UseTLS() {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	logger.Info(ctx, "Shutting down ingest server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorKV(ctx, "ingest server shutdown incomplete", "error", err)
	}

	// The cycle in flight finishes before the pipeline reports done.
	<-pipe.Done()

	logger.Info(ctx, "Bridge stopped")

	return nil
}
