package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-uidemo/internal/config"
	"github.com/goliatone/go-uidemo/internal/server"
)

type serveOptions struct {
	addr  string
	watch bool
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo pages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload the log level when the configuration file changes")

	return cmd
}

func runServe(cmd *cobra.Command, flags *rootFlags, opts *serveOptions) error {
	cfg, log, err := flags.load(cmd)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer srv.Close()

	if opts.watch {
		go func() {
			err := config.Watch(ctx, flags.configPath, func(next *config.Config, err error) {
				if err != nil {
					log.Error(err, "config reload failed")
					return
				}
				level := next.Log.Level
				if flags.logLevel != "" {
					level = flags.logLevel
				}
				if err := log.SetLevel(level); err != nil {
					log.Error(err, "config reload failed")
					return
				}
				log.WithFields(map[string]any{"level": level}).Info("config reloaded")
			})
			if err != nil && ctx.Err() == nil {
				log.Error(err, "config watch stopped")
			}
		}()
	}

	log.WithFields(map[string]any{
		"name":    cfg.Name,
		"storage": cfg.Storage.Driver,
		"theme":   cfg.Theme.Name,
	}).Info("starting")
	return srv.Run(ctx)
}
