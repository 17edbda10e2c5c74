//go:build !js && !wasm

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Its-donkey/luxe-portfolio/internal/server"
	"github.com/Its-donkey/luxe-portfolio/internal/server/config"
	"github.com/Its-donkey/luxe-portfolio/internal/server/reload"
	"github.com/Its-donkey/luxe-portfolio/logging"
)

type rootOptions struct {
	configFile string
	listen     string
	siteDir    string
	upstream   string
	logLevel   string
	noReload   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "site-serve",
		Short:         "Serve the portfolio site for local development",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, opts)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "portfolio.yml", "config file path")
	flags.StringVar(&opts.listen, "listen", "", "address to serve on")
	flags.StringVar(&opts.siteDir, "dir", "", "directory containing the built site")
	flags.StringVar(&opts.upstream, "upstream", "", "form relay URL the contact form is proxied to")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.noReload, "no-reload", false, "disable the live reload stream")

	root.AddCommand(newConfigCmd(opts))
	return root
}

// loadConfig merges file, environment and explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("listen") {
		cfg.Listen = opts.listen
	}
	if flags.Changed("dir") {
		cfg.SiteDir = opts.siteDir
	}
	if flags.Changed("upstream") {
		cfg.Contact.Upstream = opts.upstream
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if opts.noReload {
		cfg.Reload.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runServe(ctx context.Context, cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log, err := logging.New(level.String(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var broker *reload.Broker
	var watcher *reload.Watcher
	if cfg.Reload.Enabled {
		broker = reload.NewBroker()
		filter := reload.Filter{Include: cfg.Reload.Include, Exclude: cfg.Reload.Exclude}
		watcher, err = reload.NewWatcher(cfg.SiteDir, filter, cfg.Reload.Debounce, broker, log.Named("reload"))
		if err != nil {
			return fmt.Errorf("starting reload watcher: %w", err)
		}
	}

	srv, err := server.New(cfg, log.Named("http"), broker)
	if err != nil {
		if watcher != nil {
			_ = watcher.Close()
		}
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.ListenAndServe(ctx) })
	if watcher != nil {
		g.Go(func() error { return watcher.Run(ctx) })
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("site-serve stopped", zap.Error(err))
		return err
	}
	log.Info("site-serve stopped")
	return nil
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the site-serve config file",
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to the config path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.configFile); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configFile)
			}
			if err := config.Default().Save(opts.configFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.configFile)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cfgCmd.AddCommand(initCmd)
	return cfgCmd
}
