package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/webasoo/specview/config"
	"github.com/webasoo/specview/logging"
	"github.com/webasoo/specview/server"
	"github.com/webasoo/specview/swagger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "specview",
		Short:        "Serve a Swagger UI viewer for a locally deployed OpenAPI document",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (yaml, toml or json)")
	config.RegisterFlags(rootCmd.PersistentFlags())

	loadConfig := func(cmd *cobra.Command) (config.Config, error) {
		v, err := config.NewViper(cmd.Flags(), configFile)
		if err != nil {
			return config.Config{}, err
		}
		return config.Load(v)
	}

	rootCmd.AddCommand(
		newServeCmd(loadConfig),
		newRenderCmd(loadConfig),
		newVersionCmd(),
	)
	return rootCmd
}

type configLoader func(cmd *cobra.Command) (config.Config, error)

func newServeCmd(loadConfig configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the documentation server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
			slog.SetDefault(logger)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			srv, err := server.New(cfg, logger, server.WithSlot(swagger.DefaultSlot))
			if err != nil {
				return err
			}

			if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}
}

// newRenderCmd renders the initializer script ahead of time, for deployments
// that ship a static swagger-ui-dist directory instead of running the server.
func newRenderCmd(loadConfig configLoader) *cobra.Command {
	var origin, out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write swagger-initializer.js for a fixed origin",
		Example: `  specview render --origin https://docs.example.com
  specview render --origin http://localhost:8080 --out static/swagger/swagger-initializer.js`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts := cfg.Viewer.Options()

			var loc swagger.Location
			embedURL := opts.SpecURL != ""
			if origin != "" && embedURL {
				return fmt.Errorf("--origin cannot be combined with viewer.spec_url %q", opts.SpecURL)
			}
			if origin != "" {
				if loc, err = swagger.ParseOrigin(origin); err != nil {
					return err
				}
				embedURL = true
			}

			initializer := swagger.NewInitializer(swagger.NewScriptFactory(opts, embedURL), swagger.DefaultSlot, opts)
			handle, err := initializer.Bootstrap(loc)
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(handle.Script)
				return err
			}
			if err := writeFile(out, handle.Script); err != nil {
				return err
			}
			specURL := "derived in the browser"
			if embedURL {
				specURL = handle.Config.SpecURL
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (spec url %s)\n", out, specURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&origin, "origin", "", "page origin, e.g. https://docs.example.com; empty derives it in the browser (not allowed with --spec-url)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.Version)
		},
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
