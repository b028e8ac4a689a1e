// Package cli wires the engine into the akx command-line tool.  Every
// command is offline-capable; the database, cache, and object store are
// touched only when the configuration enables them.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthrokinetix/akx-engine/internal/adapters"
	"github.com/arthrokinetix/akx-engine/internal/adapters/pdftext"
	"github.com/arthrokinetix/akx-engine/internal/config"
	"github.com/arthrokinetix/akx-engine/internal/infrastructure/database/redis"
	"github.com/arthrokinetix/akx-engine/internal/infrastructure/monitoring/logging"
	"github.com/arthrokinetix/akx-engine/internal/infrastructure/monitoring/metrics"
	"github.com/arthrokinetix/akx-engine/internal/pipeline"
	"github.com/arthrokinetix/akx-engine/pkg/random"
	"github.com/arthrokinetix/akx-engine/pkg/types/article"
)

// app carries the resolved configuration, logger, and metrics recorder
// shared by subcommands.
type app struct {
	cfg     *config.Config
	logger  logging.Logger
	metrics metrics.EngineMetrics
}

// NewRootCmd builds the akx command tree.  version is stamped by the build.
func NewRootCmd(version string) *cobra.Command {
	a := &app{}
	var configPath string

	root := &cobra.Command{
		Use:           "akx",
		Short:         "Arthrokinetix engine: medical-article emotional analysis and Andry Tree generation",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var (
				cfg *config.Config
				err error
			)
			if configPath != "" {
				cfg, err = config.Load(configPath)
			} else {
				cfg, err = config.LoadFromEnv()
			}
			if err != nil {
				return err
			}

			// Command output owns stdout; logs go to stderr regardless of
			// the configured service defaults.
			cfg.Log.OutputPaths = []string{"stderr"}

			logger, err := logging.NewLogger(cfg.Log)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			a.cfg = cfg
			a.logger = logger
			a.metrics = metrics.NewInMemory()
			logging.SetDefault(logger)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default: environment only)")

	root.AddCommand(
		newAnalyzeCmd(a),
		newAdaptCmd(a),
		newClassifyCmd(a),
		newSignatureCmd(a),
		newVersionCmd(version),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "akx:", err)
		return 1
	}
	return 0
}

// newService builds the pipeline service for one command invocation.  The
// profile cache is attached only when redis is configured; an unreachable
// redis degrades to uncached analysis instead of failing the command.
func (a *app) newService(ctx context.Context, seed int64) *pipeline.Service {
	src := random.NewTimeSeeded()
	if seed == 0 {
		seed = a.cfg.Engine.Seed
	}
	if seed != 0 {
		src = random.New(seed)
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(a.logger),
		pipeline.WithMetrics(a.metrics),
		pipeline.WithRandomSource(src),
		pipeline.WithAdapterOptions(a.adapterOptions()...),
	}

	if a.cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, a.cfg.Redis, a.logger)
		if err != nil {
			a.logger.Warn("profile cache unavailable, analyses will not be cached",
				logging.String("addr", a.cfg.Redis.Addr), logging.Err(err))
		} else {
			opts = append(opts, pipeline.WithCache(redis.NewProfileCache(
				client, a.cfg.Redis.KeyPrefix, a.cfg.Redis.DefaultTTL, a.logger)))
		}
	}

	return pipeline.NewService(opts...)
}

// adapterOptions is the adapter configuration shared by every command that
// touches raw documents.
func (a *app) adapterOptions() []adapters.Option {
	return []adapters.Option{
		adapters.WithDefaultLanguage(a.cfg.Engine.DefaultLanguage),
		adapters.WithPDFBackends(pdftext.Select(a.cfg.PDF.PreferredBackends)...),
	}
}

// readInput loads a file argument, with "-" meaning stdin.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// inferContentType maps a file extension to a content-type tag; anything
// unrecognized reads as plain text.
func inferContentType(path string) article.ContentType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return article.TypeHTML
	case ".pdf":
		return article.TypePDF
	default:
		return article.TypeText
	}
}

// resolveContentType honours an explicit --type flag over extension
// inference.
func resolveContentType(flag, path string) article.ContentType {
	if flag != "" {
		return article.ContentType(strings.ToLower(flag))
	}
	return inferContentType(path)
}

// printJSON writes indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
