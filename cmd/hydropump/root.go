package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hydropump/hydropump"
	"github.com/hydropump/hydropump/pkg/core"
)

var (
	storeDir string
	format   string
	verbose  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hydropump",
	Short: "Assemble and store configuration documents from reusable templates",
	Long: `Hydropump manages named configuration documents ("instructions")
compiled from ordered, reusable templates. Templates merge left to right,
later templates override earlier ones, and the instruction's own payload
always has the final say.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeDir, "dir", ".", "Root directory of the document store")
	rootCmd.PersistentFlags().StringVar(&format, "format", "json", "On-disk file format (json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// newService builds the service the subcommands operate on.
func newService() (*core.Service, error) {
	return hydropump.New(storeDir,
		hydropump.WithFormat(format),
		hydropump.WithLogger(slog.Default()),
	)
}

// parsePayload decodes an inline document body. YAML is a superset of
// JSON, so both notations work.
func parsePayload(raw string) (core.Payload, error) {
	if raw == "" {
		return nil, nil
	}
	var payload core.Payload
	if err := yaml.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}
	return payload, nil
}

// parseMeta converts repeated key=value flags into metadata.
func parseMeta(pairs []string) (core.Metadata, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := make(core.Metadata, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid metadata pair %q (want key=value)", pair)
		}
		meta[key] = value
	}
	return meta, nil
}
