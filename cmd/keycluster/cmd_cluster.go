package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/keycluster"
	"github.com/hupe1980/keycluster/codec"
)

var clusterFlags struct {
	configPath string
	input      string
	column     string
	format     string
	workers    int
	budget     int64
	rate       int64
	ioLimit    int64
	logLevel   string
	store      storeFlags
}

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster one column of a CSV or TSV input",
	Long: "Reads a clustering configuration (JSON or YAML) and an input table,\n" +
		"optionally compressed (.gz, .zst, .lz4), from local disk, S3 or MinIO,\n" +
		"and prints the clusters.",
	RunE: runCluster,
}

func init() {
	f := clusterCmd.Flags()
	f.StringVarP(&clusterFlags.configPath, "config", "c", "", "Clustering config file, .json or .yaml (required)")
	f.StringVarP(&clusterFlags.input, "input", "i", "", "Input table name or path (required)")
	f.StringVar(&clusterFlags.column, "column", "", "Override the config's column")
	f.StringVarP(&clusterFlags.format, "format", "f", "go-json", "Output format: json, go-json or yaml")
	f.IntVar(&clusterFlags.workers, "workers", 0, "Worker goroutines (0 = GOMAXPROCS)")
	f.Int64Var(&clusterFlags.budget, "budget", 0, "Max distance comparisons per run (0 = unlimited)")
	f.Int64Var(&clusterFlags.rate, "rate", 0, "Max distance comparisons per second (0 = unlimited)")
	f.Int64Var(&clusterFlags.ioLimit, "io-limit", 0, "Max input bytes per second (0 = unlimited)")
	f.StringVar(&clusterFlags.logLevel, "log-level", "", "Log to stderr at debug, info, warn or error")
	clusterFlags.store.register(f)

	_ = clusterCmd.MarkFlagRequired("config")
	_ = clusterCmd.MarkFlagRequired("input")
}

func runCluster(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(clusterFlags.configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	cfg, err := keycluster.ParseConfig(data, codec.ForPath(clusterFlags.configPath))
	if err != nil {
		return err
	}
	if clusterFlags.column != "" {
		cfg.Column = clusterFlags.column
	}

	out, ok := codec.ByName(clusterFlags.format)
	if !ok {
		return fmt.Errorf("%w: unknown output format %q", keycluster.ErrConfiguration, clusterFlags.format)
	}

	opts := []keycluster.Option{
		keycluster.WithWorkers(clusterFlags.workers),
		keycluster.WithBudget(clusterFlags.budget),
		keycluster.WithComparisonRate(clusterFlags.rate),
		keycluster.WithIOLimit(clusterFlags.ioLimit),
	}
	if clusterFlags.logLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(clusterFlags.logLevel)); err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		opts = append(opts, keycluster.WithLogLevel(level))
	}

	c := keycluster.New(nil, opts...)

	// Validate before touching the input.
	plan, err := c.Prepare(cfg)
	if err != nil {
		return err
	}

	store, name, err := clusterFlags.store.open(ctx, clusterFlags.input)
	if err != nil {
		return err
	}

	tbl, err := c.Load(ctx, store, name)
	if err != nil {
		return err
	}

	res, err := plan.Run(ctx, tbl)
	if err != nil {
		return err
	}

	b, err := out.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	w := cmd.OutOrStdout()
	if _, err := w.Write(b); err != nil {
		return err
	}
	if !strings.HasSuffix(string(b), "\n") {
		fmt.Fprintln(w)
	}
	return nil
}
