// Package main provides the entry point for the ddlplan DDL compiler.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Velocidex/ordereddict"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TFMV/ddlplan/cmd/ddlplan/config"
	"github.com/TFMV/ddlplan/pkg/compiler"
	"github.com/TFMV/ddlplan/pkg/errors"
	"github.com/TFMV/ddlplan/pkg/infrastructure/metrics"
	"github.com/TFMV/ddlplan/pkg/plan"
)

const metricsExportTimeout = 10 * time.Second

var (
	// Version information (set by build flags)
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ddlplan",
	Short: "DDL plan compiler",
	Long: `Compile DDL statements into plan descriptors and print the fields an
explain engine would show at a given verbosity level.`,
	SilenceUsage: true,
}

var compileCmd = &cobra.Command{
	Use:   "compile [statement]",
	Short: "Compile DDL statements into plan descriptors",
	Long: `Compile one statement given as arguments, or one statement per line
read from --file ("-" for stdin). Each result is printed as a JSON line.

Example:
  ddlplan compile "SHOW CONNECTORS LIKE 'sales_*'" --level extended
  ddlplan compile -f statements.sql --scratch-dir hdfs://nn:8020/tmp/hive
  ddlplan compile -f statements.sql --metrics --metrics-push-url http://pushgateway:9091`,
	RunE: runCompileCmd,
}

// configKeys maps config file keys to the compile flags that override them.
var configKeys = map[string]string{
	"config":           "config",
	"file":             "file",
	"scratch_dir":      "scratch-dir",
	"explain_level":    "level",
	"log_level":        "log-level",
	"metrics.enabled":  "metrics",
	"metrics.push_url": "metrics-push-url",
	"metrics.job":      "metrics-job",
	"metrics.textfile": "metrics-textfile",
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringP("config", "c", "", "config file path")
	compileCmd.Flags().StringP("file", "f", "", "read statements from file, one per line (- for stdin)")
	compileCmd.Flags().String("scratch-dir", "", "root directory for per-query result files")
	compileCmd.Flags().StringP("level", "l", "default", "explain level (user, default, extended)")
	compileCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	compileCmd.Flags().Bool("metrics", false, "collect Prometheus metrics and flush them on exit")
	compileCmd.Flags().String("metrics-push-url", "", "Pushgateway URL to push metrics to")
	compileCmd.Flags().String("metrics-job", "ddlplan", "Pushgateway job name")
	compileCmd.Flags().String("metrics-textfile", "", "write metrics to this file for the node_exporter textfile collector")

	if err := bindConfig(viper.GetViper(), compileCmd); err != nil {
		panic(fmt.Errorf("failed to bind flags: %w", err))
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ddlplan\n")
			fmt.Printf("Version:    %s\n", version)
			fmt.Printf("Commit:     %s\n", commit)
			fmt.Printf("Build Date: %s\n", buildDate)
		},
	})
}

// bindConfig binds the flags of cmd to their config file keys, so a flag,
// a DDLPLAN_ environment variable (DDLPLAN_METRICS_PUSH_URL) and a nested
// config file entry all resolve to the same key.
func bindConfig(v *viper.Viper, cmd *cobra.Command) error {
	for key, flag := range configKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind %s: %w", flag, err)
		}
	}
	v.SetEnvPrefix("DDLPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCompileCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := setupLogging(cfg.LogLevel)

	stmts, err := readStatements(args, viper.GetString("file"), cmd.InOrStdin())
	if err != nil {
		return err
	}

	var collector metrics.Collector = metrics.NewNoOpCollector()
	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		collector = metrics.NewPrometheusCollector("ddlplan", registry)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runErr := runCompile(ctx, cfg, stmts, cmd.OutOrStdout(), logger, collector)

	if registry != nil {
		// flushed even after a failed run so rejections are counted
		exportCtx, exportCancel := context.WithTimeout(context.Background(), metricsExportTimeout)
		defer exportCancel()
		if err := metrics.Export(exportCtx, registry, metrics.ExportConfig{
			PushURL:  cfg.Metrics.PushURL,
			Job:      cfg.Metrics.Job,
			TextFile: cfg.Metrics.TextFile,
		}); err != nil {
			logger.Error().Err(err).Msg("Failed to export metrics")
			if runErr == nil {
				runErr = err
			}
		}
	}

	return runErr
}

// compileResult is one JSON line of compile output.
type compileResult struct {
	QueryID   string            `json:"query_id"`
	Operation string            `json:"operation"`
	Level     string            `json:"level"`
	Fields    *ordereddict.Dict `json:"fields"`
	Schema    string            `json:"schema"`
}

func runCompile(
	ctx context.Context,
	cfg *config.Config,
	stmts []string,
	out io.Writer,
	logger zerolog.Logger,
	collector metrics.Collector,
) error {
	level, err := plan.ParseLevel(cfg.ExplainLevel)
	if err != nil {
		return err
	}

	c, err := compiler.New(
		compiler.Config{ScratchDir: cfg.ScratchDir},
		&loggerAdapter{logger: logger.With().Str("component", "compiler").Logger()},
		&metricsAdapter{collector: collector},
	)
	if err != nil {
		return fmt.Errorf("failed to create compiler: %w", err)
	}

	enc := json.NewEncoder(out)
	failed := 0
	for _, stmt := range stmts {
		task, err := c.Compile(ctx, stmt)
		if err != nil {
			if errors.GetCode(err) == errors.CodeCanceled {
				return err
			}
			logger.Error().
				Str("code", errors.GetCode(err)).
				Str("statement", stmt).
				Msg(errors.GetMessage(err))
			failed++
			continue
		}

		result, err := describe(task, level)
		if err != nil {
			return err
		}
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed to compile", failed, len(stmts))
	}
	return nil
}

func describe(task *compiler.Task, level plan.Level) (*compileResult, error) {
	spec, err := plan.Lookup(task.Kind)
	if err != nil {
		return nil, err
	}
	fields, err := plan.VisibleFields(task.Desc, level)
	if err != nil {
		return nil, err
	}
	return &compileResult{
		QueryID:   task.QueryID,
		Operation: spec.DisplayName,
		Level:     level.String(),
		Fields:    fields,
		Schema:    task.Desc.Schema(),
	}, nil
}

func readStatements(args []string, file string, stdin io.Reader) ([]string, error) {
	if file == "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("no statement given")
		}
		return []string{strings.Join(args, " ")}, nil
	}

	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open statements file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var stmts []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		stmts = append(stmts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statements: %w", err)
	}
	return stmts, nil
}

func loadConfig(v *viper.Viper) (*config.Config, error) {
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &config.Config{
		ScratchDir:   v.GetString("scratch_dir"),
		ExplainLevel: v.GetString("explain_level"),
		LogLevel:     v.GetString("log_level"),
		Metrics: config.MetricsConfig{
			Enabled:  v.GetBool("metrics.enabled"),
			PushURL:  v.GetString("metrics.push_url"),
			Job:      v.GetString("metrics.job"),
			TextFile: v.GetString("metrics.textfile"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setupLogging(level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond

	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	// stdout carries results
	logger := zerolog.New(os.Stderr).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", "ddlplan")

	if logLevel == zerolog.DebugLevel {
		logger = logger.Caller()
	}

	return logger.Logger()
}
