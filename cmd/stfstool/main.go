package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/InvoxiPlayGames/stfstool/internal/config"
	"github.com/InvoxiPlayGames/stfstool/internal/stfs"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	cfgFile string

	outputDir  string
	dbPath     string
	files      []string
	logLevel   string
	logFormat  string
	noProgress bool
)

var rootCmd = &cobra.Command{
	Use:   "stfstool",
	Short: "Xbox 360 STFS package inspection and extraction tool",
	Long: `stfstool reads STFS packages (CON/LIVE/PIRS files) used for Xbox 360
content: saved games, marketplace content, title updates and arcade titles.

It lists and extracts the files packed inside a package, shows package
metadata and thumbnails, catalogs file tables into a queryable SQLite
database, and can rewrite the type tag of console-signed packages.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if cmd.Flags().Changed("out") {
			cfg.Output = outputDir
		}
		if cmd.Flags().Changed("database") {
			cfg.Database = dbPath
		}
		if cmd.Flags().Changed("files") {
			cfg.Files = files
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.LogFormat = logFormat
		}

		var level slog.Level
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}

		var handler slog.Handler
		if cfg.LogFormat == "json" {
			handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})
		} else {
			handler = tint.NewHandler(os.Stderr, &tint.Options{
				Level: level,
			})
		}

		slog.SetDefault(slog.New(handler))

		slog.Debug("Configuration",
			"output", cfg.Output,
			"database", cfg.Database,
			"files", cfg.Files,
			"log_level", cfg.LogLevel,
			"log_format", cfg.LogFormat)

		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is stfstool.yaml in pwd)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "out", "o", "", "output directory for extracted files")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "database", "d", "", "catalog database file path")
	rootCmd.PersistentFlags().StringSliceVar(&files, "files", []string{}, "comma-separated list of file paths to extract")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress bar")
}

// openPackage loads a package file into memory and parses its header.
func openPackage(path string) (*stfs.Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading package file: %w", err)
	}

	c, err := stfs.Open(data)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	slog.Debug("Package loaded", "path", path, "type", c.Type(), "size", len(data))
	return c, nil
}
