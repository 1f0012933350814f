// Package cli implements the spamlab command line: the demo algorithms and the
// submission counter without the web server.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"spamlab/internal/config"
	"spamlab/internal/content"
	"spamlab/internal/logging"
)

const version = "0.1.0"

// Execute builds the root command tree and runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

type rootOptions struct {
	ConfigPath string
	v          *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: newViper()}

	rootCmd := &cobra.Command{
		Use:           "spamlab",
		Short:         "Spam or ham demos from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}
	rootCmd.SetVersionTemplate("spamlab version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Path to a YAML config file (optional)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	if err := opts.v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newNgramsCmd(opts),
		newVectorizeCmd(),
		newSimulateCmd(),
		newChaptersCmd(opts),
		newCounterCmd(opts),
	)

	return rootCmd
}

// newViper returns a viper instance with defaults and SPAMLAB_* env overrides.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("log.level", "warn")
	v.SetDefault("content_file", "")
	v.SetDefault("counter.backend", config.BackendSQLite)
	v.SetDefault("counter.sqlite_path", "spamlab.db")
	v.SetDefault("counter.redis_url", "redis://localhost:6379/0")
	v.SetDefault("counter.database_url", "postgres://localhost:5432/spamlab?sslmode=disable")
	v.SetDefault("counter.mysql_dsn", "spamlab:spamlab@tcp(localhost:3306)/spamlab")

	v.SetEnvPrefix("SPAMLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func (o *rootOptions) load() error {
	if o.ConfigPath == "" {
		return nil
	}
	o.v.SetConfigFile(o.ConfigPath)
	if err := o.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// catalog loads the teaching content from content_file, or the built-in
// catalog when it is unset.
func (o *rootOptions) catalog() (*content.Catalog, error) {
	return content.Load(o.v.GetString("content_file"))
}

func (o *rootOptions) logger() *zap.Logger {
	l, err := logging.Build(o.v.GetString("log.level"), "console")
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// counterConfig maps the counter.* settings onto the server config type.
func (o *rootOptions) counterConfig() *config.Config {
	return &config.Config{
		CounterBackend: o.v.GetString("counter.backend"),
		SQLitePath:     o.v.GetString("counter.sqlite_path"),
		RedisURL:       o.v.GetString("counter.redis_url"),
		DatabaseURL:    o.v.GetString("counter.database_url"),
		MySQLDSN:       o.v.GetString("counter.mysql_dsn"),
	}
}
