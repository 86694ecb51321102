// Package cmd implements the command-line interface for thaicrawl.
// It provides the root command and subcommands for crawling a news site's
// sitemap hierarchy and emitting per-section article records.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/thaicrawl/cmd/crawl"
	cmdschedule "github.com/jonesrussell/thaicrawl/cmd/schedule"
	cmdsections "github.com/jonesrussell/thaicrawl/cmd/sections"
	"github.com/jonesrussell/thaicrawl/internal/config"
)

// Version is the application version reported by the version command.
const Version = "1.0.0"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands.
	Debug bool

	// rootCmd represents the root command for the thaicrawl CLI.
	rootCmd = &cobra.Command{
		Use:   "thaicrawl",
		Short: "A sitemap-driven news article crawler",
		Long: `thaicrawl crawls a news site's sitemap hierarchy, filters article URLs
by topical section, extracts article metadata and content, and emits
per-section CSV and JSON datasets.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env file early so environment variables are available.
	_ = godotenv.Load()

	// Parse flags early so --debug is seen before the logger is created.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("thaicrawl version %s\n", Version)
		},
	})

	rootCmd.AddCommand(crawl.Command())
	rootCmd.AddCommand(cmdschedule.Command())
	rootCmd.AddCommand(cmdsections.Command())
}

// initConfig reads in the config file and environment variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Environment variables take precedence over config file values and
	// defaults: THAICRAWL_CRAWLER_SITEMAP_URL maps to crawler.sitemap_url.
	viper.SetEnvPrefix("THAICRAWL")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config.SetDefaults(viper.GetViper())

	// The config file is optional: defaults and environment variables are
	// enough to run with --sitemap.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: config file not loaded: %v\n", err)
		}
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	if Debug || viper.GetBool("app.debug") {
		viper.Set("logger.level", "debug")
		viper.Set("logger.development", true)
	}

	return nil
}

// bindEnvVars binds short-form environment variables to config keys.
func bindEnvVars() error {
	if err := viper.BindEnv("crawler.sitemap_url", "THAICRAWL_SITEMAP_URL"); err != nil {
		return fmt.Errorf("failed to bind THAICRAWL_SITEMAP_URL: %w", err)
	}
	if err := viper.BindEnv("crawler.sections", "THAICRAWL_SECTIONS"); err != nil {
		return fmt.Errorf("failed to bind THAICRAWL_SECTIONS: %w", err)
	}
	if err := viper.BindEnv("logger.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}
	if err := viper.BindEnv("logger.encoding", "LOG_FORMAT"); err != nil {
		return fmt.Errorf("failed to bind LOG_FORMAT: %w", err)
	}
	return nil
}
