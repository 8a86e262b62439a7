// Package cmd implements the asc-iap CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/asc-iap/internal/api/client"
	"github.com/donaldgifford/asc-iap/internal/asc"
	"github.com/donaldgifford/asc-iap/internal/auth"
	"github.com/donaldgifford/asc-iap/internal/config"
	"github.com/donaldgifford/asc-iap/internal/notify"
	"github.com/donaldgifford/asc-iap/pkg/logger"
)

const defaultConfigFile = "config.yaml"

var rootCmd = &cobra.Command{
	Use:   "asc-iap",
	Short: "Provision in-app purchases on App Store Connect",
	Long: "asc-iap creates App Store Connect in-app purchases in bulk. Each product\n" +
		"is created, priced, localized, made available and given a review\n" +
		"screenshot. It can run batches directly or serve them over HTTP.",
	SilenceUsage: true,
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		String("config", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "asc-iap API server URL (runs commands)")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		String("log-level", "", "override logging.level (debug, info, warn, error)")

	for _, name := range []string{"config", "server", "output", "log-level"} {
		cobra.CheckErr(viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)))
	}

	rootCmd.AddCommand(
		versionCmd(),
		serveCmd(),
		authCmd(),
		appsCmd(),
		territoriesCmd(),
		productsCmd(),
		batchCmd(),
		pricesCmd(),
		runsCmd(),
		openapiCmd(),
	)
}

func initConfig() {
	viper.SetEnvPrefix("ASCIAP")
	viper.AutomaticEnv()
}

// loadConfig reads the config file. A missing default file is not an error
// when every credential comes from the environment; the file is then built
// from ASC_KEY_ID, ASC_ISSUER_ID and ASC_PRIVATE_KEY_PATH.
func loadConfig() (*config.Config, error) {
	path := viper.GetString("config")
	cfg, err := config.Load(path)
	if err == nil {
		return applyOverrides(cfg), nil
	}
	if path != defaultConfigFile || !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg, err = config.Parse([]byte(envConfig))
	if err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}
	return applyOverrides(cfg), nil
}

const envConfig = `
asc:
  key_id: ${ASC_KEY_ID}
  issuer_id: ${ASC_ISSUER_ID}
  private_key_path: ${ASC_PRIVATE_KEY_PATH}
`

func applyOverrides(cfg *config.Config) *config.Config {
	if lvl := viper.GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	return cfg
}

func newLogger(cfg *config.Config) *slog.Logger {
	l := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(l)
	return l
}

// newTokenCache validates credentials and signs the first token.
func newTokenCache(cfg *config.Config, log *slog.Logger) (*auth.TokenCache, error) {
	keyPEM, err := cfg.ASC.PrivateKeyPEM()
	if err != nil {
		return nil, err
	}
	identity := auth.NewIdentity(cfg.ASC.KeyID, cfg.ASC.IssuerID, keyPEM)
	return auth.NewTokenCache(identity, auth.WithLogger(log))
}

// newGateway builds the App Store Connect client from cfg.
func newGateway(cfg *config.Config, tokens asc.TokenProvider, log *slog.Logger) *asc.Client {
	return asc.NewClient(tokens,
		asc.WithBaseURL(cfg.ASC.BaseURL),
		asc.WithTimeout(cfg.ASC.Timeout),
		asc.WithRateLimiter(asc.NewRateLimiter(cfg.ASC.RateLimit.PerHour, cfg.ASC.RateLimit.Burst)),
		asc.WithUploader(asc.NewUploader(asc.WithUploadTimeout(cfg.ASC.UploadTimeout))),
		asc.WithLogger(log),
	)
}

// newNotifier returns the Discord notifier when a webhook is configured.
func newNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	if cfg.Notify.Discord.WebhookURL == "" {
		return notify.NewNoOpNotifier(log)
	}
	log.Info("discord run notifications enabled")
	return notify.NewDiscordNotifier(cfg.Notify.Discord.WebhookURL)
}

// setup loads config and builds a logger, token cache and gateway.
func setup() (*config.Config, *slog.Logger, *auth.TokenCache, *asc.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	log := newLogger(cfg)
	tokens, err := newTokenCache(cfg, log)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return cfg, log, tokens, newGateway(cfg, tokens, log), nil
}

func newAPIClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
