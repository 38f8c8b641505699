package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ezchajim/azilut/internal/cache"
	"github.com/ezchajim/azilut/internal/gate"
	"github.com/ezchajim/azilut/internal/glossary"
	"github.com/ezchajim/azilut/internal/interpret"
	"github.com/ezchajim/azilut/internal/model"
	"github.com/ezchajim/azilut/internal/router"
)

// loadConfig merges file/env configuration over the defaults.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if viper.ConfigFileUsed() != "" {
		if err := viper.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	return cfg, nil
}

// loadTable loads the rule table from the configured path, or the
// built-in table when no path is set. A malformed rule source aborts
// startup; the gate must not run on a partial table.
func loadTable(path string) (*glossary.Table, error) {
	if path == "" {
		return glossary.Default(), nil
	}
	table, err := glossary.Load(path)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d rules from %s (version %s)\n", table.Len(), path, table.Version())
	}
	return table, nil
}

// buildNormalizer wires the normalizer, optionally behind the memoizing
// cache.
func buildNormalizer(cfg *model.Config, table *glossary.Table) gate.Normalizer {
	normalizer := glossary.NewNormalizer(table)
	if cfg.Cache.Enabled {
		return cache.NewCachedNormalizer(normalizer, cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}
	return normalizer
}

// buildLogger creates the structured logger for the gate and router.
func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return logCfg.Build()
}

// buildGate assembles the full admission pipeline from configuration.
func buildGate(cfg *model.Config, logger *zap.Logger) (*gate.Gate, error) {
	table, err := loadTable(cfg.Glossary.Path)
	if err != nil {
		return nil, err
	}

	if cfg.Interpret.Provider == "openai" && cfg.Interpret.APIKey == "" {
		cfg.Interpret.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	interp, err := interpret.NewInterpreter(cfg.Interpret)
	if err != nil {
		return nil, err
	}

	return gate.New(buildNormalizer(cfg, table), interp, router.New(logger), logger), nil
}
