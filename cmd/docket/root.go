package main

import (
	"fmt"

	"github.com/BlackWidow29/Entrevista-Docket/pkg/config"
	"github.com/BlackWidow29/Entrevista-Docket/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "docket",
	Short:   "Registry and certificate records service",
	Long:    `docket keeps registries (business locations) and the certificates issued to them, served over a REST API and an HTML overview page.`,
	Version: version,
	// usage is noise for runtime failures such as an unreachable database
	SilenceUsage: true,
}

// bootstrap loads configuration and initializes the global logger
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := logger.InitLogger(cfg); err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	log := logger.GetLogger()
	if !cfg.EnvFileLoaded {
		log.Warn(".env file not found, using environment variables")
	}
	return cfg, log, nil
}
