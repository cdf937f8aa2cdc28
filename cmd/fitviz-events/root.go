package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fitviz/go-events/config"
	"github.com/fitviz/go-events/logger"
	"github.com/fitviz/go-events/publisher"
	"github.com/fitviz/go-events/schema"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "fitviz-events",
		Short:         "Publish FitViz domain events to a broker exchange or SNS topic",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (also FITVIZ_EVENTS_* environment)")

	cmd.AddCommand(newPublishCmd(&configPath))
	cmd.AddCommand(newVerifyCmd(&configPath))
	cmd.AddCommand(newTypesCmd())

	return cmd
}

// buildPublisher wires settings, logger, driver and publisher together.
func buildPublisher(configPath string) (*publisher.Publisher, *zap.Logger, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(settings.Log)
	if err != nil {
		return nil, nil, err
	}

	driver, err := settings.NewDriver(log)
	if err != nil {
		return nil, nil, err
	}

	p, err := publisher.New(settings.Publisher, driver,
		publisher.WithValidator(schema.NewCatalog(log)),
		publisher.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return p, log, nil
}
