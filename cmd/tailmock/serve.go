package main

import (
	"context"
	"fmt"

	"github.com/go-chassis/go-chassis/v2"
	"github.com/spf13/cobra"

	app "go_tail_mock/app/http_mock_app"
	configs "go_tail_mock/internal/infra/config"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		mocksDir   string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mock proxy and the management api",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(configPath, mocksDir)
			if err != nil {
				return err
			}
			if watch {
				cfg.Watch = true
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: $MOCK_CONFIG_PATH or rule.<MOCK_ENV>.yaml)")
	cmd.Flags().StringVarP(&mocksDir, "mocks", "m", "", "Mocks directory, overrides the config file")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload rules when files in the mocks directory change")

	return cmd
}

func loadServeConfig(configPath, mocksDir string) (*configs.EngineConfig, error) {
	if configPath == "" && mocksDir != "" {
		cfg := configs.NewEngineConfig(mocksDir)
		return cfg, cfg.Validate()
	}

	var (
		cfg *configs.EngineConfig
		err error
	)
	if configPath != "" {
		cfg, err = configs.LoadEngineConfigFile(configPath)
	} else {
		cfg, err = configs.LoadEngineConfig()
	}
	if err != nil {
		return nil, err
	}

	if mocksDir != "" {
		cfg.MocksDir = mocksDir
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func runServe(ctx context.Context, cfg *configs.EngineConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mockApp, cleanup, err := app.InitializeMockApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	log := mockApp.Logger.WithField("dir", cfg.MocksDir)

	chassis.RegisterSchema("rest", mockApp.Controller)
	if err := chassis.Init(); err != nil {
		return fmt.Errorf("init go-chassis: %w", err)
	}
	if err := app.EnableChassisMetrics(); err != nil {
		log.WithError(err).Warn("management request counter disabled")
	}

	go func() {
		if err := mockApp.Proxy.ListenAndServe(); err != nil {
			log.WithError(err).Error("mock proxy stopped")
			cancel()
		}
	}()
	defer mockApp.Proxy.Close()

	if cfg.Watch {
		go func() {
			if err := mockApp.Engine.Watch(ctx); err != nil {
				log.WithError(err).Error("rule watcher stopped")
			}
		}()
	}

	log.WithField("proxy", mockApp.Proxy.Addr()).Info("tailmock started")
	return chassis.Run()
}
