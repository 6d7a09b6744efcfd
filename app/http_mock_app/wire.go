//go:build wireinject
// +build wireinject

package http_mock_app

import (
	"context"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"go_tail_mock/internal/domain/services"
	configs "go_tail_mock/internal/infra/config"
	"go_tail_mock/utils"
)

func InitializeMockApp(ctx context.Context, cfg *configs.EngineConfig) (*MockApp, func(), error) {
	wire.Build(
		configs.NewLogConfig,
		utils.NewLogger,
		prometheus.NewRegistry,
		wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
		services.ServiceSet,
		NewMockTransportFor,
		NewMockController,
		NewProxyConfig,
		NewMockProxy,
		NewMockApp,
	)
	return &MockApp{}, nil, nil
}
