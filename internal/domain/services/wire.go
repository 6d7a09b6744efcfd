package services

import (
	"go_tail_mock/internal/domain/iface"
	"go_tail_mock/internal/infra/metrics"
	"go_tail_mock/internal/infra/repo"

	"github.com/google/wire"
)

var ServiceSet = wire.NewSet(
	repo.Reposet,
	metrics.NewEngineMetrics,
	NewMockEngine,
	wire.Bind(new(iface.RuleMatchService), new(*MockEngine)),
	wire.Bind(new(iface.RuleManageService), new(*MockEngine)),
	wire.Bind(new(iface.PlaceholderService), new(*MockEngine)),
)
