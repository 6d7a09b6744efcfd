package http_mock_app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"go_tail_mock/internal/domain/services"
)

// MockApp 组装好的引擎及其对外入口
type MockApp struct {
	Engine     *services.MockEngine
	Transport  *MockTransport
	Controller *MockController
	Proxy      *MockProxy
	Registry   *prometheus.Registry
	Logger     *logrus.Logger
}

// NewMockApp loads the rules and pulls shared placeholders before the app
// starts answering requests.
func NewMockApp(ctx context.Context, engine *services.MockEngine, transport *MockTransport, controller *MockController, proxy *MockProxy, registry *prometheus.Registry, logger *logrus.Logger) (*MockApp, error) {
	if err := engine.Load(ctx); err != nil {
		return nil, err
	}
	if err := engine.SyncPlaceholders(ctx); err != nil {
		return nil, fmt.Errorf("initial placeholder sync: %w", err)
	}

	return &MockApp{
		Engine:     engine,
		Transport:  transport,
		Controller: controller,
		Proxy:      proxy,
		Registry:   registry,
		Logger:     logger,
	}, nil
}
