package http_mock_app

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/martian/v3"
	"github.com/sirupsen/logrus"

	configs "go_tail_mock/internal/infra/config"
	"go_tail_mock/utils"
)

const proxyTimeout = 5 * time.Minute

// MockProxy is a forward HTTP proxy whose upstream is the mock transport.
// Plain HTTP requests are answered from the rules; CONNECT tunnels are not
// intercepted.
type MockProxy struct {
	proxy  *martian.Proxy
	listen string
	logger *logrus.Logger

	mu       sync.Mutex
	listener net.Listener
}

func NewProxyConfig(c *configs.EngineConfig) *configs.ProxyConfig {
	return &c.Proxy
}

func NewMockProxy(transport *MockTransport, cfg *configs.ProxyConfig, logger *logrus.Logger) *MockProxy {
	p := martian.NewProxy()
	p.SetRoundTripper(transport)
	p.SetTimeout(proxyTimeout)

	return &MockProxy{
		proxy:  p,
		listen: cfg.Listen,
		logger: utils.LoggerOrDefault(logger),
	}
}

func (p *MockProxy) Addr() string {
	return p.listen
}

// Serve accepts proxy connections on l until Close is called.
func (p *MockProxy) Serve(l net.Listener) error {
	p.mu.Lock()
	p.listener = l
	p.mu.Unlock()

	p.logger.WithField("addr", l.Addr().String()).Info("mock proxy listening")

	err := p.proxy.Serve(l)
	if err != nil && !errors.Is(err, net.ErrClosed) && !p.proxy.Closing() {
		return fmt.Errorf("mock proxy: %w", err)
	}
	return nil
}

func (p *MockProxy) ListenAndServe() error {
	l, err := net.Listen("tcp", p.listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", p.listen, err)
	}
	return p.Serve(l)
}

// Close stops the proxy. martian only notices Close between accepts, so the
// listener is closed as well.
func (p *MockProxy) Close() {
	p.proxy.Close()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listener != nil {
		_ = p.listener.Close()
	}
}
