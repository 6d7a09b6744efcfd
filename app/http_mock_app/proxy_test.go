package http_mock_app

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_tail_mock/internal/domain/services"
	configs "go_tail_mock/internal/infra/config"
)

func TestMockProxy(t *testing.T) {
	dir := t.TempDir()
	writeRule(t, dir, "users.tail", "GET\nhttp://api\\.example\\.com/users/\\d+\n200\nContent-Type: application/json\n\n{\"id\": 1}")

	engine, err := services.NewMockEngineFromDir(context.Background(), dir)
	require.NoError(t, err)
	defer engine.Close()

	proxy := NewMockProxy(NewMockTransportFor(engine), &configs.ProxyConfig{Listen: "127.0.0.1:0"}, nil)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- proxy.Serve(l) }()

	proxyURL, err := url.Parse("http://" + l.Addr().String())
	require.NoError(t, err)
	client := &http.Client{
		Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL), DisableKeepAlives: true},
		Timeout:   5 * time.Second,
	}

	resp, err := client.Get("http://api.example.com/users/1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, `{"id": 1}`, readBody(t, resp))

	proxy.Close()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("proxy did not stop")
	}
}

func TestNewProxyConfig(t *testing.T) {
	cfg := configs.NewEngineConfig(t.TempDir())
	proxy := NewMockProxy(NewMockTransport(), NewProxyConfig(cfg), nil)
	assert.Equal(t, "127.0.0.1:8089", proxy.Addr())
}
