package http_mock_app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go_tail_mock/internal/domain/iface"
	model "go_tail_mock/internal/domain/model/mock_rule"
	"go_tail_mock/internal/domain/services"
	"go_tail_mock/utils"
)

// ErrNoEngine is returned by MockTransport while no engine is registered.
var ErrNoEngine = errors.New("no mock engine registered")

const requestIDHeader = "X-Request-Id"

type engineHolder struct {
	engine iface.RuleMatchService
}

// MockTransport is an http.RoundTripper answering every request from the
// registered engine. It never touches the network.
type MockTransport struct {
	holder atomic.Pointer[engineHolder]
}

var _ http.RoundTripper = (*MockTransport)(nil)

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// NewMockTransportFor 创建并注册 engine 的 transport
func NewMockTransportFor(engine iface.RuleMatchService) *MockTransport {
	t := NewMockTransport()
	t.Register(engine)
	return t
}

// Register 替换当前引擎，之后的请求由新引擎应答
func (t *MockTransport) Register(engine iface.RuleMatchService) {
	if engine == nil {
		t.Unregister()
		return
	}
	t.holder.Store(&engineHolder{engine: engine})
}

func (t *MockTransport) Unregister() {
	t.holder.Store(nil)
}

func (t *MockTransport) Engine() iface.RuleMatchService {
	if h := t.holder.Load(); h != nil {
		return h.engine
	}
	return nil
}

func (t *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		defer req.Body.Close()
	}

	engine := t.Engine()
	if engine == nil {
		return nil, ErrNoEngine
	}

	ctx := req.Context()
	if utils.RequestIDFromContext(ctx) == "" {
		ctx = utils.WithRequestID(ctx, req.Header.Get(requestIDHeader))
	}

	res, err := engine.Match(ctx, model.NewHTTPRequest(req))
	if err != nil {
		return nil, fmt.Errorf("mock %s %s: %w", req.Method, req.URL, err)
	}

	return newMockResponse(ctx, req, res.Variant, engine.RenderBody(res.Variant)), nil
}

func newMockResponse(ctx context.Context, req *http.Request, variant *model.ResponseVariant, body []byte) *http.Response {
	header := make(http.Header, len(variant.Headers))
	for k, v := range variant.Headers {
		header.Set(k, v)
	}
	// 占位符替换可能改变长度
	if header.Get("Content-Length") != "" {
		header.Set("Content-Length", strconv.Itoa(len(body)))
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", variant.StatusCode, http.StatusText(variant.StatusCode)),
		StatusCode:    variant.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          newDelayedBody(ctx, body, variant.Delay),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}

// delayedBody holds back the first read until delay has passed or ctx is done.
type delayedBody struct {
	ctx   context.Context
	delay time.Duration
	r     *bytes.Reader

	once sync.Once
	err  error
}

func newDelayedBody(ctx context.Context, body []byte, delay time.Duration) io.ReadCloser {
	if delay <= 0 {
		if len(body) == 0 {
			return http.NoBody
		}
		return io.NopCloser(bytes.NewReader(body))
	}
	return &delayedBody{ctx: ctx, delay: delay, r: bytes.NewReader(body)}
}

func (b *delayedBody) Read(p []byte) (int, error) {
	b.once.Do(b.wait)
	if b.err != nil {
		return 0, b.err
	}
	return b.r.Read(p)
}

func (b *delayedBody) Close() error {
	return nil
}

func (b *delayedBody) wait() {
	timer := time.NewTimer(b.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-b.ctx.Done():
		b.err = b.ctx.Err()
	}
}

// Start loads dir into a new engine and installs a transport answering from
// it on client, or on http.DefaultClient when client is nil.
func Start(ctx context.Context, dir string, client *http.Client) (*services.MockEngine, *MockTransport, error) {
	engine, err := services.NewMockEngineFromDir(ctx, dir)
	if err != nil {
		return nil, nil, err
	}

	if client == nil {
		client = http.DefaultClient
	}
	transport := NewMockTransportFor(engine)
	client.Transport = transport

	return engine, transport, nil
}
