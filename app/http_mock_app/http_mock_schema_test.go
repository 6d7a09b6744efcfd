package http_mock_app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emicklei/go-restful"
	rf "github.com/go-chassis/go-chassis/v2/server/restful"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "go_tail_mock/internal/domain/model/mock_rule"
	"go_tail_mock/internal/domain/services"
	configs "go_tail_mock/internal/infra/config"
	"go_tail_mock/internal/infra/metrics"
	"go_tail_mock/internal/infra/repo"
	"go_tail_mock/internal/infra/storage"
)

type controllerFixture struct {
	dir        string
	engine     *services.MockEngine
	controller *MockController
	routes     map[string]func(*rf.Context)
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()
	dir := t.TempDir()
	writeRule(t, dir, "a.tail", "GET\n/a\n200\n--\n404\n")

	cfg := configs.NewEngineConfig(dir)
	ruleRepo, cleanup, err := repo.NewRuleRepoImpl(storage.NewFileRuleStorage(), configs.NewRuleRepoConfig(cfg))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	reg := prometheus.NewRegistry()
	engine := services.NewMockEngine(ruleRepo, repo.NewPlaceholderRepoImpl(nil, &cfg.Redis), cfg, metrics.NewEngineMetrics(reg), nil)
	require.NoError(t, engine.Load(context.Background()))

	controller := NewMockController(engine, engine, reg, nil)
	routes := map[string]func(*rf.Context){}
	for _, route := range controller.URLPatterns() {
		routes[route.Method+" "+route.Path] = route.ResourceFunc
	}

	return &controllerFixture{dir: dir, engine: engine, controller: controller, routes: routes}
}

func (f *controllerFixture) call(t *testing.T, method, path string, params map[string]string, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler, ok := f.routes[method+" "+path]
	require.True(t, ok, "route %s %s not registered", method, path)

	httpReq := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	req := restful.NewRequest(httpReq)
	for k, v := range params {
		req.PathParameters()[k] = v
	}
	rec := httptest.NewRecorder()

	handler(&rf.Context{Ctx: context.Background(), Req: req, Resp: restful.NewResponse(rec)})
	return rec
}

func TestMockControllerListRules(t *testing.T) {
	f := newControllerFixture(t)
	_, _ = f.engine.Match(context.Background(), model.NewRequest("GET", "/a"))

	rec := f.call(t, http.MethodGet, "/mock/rules", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListRulesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "a.tail", resp.Rules[0].ID)
	assert.Equal(t, 1, resp.Rules[0].Cursor)
}

func TestMockControllerReloadRules(t *testing.T) {
	f := newControllerFixture(t)
	_, _ = f.engine.Match(context.Background(), model.NewRequest("GET", "/a"))

	rec := f.call(t, http.MethodPost, "/mock/rules/reload", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, f.engine.Rules()[0].Cursor)

	writeRule(t, f.dir, "b.tail", "GET\n/b\nnot-a-status\n")
	rec = f.call(t, http.MethodPost, "/mock/rules/reload", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid status code")
	assert.Len(t, f.engine.Rules(), 1)
}

func TestMockControllerPlaceholders(t *testing.T) {
	f := newControllerFixture(t)
	params := map[string]string{"name": "username"}

	rec := f.call(t, http.MethodGet, "/mock/placeholders/{name}", params, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.call(t, http.MethodPut, "/mock/placeholders/{name}", params, `{"value": "John Doe"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	value, ok := f.engine.GetPlaceholder(context.Background(), "username")
	assert.True(t, ok)
	assert.Equal(t, "John Doe", value)

	rec = f.call(t, http.MethodGet, "/mock/placeholders/{name}", params, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp PlaceholderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, PlaceholderResponse{Name: "username", Value: "John Doe"}, resp)

	rec = f.call(t, http.MethodDelete, "/mock/placeholders/{name}", params, "")
	require.Equal(t, http.StatusOK, rec.Code)
	_, ok = f.engine.GetPlaceholder(context.Background(), "username")
	assert.False(t, ok)

	rec = f.call(t, http.MethodPost, "/mock/placeholders/sync", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMockControllerPlaceholderValidation(t *testing.T) {
	f := newControllerFixture(t)

	rec := f.call(t, http.MethodPut, "/mock/placeholders/{name}", map[string]string{"name": "{{bad}}"}, `{"value": "x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.call(t, http.MethodPut, "/mock/placeholders/{name}", map[string]string{"name": "ok"}, `{"value": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.call(t, http.MethodGet, "/mock/placeholders/{name}", map[string]string{"name": ""}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMockControllerMetrics(t *testing.T) {
	f := newControllerFixture(t)
	_, _ = f.engine.Match(context.Background(), model.NewRequest("GET", "/a"))

	rec := f.call(t, http.MethodGet, "/mock/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tailmock_matches_total{rule="a.tail",status="200"} 1`)
}

func TestPlaceholderRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     PlaceholderRequest
		wantErr bool
	}{
		{name: "valid", req: PlaceholderRequest{Name: "username", Value: "John"}},
		{name: "name with spaces", req: PlaceholderRequest{Name: "user name", Value: ""}},
		{name: "empty name", req: PlaceholderRequest{Value: "x"}, wantErr: true},
		{name: "braces in name", req: PlaceholderRequest{Name: "a}}b"}, wantErr: true},
		{name: "name too long", req: PlaceholderRequest{Name: strings.Repeat("a", 129)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
