package http_mock_app

import (
	"errors"
	"net/http"
	"runtime/debug"
	"sync/atomic"

	"github.com/go-chassis/go-chassis/v2/pkg/metrics"
	rf "github.com/go-chassis/go-chassis/v2/server/restful"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"go_tail_mock/internal/domain/iface"
	model "go_tail_mock/internal/domain/model/mock_rule"
	enginemetrics "go_tail_mock/internal/infra/metrics"
	"go_tail_mock/utils"
)

const (
	requestCounterName = "mock_manage_request_total"
	contentTypeJSON    = "application/json"
)

// chassis 指标需在 chassis.Init 之后注册
var chassisMetricsEnabled atomic.Bool

// EnableChassisMetrics registers the management request counter with the
// go-chassis metrics registry. Call it after chassis.Init.
func EnableChassisMetrics() error {
	err := metrics.CreateCounter(metrics.CounterOpts{
		Name:   requestCounterName,
		Help:   "Total requests to the mock management api",
		Labels: []string{"method", "endpoint"},
	})
	if err != nil {
		return err
	}
	chassisMetricsEnabled.Store(true)
	return nil
}

type MockController struct {
	RuleManageService  iface.RuleManageService
	PlaceholderService iface.PlaceholderService
	Registry           *prometheus.Registry
	Logger             *logrus.Logger
}

func NewMockController(ruleManageService iface.RuleManageService, placeholderService iface.PlaceholderService, registry *prometheus.Registry, logger *logrus.Logger) *MockController {
	return &MockController{
		RuleManageService:  ruleManageService,
		PlaceholderService: placeholderService,
		Registry:           registry,
		Logger:             utils.LoggerOrDefault(logger),
	}
}

// handle 记录请求指标并恢复 panic
func (c *MockController) handle(name string, fn func(b *rf.Context, log *logrus.Entry)) func(b *rf.Context) {
	return func(b *rf.Context) {
		req := b.ReadRequest()
		if b.Ctx == nil {
			b.Ctx = req.Context()
		}
		b.Ctx = utils.WithRequestID(b.Ctx, req.Header.Get(requestIDHeader))

		log := c.Logger.WithFields(logrus.Fields{
			"handler":    name,
			"method":     req.Method,
			"path":       req.URL.Path,
			"request_id": utils.RequestIDFromContext(b.Ctx),
		})
		log.Debug("handle request begin")

		if chassisMetricsEnabled.Load() {
			_ = metrics.CounterAdd(requestCounterName, 1, map[string]string{
				"method":   req.Method,
				"endpoint": name,
			})
		}

		defer func() {
			if err := recover(); err != nil {
				log.WithFields(logrus.Fields{
					"panic": err,
					"stack": string(debug.Stack()),
				}).Error("handle request panic")
				writeError(b, http.StatusInternalServerError, errors.New("internal server error"))
			}
		}()

		fn(b, log)
	}
}

func (c *MockController) ListRules(b *rf.Context, _ *logrus.Entry) {
	_ = b.WriteHeaderAndJSON(http.StatusOK, NewListRulesResponse(c.RuleManageService.Rules()), contentTypeJSON)
}

func (c *MockController) ReloadRules(b *rf.Context, log *logrus.Entry) {
	if err := c.RuleManageService.Reload(b.Ctx); err != nil {
		log.WithError(err).Error("reload rules err")
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrInvalidRule) {
			status = http.StatusUnprocessableEntity
		}
		writeError(b, status, err)
		return
	}
	_ = b.WriteHeaderAndJSON(http.StatusOK, NewListRulesResponse(c.RuleManageService.Rules()), contentTypeJSON)
}

func (c *MockController) GetPlaceholder(b *rf.Context, _ *logrus.Entry) {
	name := b.ReadPathParameter("name")
	if err := ValidatePlaceholderName(name); err != nil {
		writeError(b, http.StatusBadRequest, err)
		return
	}

	value, ok := c.PlaceholderService.GetPlaceholder(b.Ctx, name)
	if !ok {
		writeError(b, http.StatusNotFound, errors.New("placeholder not found"))
		return
	}
	_ = b.WriteHeaderAndJSON(http.StatusOK, &PlaceholderResponse{Name: name, Value: value}, contentTypeJSON)
}

func (c *MockController) SetPlaceholder(b *rf.Context, log *logrus.Entry) {
	var req PlaceholderRequest
	if err := b.ReadEntity(&req); err != nil {
		log.WithError(err).Error("read request body err")
		writeError(b, http.StatusBadRequest, err)
		return
	}
	req.Name = b.ReadPathParameter("name")

	if err := req.Validate(); err != nil {
		log.WithError(err).Error("validate request err")
		writeError(b, http.StatusBadRequest, err)
		return
	}

	if err := c.PlaceholderService.SetPlaceholder(b.Ctx, req.Name, req.Value); err != nil {
		log.WithError(err).Error("set placeholder err")
		writeError(b, http.StatusBadGateway, err)
		return
	}
	_ = b.WriteHeaderAndJSON(http.StatusOK, &PlaceholderResponse{Name: req.Name, Value: req.Value}, contentTypeJSON)
}

func (c *MockController) DeletePlaceholder(b *rf.Context, log *logrus.Entry) {
	name := b.ReadPathParameter("name")
	if err := ValidatePlaceholderName(name); err != nil {
		writeError(b, http.StatusBadRequest, err)
		return
	}

	if err := c.PlaceholderService.DeletePlaceholder(b.Ctx, name); err != nil {
		log.WithError(err).Error("delete placeholder err")
		writeError(b, http.StatusBadGateway, err)
		return
	}
	_ = b.WriteHeaderAndJSON(http.StatusOK, &MessageResponse{Message: "success"}, contentTypeJSON)
}

func (c *MockController) SyncPlaceholders(b *rf.Context, log *logrus.Entry) {
	if err := c.PlaceholderService.SyncPlaceholders(b.Ctx); err != nil {
		log.WithError(err).Error("sync placeholders err")
		writeError(b, http.StatusBadGateway, err)
		return
	}
	_ = b.WriteHeaderAndJSON(http.StatusOK, &MessageResponse{Message: "success"}, contentTypeJSON)
}

// Metrics 输出引擎的 prometheus 指标
func (c *MockController) Metrics(b *rf.Context, _ *logrus.Entry) {
	enginemetrics.Handler(c.Registry).ServeHTTP(b.ReadResponseWriter(), b.ReadRequest())
}

func (c *MockController) URLPatterns() []rf.Route {
	return []rf.Route{
		{Method: http.MethodGet, Path: "/mock/rules", ResourceFunc: c.handle("list_rules", c.ListRules),
			Returns: []*rf.Returns{{Code: 200}}},
		{Method: http.MethodPost, Path: "/mock/rules/reload", ResourceFunc: c.handle("reload_rules", c.ReloadRules),
			Returns: []*rf.Returns{{Code: 200}, {Code: 422}}},
		{Method: http.MethodPost, Path: "/mock/placeholders/sync", ResourceFunc: c.handle("sync_placeholders", c.SyncPlaceholders),
			Returns: []*rf.Returns{{Code: 200}}},
		{Method: http.MethodGet, Path: "/mock/placeholders/{name}", ResourceFunc: c.handle("get_placeholder", c.GetPlaceholder),
			Returns: []*rf.Returns{{Code: 200}, {Code: 404}}},
		{Method: http.MethodPut, Path: "/mock/placeholders/{name}", ResourceFunc: c.handle("set_placeholder", c.SetPlaceholder),
			Returns: []*rf.Returns{{Code: 200}, {Code: 400}}},
		{Method: http.MethodDelete, Path: "/mock/placeholders/{name}", ResourceFunc: c.handle("delete_placeholder", c.DeletePlaceholder),
			Returns: []*rf.Returns{{Code: 200}}},
		{Method: http.MethodGet, Path: "/mock/metrics", ResourceFunc: c.handle("metrics", c.Metrics),
			Returns: []*rf.Returns{{Code: 200}}},
	}
}

func writeError(b *rf.Context, status int, err error) {
	_ = b.WriteHeaderAndJSON(status, &ErrorResponse{Error: err.Error()}, contentTypeJSON)
}
