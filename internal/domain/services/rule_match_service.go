package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	model "go_tail_mock/internal/domain/model/mock_rule"
	"go_tail_mock/utils"
)

// Match 按加载顺序找到第一个匹配的规则，返回其游标处的响应并前进游标
func (e *MockEngine) Match(ctx context.Context, req model.RequestInfo) (*model.MatchResult, error) {
	log := e.logger.WithFields(logrus.Fields{
		"protocol":   req.GetProtocol(),
		"method":     req.GetMethod(),
		"url":        req.GetURL(),
		"request_id": utils.RequestIDFromContext(ctx),
	})

	res, err := e.store.Load().Match(req.GetMethod(), req.GetURL())
	if err != nil {
		if errors.Is(err, model.ErrNoMatch) {
			e.metrics.ObserveMiss(req.GetMethod())
			log.Debug("no mock rule matched")
		}
		return nil, err
	}

	e.metrics.ObserveMatch(res.Rule.ID, res.Variant.StatusCode, res.Variant.Delay.Seconds())
	log.WithFields(logrus.Fields{
		"rule":    res.Rule.ID,
		"variant": res.Index,
		"status":  res.Variant.StatusCode,
		"delay":   res.Variant.Delay.String(),
	}).Info("mock rule matched")

	return res, nil
}

// RenderBody 对文本响应体替换占位符，二进制响应体原样返回
func (e *MockEngine) RenderBody(variant *model.ResponseVariant) []byte {
	if variant == nil || len(variant.Body) == 0 {
		return nil
	}
	if !variant.IsText() {
		return variant.Body
	}
	return []byte(e.placeholders.Substitute(string(variant.Body)))
}
