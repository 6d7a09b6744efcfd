package http_mock_app

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	model "go_tail_mock/internal/domain/model/mock_rule"
)

var validate = validator.New()

// PlaceholderRequest 占位符名称取自路径参数，值取自请求体
type PlaceholderRequest struct {
	Name  string `json:"-" validate:"required,max=128,excludesall={}"`
	Value string `json:"value" validate:"max=65536"`
}

// Validate performs validation on PlaceholderRequest
func (req *PlaceholderRequest) Validate() error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// ValidatePlaceholderName 只校验名称，用于 GET/DELETE
func ValidatePlaceholderName(name string) error {
	if err := validate.Var(name, "required,max=128,excludesall={}"); err != nil {
		return fmt.Errorf("invalid placeholder name %q: %w", name, err)
	}
	return nil
}

type PlaceholderResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ListRulesResponse struct {
	Total int                 `json:"total"`
	Rules []model.RuleSummary `json:"rules"`
}

func NewListRulesResponse(rules []model.RuleSummary) *ListRulesResponse {
	if rules == nil {
		rules = []model.RuleSummary{}
	}
	return &ListRulesResponse{Total: len(rules), Rules: rules}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
