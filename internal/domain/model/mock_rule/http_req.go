package model

import (
	"net/http"
	"strings"
)

type HTTPRequestInfo struct {
	req *http.Request
}

var _ RequestInfo = (*HTTPRequestInfo)(nil)

// 创建 HTTP RequestInfo 的工厂方法
func NewHTTPRequest(r *http.Request) RequestInfo {
	return &HTTPRequestInfo{req: r}
}

// NewRequest builds request info from a bare method and URL.
func NewRequest(method, url string) RequestInfo {
	return &plainRequestInfo{method: method, url: url}
}

func (h *HTTPRequestInfo) GetProtocol() string {
	if h.req.URL != nil && h.req.URL.Scheme == "https" {
		return "https"
	}
	return "http"
}

func (h *HTTPRequestInfo) GetMethod() string {
	if h.req.Method == "" {
		return http.MethodGet
	}
	return h.req.Method
}

func (h *HTTPRequestInfo) GetURL() string {
	if h.req.URL == nil {
		return ""
	}
	return h.req.URL.String()
}

func (h *HTTPRequestInfo) GetHeaders() map[string]string {
	headers := make(map[string]string)
	for k, v := range h.req.Header {
		headers[strings.ToLower(k)] = strings.Join(v, ",")
	}
	return headers
}

type plainRequestInfo struct {
	method string
	url    string
}

func (p *plainRequestInfo) GetProtocol() string {
	if strings.HasPrefix(p.url, "https:") {
		return "https"
	}
	return "http"
}

func (p *plainRequestInfo) GetMethod() string {
	return p.method
}

func (p *plainRequestInfo) GetURL() string {
	return p.url
}

func (p *plainRequestInfo) GetHeaders() map[string]string {
	return map[string]string{}
}
