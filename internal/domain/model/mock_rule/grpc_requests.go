package model

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/grpc/metadata"
)

// GRPCRequestInfo presents a unary gRPC call as a POST to its full method path,
// e.g. "/helloworld.Greeter/SayHello".
type GRPCRequestInfo struct {
	method   string      // 完整方法路径 如 /package.Service/Method
	metadata metadata.MD // 元数据
}

var _ RequestInfo = (*GRPCRequestInfo)(nil)

// 创建 gRPC RequestInfo 的工厂方法
func NewGRPCRequest(ctx context.Context, fullMethod string) RequestInfo {
	md, _ := metadata.FromOutgoingContext(ctx)
	return &GRPCRequestInfo{
		method:   fullMethod,
		metadata: md,
	}
}

func (g *GRPCRequestInfo) GetProtocol() string {
	return "grpc"
}

func (g *GRPCRequestInfo) GetMethod() string {
	return http.MethodPost
}

func (g *GRPCRequestInfo) GetURL() string {
	return g.method
}

func (g *GRPCRequestInfo) GetHeaders() map[string]string {
	headers := make(map[string]string)
	for k, v := range g.metadata {
		headers[k] = strings.Join(v, ",")
	}
	return headers
}
