package model

import "time"

type RequestInfo interface {
	GetProtocol() string           // 获取协议类型 (例如 "http", "grpc")
	GetMethod() string             // 获取请求方法 (HTTP Method; gRPC 固定为 POST)
	GetURL() string                // 获取完整 URL (gRPC 为完整方法路径)
	GetHeaders() map[string]string // 获取请求头 (HTTP Headers, gRPC Metadata)
}

type ResponseInfo interface {
	GetStatus() int                // Get response status code
	GetHeaders() map[string]string // Get response headers
	GetBody() []byte               // Get response body as raw bytes
	GetDelay() time.Duration       // Get configured response delay
}
