package http_mock_app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"go_tail_mock/internal/domain/iface"
	model "go_tail_mock/internal/domain/model/mock_rule"
	"go_tail_mock/utils"
)

// httpToGRPCCode HTTP 状态码到 gRPC 状态码的映射
var httpToGRPCCode = map[int]codes.Code{
	http.StatusBadRequest:          codes.InvalidArgument,
	http.StatusUnauthorized:        codes.Unauthenticated,
	http.StatusForbidden:           codes.PermissionDenied,
	http.StatusNotFound:            codes.NotFound,
	http.StatusConflict:            codes.AlreadyExists,
	http.StatusPreconditionFailed:  codes.FailedPrecondition,
	http.StatusTooManyRequests:     codes.ResourceExhausted,
	499:                            codes.Canceled,
	http.StatusInternalServerError: codes.Internal,
	http.StatusNotImplemented:      codes.Unimplemented,
	http.StatusServiceUnavailable:  codes.Unavailable,
	http.StatusGatewayTimeout:      codes.DeadlineExceeded,
}

// GRPCCode maps an HTTP status of a rule to the code returned to gRPC callers.
func GRPCCode(httpStatus int) codes.Code {
	if httpStatus >= 200 && httpStatus < 300 {
		return codes.OK
	}
	if code, ok := httpToGRPCCode[httpStatus]; ok {
		return code
	}
	if httpStatus >= 500 {
		return codes.Internal
	}
	return codes.Unknown
}

// UnaryClientInterceptor answers unary calls from engine. A call matches a
// rule when the method pattern matches POST and the URL pattern matches the
// full method name. Bodies are decoded as protojson unless the rule declares
// a protobuf content type.
func UnaryClientInterceptor(engine iface.RuleMatchService) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if utils.RequestIDFromContext(ctx) == "" {
			ctx = utils.WithRequestID(ctx, "")
		}

		res, err := engine.Match(ctx, model.NewGRPCRequest(ctx, method))
		if errors.Is(err, model.ErrNoMatch) {
			return status.Errorf(codes.Unimplemented, "%s: %v", method, err)
		}
		if err != nil {
			return status.Error(codes.Internal, err.Error())
		}

		if err := waitDelay(ctx, res.Variant.Delay); err != nil {
			return status.FromContextError(err).Err()
		}

		setResponseHeader(res.Variant.Headers, opts)

		body := engine.RenderBody(res.Variant)
		if code := GRPCCode(res.Variant.StatusCode); code != codes.OK {
			return status.Error(code, string(body))
		}

		if err := decodeReply(res.Variant.Headers, body, reply); err != nil {
			return status.Errorf(codes.Internal, "%s: %v", method, err)
		}
		return nil
	}
}

func waitDelay(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// setResponseHeader 将规则中的响应头写入 grpc.Header 调用选项
func setResponseHeader(headers map[string]string, opts []grpc.CallOption) {
	for _, opt := range opts {
		headerOpt, ok := opt.(grpc.HeaderCallOption)
		if !ok || headerOpt.HeaderAddr == nil {
			continue
		}
		md := metadata.MD{}
		for k, v := range headers {
			md.Append(k, v)
		}
		*headerOpt.HeaderAddr = md
	}
}

func decodeReply(headers map[string]string, body []byte, reply interface{}) error {
	msg, ok := reply.(proto.Message)
	if !ok {
		return fmt.Errorf("reply type %T is not a proto message", reply)
	}
	if len(body) == 0 {
		proto.Reset(msg)
		return nil
	}

	if isProtobufContent(headers) {
		return proto.Unmarshal(body, msg)
	}
	return protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(body, msg)
}

func isProtobufContent(headers map[string]string) bool {
	for k, v := range headers {
		if !strings.EqualFold(k, "Content-Type") {
			continue
		}
		v = strings.ToLower(v)
		if strings.Contains(v, "json") {
			return false
		}
		return strings.Contains(v, "protobuf") || strings.HasPrefix(v, "application/grpc")
	}
	return false
}
