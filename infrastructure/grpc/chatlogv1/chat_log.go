// Package chatlogv1 describes the devchat.v1.ChatLog gRPC service.
//
// The service only exchanges protobuf well-known types, so the descriptor is
// written by hand instead of being generated from a .proto file. Offsets and
// limits travel as request metadata, next to the payload rather than inside it.
package chatlogv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "devchat.v1.ChatLog"

	AppendFullMethodName  = "/" + ServiceName + "/Append"
	ReadFullMethodName    = "/" + ServiceName + "/Read"
	ClearFullMethodName   = "/" + ServiceName + "/Clear"
	ControlFullMethodName = "/" + ServiceName + "/Control"
	StatsFullMethodName   = "/" + ServiceName + "/Stats"

	// OffsetKey carries the logical stream offset of an Append or Read.
	OffsetKey = "x-chat-offset"
	// LimitKey carries the maximum number of bytes a Read returns.
	LimitKey = "x-chat-limit"
)

// ChatLogServer is the server API for the ChatLog service.
type ChatLogServer interface {
	Append(context.Context, *wrapperspb.BytesValue) (*emptypb.Empty, error)
	Read(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
	Clear(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Control(context.Context, *wrapperspb.UInt32Value) (*emptypb.Empty, error)
	Stats(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

func RegisterChatLogServer(s grpc.ServiceRegistrar, srv ChatLogServer) {
	s.RegisterService(&ChatLogServiceDesc, srv)
}

var ChatLogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ChatLogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Append", Handler: appendHandler},
		{MethodName: "Read", Handler: readHandler},
		{MethodName: "Clear", Handler: clearHandler},
		{MethodName: "Control", Handler: controlHandler},
		{MethodName: "Stats", Handler: statsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "devchat/v1/chat_log",
}

func appendHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatLogServer).Append(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AppendFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatLogServer).Append(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func readHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatLogServer).Read(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReadFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatLogServer).Read(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func clearHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatLogServer).Clear(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ClearFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatLogServer).Clear(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func controlHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.UInt32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatLogServer).Control(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ControlFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatLogServer).Control(ctx, req.(*wrapperspb.UInt32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func statsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatLogServer).Stats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: StatsFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatLogServer).Stats(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// ChatLogClient is the client API for the ChatLog service.
type ChatLogClient interface {
	Append(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Read(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Clear(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Control(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Stats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type chatLogClient struct {
	cc grpc.ClientConnInterface
}

func NewChatLogClient(cc grpc.ClientConnInterface) ChatLogClient {
	return &chatLogClient{cc: cc}
}

func (c *chatLogClient) Append(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, AppendFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatLogClient) Read(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, ReadFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatLogClient) Clear(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, ClearFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatLogClient) Control(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, ControlFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatLogClient) Stats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, StatsFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
