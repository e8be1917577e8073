package server

import (
	"bytes"
	"context"
	"devchat/domain"
	"devchat/errors"
	v1 "devchat/infrastructure/grpc/chatlogv1"
	"devchat/services"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type ChatLogServer struct {
	chatLogService services.IChatLogService
	log            *slog.Logger
}

var _ v1.ChatLogServer = (*ChatLogServer)(nil)

func NewChatLogServer(log *slog.Logger, chatLogService services.IChatLogService) *ChatLogServer {
	return &ChatLogServer{chatLogService: chatLogService, log: log}
}

func (s *ChatLogServer) Append(ctx context.Context, req *wrapperspb.BytesValue) (*emptypb.Empty, error) {
	offset, err := metadataInt(ctx, v1.OffsetKey, 0)
	if err != nil {
		return nil, err
	}
	if _, err = s.chatLogService.Write(ctx, offset, bytes.NewReader(req.GetValue())); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &emptypb.Empty{}, nil
}

// Read returns the window of the log selected by the offset and limit
// metadata. Without metadata the whole log is returned.
func (s *ChatLogServer) Read(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	offset, err := metadataInt(ctx, v1.OffsetKey, 0)
	if err != nil {
		return nil, err
	}
	limit, err := metadataInt(ctx, v1.LimitKey, -1)
	if err != nil {
		return nil, err
	}
	buf, err := s.chatLogService.Read(ctx, offset, int(limit))
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return wrapperspb.Bytes(buf), nil
}

func (s *ChatLogServer) Clear(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if _, err := s.chatLogService.Clear(ctx); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *ChatLogServer) Control(ctx context.Context, req *wrapperspb.UInt32Value) (*emptypb.Empty, error) {
	if err := s.chatLogService.Control(ctx, domain.Command(req.GetValue())); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *ChatLogServer) Stats(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st := s.chatLogService.Stats()
	out, err := structpb.NewStruct(map[string]any{
		"state":           st.State.String(),
		"count":           st.Count,
		"bytes":           st.Bytes,
		"capacity":        st.Capacity,
		"max_message_len": st.MaxMessageLen,
		"appended":        st.Appended,
		"evicted":         st.Evicted,
		"truncated":       st.Truncated,
		"clears":          st.Clears,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// SessionInterceptor opens the chat channel around every call, the way a
// device is opened and closed around each access, and logs the outcome.
func SessionInterceptor(log *slog.Logger, chatLogService services.IChatLogService) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := uuid.NewString()
		start := time.Now()
		if err := chatLogService.Open(ctx); err != nil {
			return nil, errors.MapToGRPCError(err)
		}
		defer func() { _ = chatLogService.Close(ctx) }()

		resp, err := handler(ctx, req)
		log.Debug("gRPC call",
			"method", info.FullMethod,
			"request_id", requestID,
			"code", status.Code(err).String(),
			"latency", time.Since(start))
		return resp, err
	}
}

func metadataInt(ctx context.Context, key string, fallback int64) (int64, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return fallback, nil
	}
	values := md.Get(key)
	if len(values) == 0 {
		return fallback, nil
	}
	n, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return 0, status.Errorf(codes.InvalidArgument, "malformed %s: %q", key, values[0])
	}
	return n, nil
}
