package client

import (
	"context"
	"devchat/domain"
	"devchat/errors"
	v1 "devchat/infrastructure/grpc/chatlogv1"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ChatLogClient speaks domain types on top of the raw ChatLog stub.
// Status codes coming back from the server are turned into the errors
// package sentinels.
type ChatLogClient struct {
	Client v1.ChatLogClient
}

func NewChatLogClient(conn grpc.ClientConnInterface) *ChatLogClient {
	return &ChatLogClient{Client: v1.NewChatLogClient(conn)}
}

func (c *ChatLogClient) Append(ctx context.Context, offset int64, content []byte) error {
	if offset != 0 {
		ctx = metadata.AppendToOutgoingContext(ctx, v1.OffsetKey, strconv.FormatInt(offset, 10))
	}
	_, err := c.Client.Append(ctx, wrapperspb.Bytes(content))
	return errors.FromGRPCError(err)
}

// Read fetches [offset, offset+limit) of the log. A negative limit reads to the end.
func (c *ChatLogClient) Read(ctx context.Context, offset int64, limit int) ([]byte, error) {
	ctx = metadata.AppendToOutgoingContext(ctx,
		v1.OffsetKey, strconv.FormatInt(offset, 10),
		v1.LimitKey, strconv.Itoa(limit),
	)
	resp, err := c.Client.Read(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, errors.FromGRPCError(err)
	}
	return resp.GetValue(), nil
}

func (c *ChatLogClient) Clear(ctx context.Context) error {
	_, err := c.Client.Clear(ctx, &emptypb.Empty{})
	return errors.FromGRPCError(err)
}

func (c *ChatLogClient) Control(ctx context.Context, cmd domain.Command) error {
	_, err := c.Client.Control(ctx, wrapperspb.UInt32(uint32(cmd)))
	return errors.FromGRPCError(err)
}

func (c *ChatLogClient) Stats(ctx context.Context) (domain.Stats, error) {
	resp, err := c.Client.Stats(ctx, &emptypb.Empty{})
	if err != nil {
		return domain.Stats{}, errors.FromGRPCError(err)
	}
	return ToStats(resp), nil
}

func ToStats(s *structpb.Struct) domain.Stats {
	fields := s.GetFields()
	number := func(key string) float64 { return fields[key].GetNumberValue() }
	state := domain.StateNonEmpty
	if fields["state"].GetStringValue() == domain.StateEmpty.String() {
		state = domain.StateEmpty
	}
	return domain.Stats{
		State:         state,
		Count:         int(number("count")),
		Bytes:         int(number("bytes")),
		Capacity:      int(number("capacity")),
		MaxMessageLen: int(number("max_message_len")),
		Appended:      uint64(number("appended")),
		Evicted:       uint64(number("evicted")),
		Truncated:     uint64(number("truncated")),
		Clears:        uint64(number("clears")),
	}
}
