package e2e

import (
	"context"
	"devchat/domain"
	"devchat/infrastructure/grpc/chatlogv1"
	"devchat/infrastructure/grpc/client"
	"devchat/infrastructure/grpc/server"
	"devchat/observability"
	"devchat/runtime/workers"
	"devchat/services"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

type BaseGrpcSuite struct {
	suite.Suite
	Config Config
	stop   context.CancelFunc
	done   chan struct{}
}

// SetupSuite loads the environment configuration and, without a target
// address, boots a chatd equivalent on a loopback port.
func (s *BaseGrpcSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ChatAddr == "" {
		s.Config.ChatAddr = s.startLocalServer()
	}
}

func (s *BaseGrpcSuite) TearDownSuite() {
	if s.stop == nil {
		return
	}
	s.stop()
	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		s.T().Log("local server did not stop in time")
	}
}

func (s *BaseGrpcSuite) startLocalServer() string {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	svc := services.NewChatLogService(domain.NewMessageLog(), metrics, log)

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(server.SessionInterceptor(log, svc)))
	chatlogv1.RegisterChatLogServer(grpcServer, server.NewChatLogServer(log, svc))

	// Reserve a free port, then let the worker listen on it
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	addr := lis.Addr().String()
	s.Require().NoError(lis.Close())

	sup := workers.NewSupervisor(log, 20*time.Millisecond)
	sup.Add(workers.NewGrpcServerWorker(log, grpcServer, addr, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	s.done = make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(s.done)
	}()
	return addr
}

// GrpcConn initializes a gRPC connection with logging, colors, and JSON debugging
func (s *BaseGrpcSuite) GrpcConn(t *testing.T, name string, addr string) *grpc.ClientConn {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	marshaler := protojson.MarshalOptions{
		UseProtoNames:   true,
		Multiline:       true,
		EmitUnpopulated: true,
	}

	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.WaitForReady(true)),
		grpc.WithUnaryInterceptor(func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)

			logBuilder := strings.Builder{}
			fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))

			if s.Config.DebugJSON {
				fmt.Fprintln(&logBuilder, "\nREQUEST:")
				fmt.Fprintln(&logBuilder, marshaler.Format(req.(proto.Message)))
				if err != nil {
					fmt.Fprintln(&logBuilder, "ERROR:", err)
				} else {
					fmt.Fprintln(&logBuilder, "RESPONSE:")
					fmt.Fprintln(&logBuilder, marshaler.Format(reply.(proto.Message)))
				}
			}
			t.Log(logBuilder.String())
			return err
		}),
	)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+addr)
	return conn
}

// WithChatLog provides a ChatLog client within a contextual test step
func (s *BaseGrpcSuite) WithChatLog(name string, fn func(ctx context.Context, c *client.ChatLogClient)) {
	conn := s.GrpcConn(s.T(), name, s.Config.ChatAddr)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fn(ctx, client.NewChatLogClient(conn))
}
