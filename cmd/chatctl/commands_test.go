package main

import (
	"bytes"
	"context"
	"devchat/domain"
	"devchat/errors"
	"devchat/infrastructure/grpc/chatlogv1"
	"devchat/infrastructure/grpc/client"
	"devchat/infrastructure/grpc/server"
	"devchat/observability"
	"devchat/services"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

func newCLI(t *testing.T, in string) (*CLI, *bytes.Buffer) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	svc := services.NewChatLogService(domain.NewMessageLog(), observability.NewMetrics(nil), log)

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.UnaryInterceptor(server.SessionInterceptor(log, svc)))
	chatlogv1.RegisterChatLogServer(s, server.NewChatLogServer(log, svc))
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	out := &bytes.Buffer{}
	return &CLI{Client: client.NewChatLogClient(conn), In: strings.NewReader(in), Out: out}, out
}

func TestCLI_Write_Read_Clear(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	cli, out := newCLI(t, "from stdin")

	// Given one message from arguments and one from stdin
	req.NoError(cli.Execute(ctx, []string{"write", "hello", "world"}))
	req.NoError(cli.Execute(ctx, []string{"write"}))

	// When the log is read
	req.NoError(cli.Execute(ctx, []string{"read"}))

	// Then both messages come back in order
	req.Equal("hello worldfrom stdin", out.String())

	// And a window can be selected
	out.Reset()
	req.NoError(cli.Execute(ctx, []string{"read", "-offset", "6", "-limit", "5"}))
	req.Equal("world", out.String())

	// And no argument clears the log
	req.NoError(cli.Execute(ctx, nil))
	err := cli.Execute(ctx, []string{"read"})
	req.ErrorIs(err, errors.ErrNoContent)
	req.Equal(exitNoContent, exitCodeFor(err))
}

func TestCLI_Control(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	cli, _ := newCLI(t, "")
	req.NoError(cli.Execute(ctx, []string{"write", "x"}))

	err := cli.Execute(ctx, []string{"control", "reboot"})
	req.ErrorIs(err, errors.ErrUnsupportedCommand)
	req.Equal(exitUnsupported, exitCodeFor(err))

	err = cli.Execute(ctx, []string{"control", "7"})
	req.ErrorIs(err, errors.ErrUnsupportedCommand)

	req.NoError(cli.Execute(ctx, []string{"control", "clear"}))
	req.ErrorIs(cli.Execute(ctx, []string{"read"}), errors.ErrNoContent)
}

func TestCLI_Stats_Renders_Table(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	cli, out := newCLI(t, "")
	req.NoError(cli.Execute(ctx, []string{"write", strings.Repeat("a", 300)}))

	req.NoError(cli.Execute(ctx, []string{"stats"}))

	rendered := out.String()
	req.Contains(rendered, "non-empty")
	req.Contains(rendered, "truncated")
	req.Contains(rendered, fmt.Sprint(domain.MaxMessageLen))
}

func TestCLI_Usage(t *testing.T) {
	ctx := context.Background()
	cli, _ := newCLI(t, "")

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown command", args: []string{"purge"}},
		{name: "clear with argument", args: []string{"clear", "now"}},
		{name: "control without command", args: []string{"control"}},
		{name: "read with unknown flag", args: []string{"read", "-from", "3"}},
		{name: "read with stray argument", args: []string{"read", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.Execute(ctx, tt.args)

			require.ErrorIs(t, err, ErrUsage)
			require.Equal(t, exitUsage, exitCodeFor(err))
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	req := require.New(t)
	req.Equal(exitOK, exitCodeFor(nil))
	req.Equal(exitOffset, exitCodeFor(errors.ErrInvalidOffset))
	req.Equal(exitTransport, exitCodeFor(fmt.Errorf("%w: broken pipe", errors.ErrTransportFailure)))
	req.Equal(exitRuntime, exitCodeFor(fmt.Errorf("boom")))
}

func TestPrintError(t *testing.T) {
	req := require.New(t)
	colours = false
	buf := &bytes.Buffer{}

	printError(buf, errors.ErrNoContent)

	req.True(strings.HasPrefix(buf.String(), "chatctl: "))
}
