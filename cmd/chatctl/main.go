package main

import (
	"context"
	"devchat/infrastructure/grpc/client"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Exit codes for chatctl.
const (
	exitOK          = 0
	exitRuntime     = 1
	exitConfig      = 2
	exitNoContent   = 3
	exitUnsupported = 4
	exitOffset      = 5
	exitTransport   = 6
	exitUsage       = 64
)

func main() {
	code, err := run(os.Args[1:], os.Stdin, os.Stdout)
	if err != nil {
		printError(os.Stderr, err)
	}
	os.Exit(code)
}

var colours = true

func printError(w io.Writer, err error) {
	prefix := "chatctl:"
	if colours {
		prefix = color.New(color.FgRed, color.OpBold).Render(prefix)
	}
	fmt.Fprintf(w, "%s %v\n", prefix, err)
}

// run loads the configuration, connects to the daemon and executes one command.
// Without arguments the log is cleared.
func run(args []string, in io.Reader, out io.Writer) (int, error) {
	config, err := LoadConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	colours = config.Colours

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()

	conn, err := grpc.NewClient(config.ServerAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", config.ServerAddress, err)
	}
	defer func() { _ = conn.Close() }()

	cli := &CLI{Client: client.NewChatLogClient(conn), In: in, Out: out}
	if err := cli.Execute(ctx, args); err != nil {
		return exitCodeFor(err), err
	}
	return exitOK, nil
}
