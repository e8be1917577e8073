package main

import (
	"context"
	"devchat/domain"
	"devchat/errors"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

var ErrUsage = stderrors.New("usage: chatctl [clear | write [message...] | read [-offset N] [-limit N] | control <command> | stats]")

// ChatLogAPI is the part of the gRPC client chatctl drives.
type ChatLogAPI interface {
	Append(ctx context.Context, offset int64, content []byte) error
	Read(ctx context.Context, offset int64, limit int) ([]byte, error)
	Clear(ctx context.Context) error
	Control(ctx context.Context, cmd domain.Command) error
	Stats(ctx context.Context) (domain.Stats, error)
}

type CLI struct {
	Client ChatLogAPI
	In     io.Reader
	Out    io.Writer
}

func (c *CLI) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.Client.Clear(ctx)
	}
	switch args[0] {
	case "clear":
		if len(args) != 1 {
			return ErrUsage
		}
		return c.Client.Clear(ctx)
	case "write":
		return c.write(ctx, args[1:])
	case "read":
		return c.read(ctx, args[1:])
	case "control":
		if len(args) != 2 {
			return ErrUsage
		}
		cmd, err := domain.ParseCommand(args[1])
		if err != nil {
			return err
		}
		return c.Client.Control(ctx, cmd)
	case "stats":
		return c.stats(ctx)
	default:
		return ErrUsage
	}
}

// write sends the arguments joined by spaces, or stdin when there are none.
func (c *CLI) write(ctx context.Context, args []string) error {
	var content []byte
	if len(args) > 0 {
		content = []byte(strings.Join(args, " "))
	} else {
		var err error
		if content, err = io.ReadAll(c.In); err != nil {
			return fmt.Errorf("%w: %w", errors.ErrTransportFailure, err)
		}
	}
	return c.Client.Append(ctx, 0, content)
}

func (c *CLI) read(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	offset := fs.Int64("offset", 0, "first byte to read")
	limit := fs.Int("limit", -1, "maximum number of bytes, negative for no limit")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	buf, err := c.Client.Read(ctx, *offset, *limit)
	if err != nil {
		return err
	}
	_, err = c.Out.Write(buf)
	return err
}

func (c *CLI) stats(ctx context.Context) error {
	st, err := c.Client.Stats(ctx)
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(c.Out)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.AppendBulk([][]string{
		{"state", st.State.String()},
		{"count", strconv.Itoa(st.Count)},
		{"bytes", strconv.Itoa(st.Bytes)},
		{"capacity", strconv.Itoa(st.Capacity)},
		{"max message len", strconv.Itoa(st.MaxMessageLen)},
		{"appended", strconv.FormatUint(st.Appended, 10)},
		{"evicted", strconv.FormatUint(st.Evicted, 10)},
		{"truncated", strconv.FormatUint(st.Truncated, 10)},
		{"clears", strconv.FormatUint(st.Clears, 10)},
	})
	table.Render()
	return nil
}

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case stderrors.Is(err, ErrUsage):
		return exitUsage
	case stderrors.Is(err, errors.ErrNoContent):
		return exitNoContent
	case stderrors.Is(err, errors.ErrUnsupportedCommand):
		return exitUnsupported
	case stderrors.Is(err, errors.ErrInvalidOffset):
		return exitOffset
	case stderrors.Is(err, errors.ErrTransportFailure):
		return exitTransport
	default:
		return exitRuntime
	}
}
