package domain

import (
	"devchat/errors"
	"fmt"
	"strconv"
	"strings"
)

// Command is an out-of-band control request on the chat log.
type Command uint32

const (
	// CommandClear empties the log.
	CommandClear Command = 1
)

func (c Command) String() string {
	switch c {
	case CommandClear:
		return "clear"
	default:
		return fmt.Sprintf("command(%d)", uint32(c))
	}
}

// ParseCommand accepts a command name or its numeric code.
// Unknown names fail; unknown codes are returned as-is so the log
// itself decides whether it supports them.
func ParseCommand(s string) (Command, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, CommandClear.String()) {
		return CommandClear, nil
	}
	code, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errors.ErrUnsupportedCommand, s)
	}
	return Command(code), nil
}
