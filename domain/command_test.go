package domain

import (
	"devchat/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected Command
		err      error
	}{
		{"clear", CommandClear, nil},
		{" CLEAR ", CommandClear, nil},
		{"1", CommandClear, nil},
		{"7", Command(7), nil},
		{"flush", 0, errors.ErrUnsupportedCommand},
		{"-1", 0, errors.ErrUnsupportedCommand},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			req := require.New(t)
			cmd, err := ParseCommand(tt.input)
			if tt.err != nil {
				req.ErrorIs(err, tt.err)
				return
			}
			req.NoError(err)
			req.Equal(tt.expected, cmd)
		})
	}
}

func TestCommand_String(t *testing.T) {
	req := require.New(t)
	req.Equal("clear", CommandClear.String())
	req.Equal("command(9)", Command(9).String())
}
