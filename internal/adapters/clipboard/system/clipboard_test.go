package system

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextDelegatesToWriter(t *testing.T) {
	t.Parallel()

	var got string
	c := &Clipboard{write: func(text string) error {
		got = text
		return nil
	}}

	require.NoError(t, c.WriteText(context.Background(), "#coffee"))
	assert.Equal(t, "#coffee", got)
}

func TestWriteTextReportsUnsupportedPlatform(t *testing.T) {
	t.Parallel()

	called := false
	c := &Clipboard{
		write:       func(string) error { called = true; return nil },
		unsupported: func() bool { return true },
	}

	require.ErrorIs(t, c.WriteText(context.Background(), "x"), ErrUnavailable)
	assert.False(t, called)
}

func TestWriteTextWrapsWriterError(t *testing.T) {
	t.Parallel()

	writeErr := errors.New("exec: \"xclip\": executable file not found in $PATH")
	c := &Clipboard{write: func(string) error { return writeErr }}

	err := c.WriteText(context.Background(), "x")
	require.ErrorIs(t, err, writeErr)
	assert.Contains(t, err.Error(), "write system clipboard")
}

func TestWriteTextSkipsWriteWhenContextAlreadyDone(t *testing.T) {
	t.Parallel()

	called := false
	c := &Clipboard{write: func(string) error { called = true; return nil }}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, c.WriteText(ctx, "x"), context.Canceled)
	assert.False(t, called)
}

func TestWriteTextReportsStartedWriteAfterContextEnds(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var got string
	c := &Clipboard{write: func(text string) error {
		cancel()
		got = text
		return nil
	}}

	require.NoError(t, c.WriteText(ctx, "#coffee"))
	assert.Equal(t, "#coffee", got)
}
