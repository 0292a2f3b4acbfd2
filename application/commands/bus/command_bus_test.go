package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCommand struct {
	Value   string
	invalid bool
}

func (c testCommand) Validate() error {
	if c.invalid {
		return errors.New("bad command")
	}
	return nil
}

type otherCommand struct{}

func (c otherCommand) Validate() error { return nil }

func TestCommandBus(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches to the registered handler", func(t *testing.T) {
		b := NewCommandBus()
		var got testCommand
		require.NoError(t, b.Register(testCommand{}, CommandHandlerFunc(func(_ context.Context, cmd Command) error {
			got = cmd.(testCommand)
			return nil
		})))

		require.NoError(t, b.Send(ctx, testCommand{Value: "hello"}))
		assert.Equal(t, "hello", got.Value)
	})

	t.Run("validation failure short-circuits dispatch", func(t *testing.T) {
		b := NewCommandBus()
		called := false
		require.NoError(t, b.Register(testCommand{}, CommandHandlerFunc(func(_ context.Context, _ Command) error {
			called = true
			return nil
		})))

		err := b.Send(ctx, testCommand{invalid: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
		assert.False(t, called)
	})

	t.Run("unregistered command type is an error", func(t *testing.T) {
		b := NewCommandBus()

		err := b.Send(ctx, otherCommand{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no handler registered")
	})

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		b := NewCommandBus()
		handler := CommandHandlerFunc(func(_ context.Context, _ Command) error { return nil })

		require.NoError(t, b.Register(testCommand{}, handler))
		assert.Error(t, b.Register(testCommand{}, handler))
	})

	t.Run("handler errors propagate to the caller", func(t *testing.T) {
		b := NewCommandBus()
		want := errors.New("boom")
		require.NoError(t, b.Register(testCommand{}, CommandHandlerFunc(func(_ context.Context, _ Command) error {
			return want
		})))

		assert.ErrorIs(t, b.Send(ctx, testCommand{}), want)
	})
}
