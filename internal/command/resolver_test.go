package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoSpec(delay time.Duration) Spec {
	return Spec{
		Kind:    "echo",
		Default: "default",
		Parse: func(_ context.Context, _ *Request, token string) (any, error) {
			time.Sleep(delay)
			if token == "bad" {
				return nil, nil
			}
			return token, nil
		},
		ErrMsg: func(token string) string { return "bad token: " + token },
	}
}

func TestResolveAll_PreservesPositionalOrder(t *testing.T) {
	// The first spec finishes last; results must still come back in input order.
	specs := []Spec{echoSpec(30 * time.Millisecond), echoSpec(0), echoSpec(0)}

	resolved, err := ResolveAll(context.Background(), testRequest(), []string{"a", "b", "c"}, specs)
	require.NoError(t, err)
	require.Len(t, resolved, 3)
	assert.Equal(t, "a", resolved[0].Value)
	assert.Equal(t, "b", resolved[1].Value)
	assert.Equal(t, "c", resolved[2].Value)
}

func TestResolveAll_MissingTokensFallBackToDefaults(t *testing.T) {
	specs := []Spec{echoSpec(0), echoSpec(0)}

	resolved, err := ResolveAll(context.Background(), testRequest(), []string{"a"}, specs)
	require.NoError(t, err)
	assert.Equal(t, "a", resolved[0].Value)
	assert.Equal(t, "default", resolved[1].Value)
}

func TestResolveAll_ErrorMessageUsesRawToken(t *testing.T) {
	specs := []Spec{echoSpec(0)}

	resolved, err := ResolveAll(context.Background(), testRequest(), []string{"bad"}, specs)
	require.NoError(t, err)
	assert.Nil(t, resolved[0].Value)
	assert.Equal(t, "bad token: bad", resolved[0].ErrMsg)
}

func TestResolveAll_HardFailureAborts(t *testing.T) {
	boom := errors.New("upstream down")
	specs := []Spec{
		echoSpec(0),
		{
			Kind:    "failing",
			Default: "x",
			Parse: func(context.Context, *Request, string) (any, error) {
				return nil, boom
			},
			ErrMsg: func(string) string { return "unused" },
		},
	}

	_, err := ResolveAll(context.Background(), testRequest(), []string{"a", "b"}, specs)
	assert.ErrorIs(t, err, boom)
}
