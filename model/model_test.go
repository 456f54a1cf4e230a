package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClientCannedResponse(t *testing.T) {
	m := NewMockClient("test")
	m.AddResponse("hello", "world")

	got, err := m.Invoke(context.Background(), "", "hello")
	require.NoError(t, err)
	assert.Equal(t, "world", got)
}

func TestMockClientFallback(t *testing.T) {
	m := NewMockClient("test")
	m.SetFallback("default")

	got, err := m.Invoke(context.Background(), "", "anything")
	require.NoError(t, err)
	assert.Equal(t, "default", got)
}

func TestMockClientCancelledContext(t *testing.T) {
	m := NewMockClient("test")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Invoke(ctx, "", "hello")
	assert.Error(t, err)
}

func TestScriptedClientSequence(t *testing.T) {
	s := NewScriptedClient("one", "two")

	first, err := s.Invoke(context.Background(), "", "x")
	require.NoError(t, err)
	second, err := s.Invoke(context.Background(), "", "y")
	require.NoError(t, err)
	third, err := s.Invoke(context.Background(), "", "z")
	require.NoError(t, err)

	assert.Equal(t, "one", first)
	assert.Equal(t, "two", second)
	assert.Equal(t, "two", third) // final entry repeats
	assert.Equal(t, 3, s.Calls())
}

func TestScriptedClientEmpty(t *testing.T) {
	s := NewScriptedClient()
	_, err := s.Invoke(context.Background(), "", "x")
	assert.Error(t, err)
}

func TestFailingClient(t *testing.T) {
	f := FailingClient{}
	_, err := f.Invoke(context.Background(), "", "x")
	assert.Error(t, err)
}
