package sandbox

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_Success(t *testing.T) {
	res, err := Execute(context.Background(), Options{
		Program: "echo",
		Args:    []string{"hello"},
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "hello")
	assert.False(t, res.TimedOut)
	assert.False(t, res.OutputTruncated)
}

func TestExecute_NonZeroExit(t *testing.T) {
	res, err := Execute(context.Background(), Options{
		Program: "sh",
		Args:    []string{"-c", "exit 7"},
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, res.ExitCode)
	assert.False(t, res.TimedOut)
}

func TestExecute_Timeout(t *testing.T) {
	res, err := Execute(context.Background(), Options{
		Program: "sleep",
		Args:    []string{"5"},
		Timeout: 100 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.True(t, res.TimedOut)
	assert.NotEqual(t, 0, res.ExitCode)
}

func TestExecute_CancellationPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	_, err := Execute(ctx, Options{
		Program: "sleep",
		Args:    []string{"5"},
		Timeout: 10 * time.Second,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecute_LaunchFailureIsNotSuccess(t *testing.T) {
	res, err := Execute(context.Background(), Options{
		Program: "this-binary-does-not-exist-anywhere",
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)
	assert.NotEqual(t, 0, res.ExitCode)
	assert.True(t, strings.Contains(res.Stderr, "sandbox: failed to launch"))
}

func TestOutputTruncated_SurvivesSerialization(t *testing.T) {
	marker := "[OUTPUT TRUNCATED - exceeded 10M char limit]"
	assert.True(t, OutputTruncated("some output..."+marker))
	assert.False(t, OutputTruncated("plain output"))
}
