package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rojifi/rojifi-docs/internal/docs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunReturnsOutputAfterDelay(t *testing.T) {
	t.Parallel()

	r := New(20 * time.Millisecond)
	snippet := &docs.CodeSnippet{Language: "bash", Body: "curl", Runnable: true, Output: `{"ok":true}`}

	res, err := r.Run(context.Background(), snippet)
	require.NoError(t, err)
	require.Equal(t, `{"ok":true}`, res.Output)
	require.Equal(t, "bash", res.Language)
	require.GreaterOrEqual(t, res.Elapsed, 20*time.Millisecond)
}

func TestRunRejectsStaticSnippets(t *testing.T) {
	t.Parallel()

	r := New(time.Millisecond)

	_, err := r.Run(context.Background(), &docs.CodeSnippet{Language: "go", Body: "go get"})
	require.ErrorIs(t, err, ErrNotRunnable)

	_, err = r.Run(context.Background(), nil)
	require.ErrorIs(t, err, ErrNotRunnable)
}

func TestRunHonoursCancellation(t *testing.T) {
	t.Parallel()

	r := New(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := r.Run(ctx, &docs.CodeSnippet{Runnable: true, Output: "never"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Minute)
}

func TestNewDefaultsDelay(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultDelay, New(0).Delay())
	require.Equal(t, 800*time.Millisecond, DefaultDelay)
}
