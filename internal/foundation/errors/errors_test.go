package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := ConfigError("duplicate sidebar category").
			WithContext("category", "Tools").
			Build()

		require.Equal(t, CategoryConfig, err.Category())
		require.Equal(t, SeverityFatal, err.Severity())
		require.Equal(t, "[config:fatal] duplicate sidebar category", err.Error())

		label, ok := err.Context().GetString("category")
		require.True(t, ok)
		require.Equal(t, "Tools", label)
	})

	t.Run("Wrapped errors unwrap", func(t *testing.T) {
		cause := stderrors.New("permission denied")
		err := WrapError(cause, CategoryFileSystem, "reading config").Build()

		require.ErrorIs(t, err, cause)
		require.Contains(t, err.Error(), "permission denied")
	})

	t.Run("Classification survives fmt wrapping", func(t *testing.T) {
		inner := ConfigError("empty category").Build()
		wrapped := fmt.Errorf("loading site: %w", inner)

		require.True(t, IsStructural(wrapped))
		require.True(t, HasCategory(wrapped, CategoryConfig))
		require.Equal(t, CategoryConfig, GetCategory(wrapped))
	})

	t.Run("Non-fatal config errors are not structural", func(t *testing.T) {
		err := NewError(CategoryConfig, "odd option").Warning().Build()
		require.False(t, IsStructural(err))
		require.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	})
}

func TestErrorContextMerge(t *testing.T) {
	a := ErrorContext{"file": "a.yaml", "line": 3}
	b := ErrorContext{"line": 7}

	merged := a.Merge(b)
	require.Equal(t, 7, merged["line"])
	require.Equal(t, "a.yaml", merged["file"])
	require.Equal(t, 3, a["line"])

	var empty ErrorContext
	require.Equal(t, b, empty.Merge(b))
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("issues found").Build(), 2},
		{"validation warning", ValidationError("warnings found").Warning().Build(), 1},
		{"config", ConfigError("bad config").Build(), 7},
		{"git", GitError("no origin").Build(), 8},
		{"content", ContentError("unreadable").Build(), 11},
		{"internal", InternalError("boom").Build(), 10},
		{"plain", stderrors.New("plain"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	code := -1
	adapter := NewCLIErrorAdapter(false, nil)
	adapter.out = &out
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("duplicate sidebar category").WithContext("category", "Tools").Build())

	require.Equal(t, 7, code)
	require.Equal(t, "Error: duplicate sidebar category category=Tools\n", out.String())
}
