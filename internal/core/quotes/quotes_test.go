package quotes_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/concentria/internal/core/quotes"
)

func TestParse_SkipsCommentsAndBlanks(t *testing.T) {
	in := "# header\n\n  first  \n#second\nthird\n   \n"
	got, err := quotes.Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "third"}, got)
}

func TestLoad(t *testing.T) {
	t.Run("file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "quotes.txt")
		require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o644))

		got, err := quotes.Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("missing file uses the embedded list", func(t *testing.T) {
		got, err := quotes.Load(filepath.Join(t.TempDir(), "nope.txt"))
		require.NoError(t, err)
		assert.NotEmpty(t, got)
		for _, q := range got {
			assert.False(t, strings.HasPrefix(q, "#"))
		}
	})
}

func TestRotator_NeverRepeatsImmediately(t *testing.T) {
	// a source that always answers 0 would repeat forever without the guard
	r := quotes.NewRotatorWithSource([]string{"a", "b", "c"}, func(int) int { return 0 })

	prev := r.Next()
	for i := 0; i < 20; i++ {
		next := r.Next()
		assert.NotEqual(t, prev, next)
		prev = next
	}
}

func TestRotator_EdgeCases(t *testing.T) {
	assert.Equal(t, "", quotes.NewRotator(nil).Next())

	single := quotes.NewRotator([]string{"only"})
	assert.Equal(t, "only", single.Next())
	assert.Equal(t, "only", single.Next())

	r := quotes.NewRotator([]string{"x", "y"})
	for i := 0; i < 50; i++ {
		assert.Contains(t, []string{"x", "y"}, r.Next())
	}
}
