package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
	"github.com/comitanigiacomo/concentria/internal/core/services"
)

func TestCSVEntryRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "items.csv")
	repo := NewCSVEntryRepository(path)

	entries := []domain.SessionEntry{
		{Date: "05-01-25", Clock: "09:00", Title: "Math, algebra", Duration: 60, Note: "said \"hi\"", Hardness: 6},
		{Date: "05-01-25", Clock: "", Title: "Read", Duration: 0, Note: "multi\nline", Hardness: 0},
		{Date: "06-01-25", Clock: "22:15", Title: "untitled", Duration: 15, Note: "", Hardness: 10},
	}

	require.NoError(t, repo.Save(ctx, entries))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "date,clock,title,duration,note,hardness\n"))

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "temporary files are cleaned up")
}

func TestCSVEntryRepository_StoredEntriesSurviveReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "items.csv")

	svc := services.NewEntryService(NewCSVEntryRepository(path))
	require.NoError(t, svc.LoadAll(ctx))

	for _, in := range []domain.SessionEntry{
		{Date: "2025-01-05", Clock: "09:00", Title: "Math", Duration: 30, Note: "line1\r\nline2", Hardness: 4},
		{Date: "05/01/2025", Clock: "10:00", Title: " Read ", Duration: 15, Note: "  padded  "},
	} {
		_, err := svc.Add(ctx, in)
		require.NoError(t, err)
	}

	reloaded := services.NewEntryService(NewCSVEntryRepository(path))
	require.NoError(t, reloaded.LoadAll(ctx))
	assert.Equal(t, svc.Entries(), reloaded.Entries())
	assert.Equal(t, "line1\nline2", reloaded.Entries()[0].Note)
	assert.Equal(t, []string{"05-01-25"}, reloaded.Days())
}

func TestCSVEntryRepository_MissingFile(t *testing.T) {
	repo := NewCSVEntryRepository(filepath.Join(t.TempDir(), "none.csv"))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCSVEntryRepository_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewCSVEntryRepository(filepath.Join(t.TempDir(), "items.csv"))

	require.NoError(t, repo.Save(ctx, []domain.SessionEntry{{Date: "01-01-25", Title: "A", Duration: 1}}))
	require.NoError(t, repo.Save(ctx, []domain.SessionEntry{{Date: "02-01-25", Title: "B", Duration: 2}}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Title)
}

func TestDecodeCSV(t *testing.T) {
	t.Run("columns are found by name", func(t *testing.T) {
		in := "date,clock,title,duration,hardness,note\n05-01-25,09:00,Math,60,7,hello\n"
		got, skipped, err := DecodeCSV(strings.NewReader(in))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		require.Len(t, got, 1)
		assert.Equal(t, 7, got[0].Hardness)
		assert.Equal(t, "hello", got[0].Note)
	})

	t.Run("missing columns default to empty", func(t *testing.T) {
		in := "date,title,duration\n05-01-25,Math,45\n"
		got, _, err := DecodeCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "", got[0].Clock)
		assert.Equal(t, 0, got[0].Hardness)
	})

	t.Run("bad values are coerced and dateless rows skipped", func(t *testing.T) {
		in := "date,clock,title,duration,note,hardness\n" +
			"05-01-25,09:00,A,abc,,x\n" +
			",09:00,B,10,,5\n" +
			"05-01-25,10:00,C,-4,,3\n" +
			"05-01-25,11:00,D\n"
		got, skipped, err := DecodeCSV(strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, 1, skipped)
		require.Len(t, got, 3)
		assert.Equal(t, 0, got[0].Duration)
		assert.Equal(t, 0, got[0].Hardness)
		assert.Equal(t, 0, got[1].Duration)
		assert.Equal(t, "D", got[2].Title)
	})

	t.Run("malformed quotes skip only that row", func(t *testing.T) {
		in := "date,clock,title,duration,note,hardness\n" +
			"05-01-25,09:00,\"bro\"ken,10,,5\n" +
			"06-01-25,09:00,Fine,10,,5\n"
		got, skipped, err := DecodeCSV(strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, 1, skipped)
		require.Len(t, got, 1)
		assert.Equal(t, "Fine", got[0].Title)
	})

	t.Run("empty input", func(t *testing.T) {
		got, skipped, err := DecodeCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		assert.Empty(t, got)
	})

	t.Run("byte order mark on the header", func(t *testing.T) {
		in := "\ufeffdate,title,duration\n05-01-25,Math,45\n"
		got, _, err := DecodeCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "05-01-25", got[0].Date)
	})
}
