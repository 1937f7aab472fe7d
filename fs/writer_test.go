package fs_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pjanik/cardscrape"
	"github.com/pjanik/cardscrape/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []cardscrape.Record {
	return []cardscrape.Record{
		{Name: "Acme Corp", Email: "a@acme.com"},
		{Name: "Beta LLC", Email: "N/A"},
		{Name: "Zażółć Sp. z o.o.", Email: "biuro@zażółć.example"},
	}
}

func TestEnsureExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "leads.csv", fs.EnsureExtension("leads.csv", "csv"))
	assert.Equal(t, "leads.csv", fs.EnsureExtension("leads.txt", "csv"))
	assert.Equal(t, "leads.json", fs.EnsureExtension("leads", "json"))
	assert.Equal(t, "out/leads.CSV", fs.EnsureExtension("out/leads.CSV", "csv"))
}

func TestCSVWriter_WriteRecords(t *testing.T) {
	t.Parallel()

	t.Run("round-trips records through CSV", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "leads.csv")
		w := fs.NewCSVWriter(path)

		require.NoError(t, w.WriteRecords(context.Background(), sampleRecords()))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, []string{"Name", "Email"}, rows[0])

		for i, r := range sampleRecords() {
			assert.Equal(t, []string{r.Name, r.Email}, rows[i+1])
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "leads.csv")
		w := fs.NewCSVWriter(path)

		require.NoError(t, w.WriteRecords(context.Background(), sampleRecords()))

		_, err := os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("writes header only for empty input", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.csv")
		w := fs.NewCSVWriter(path)

		require.NoError(t, w.WriteRecords(context.Background(), nil))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Name,Email\n", string(content))
	})
}

func TestJSONWriter_WriteRecords(t *testing.T) {
	t.Parallel()

	t.Run("round-trips records through JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "leads.json")
		w := fs.NewJSONWriter(path)

		require.NoError(t, w.WriteRecords(context.Background(), sampleRecords()))

		content, err := os.ReadFile(path)
		require.NoError(t, err)

		var got []cardscrape.Record
		require.NoError(t, json.Unmarshal(content, &got))
		assert.Equal(t, sampleRecords(), got)
	})

	t.Run("preserves non-ASCII text", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "leads.json")
		w := fs.NewJSONWriter(path)

		require.NoError(t, w.WriteRecords(context.Background(), sampleRecords()))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Zażółć Sp. z o.o.")
	})

	t.Run("writes an empty array for empty input", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.json")
		w := fs.NewJSONWriter(path)

		require.NoError(t, w.WriteRecords(context.Background(), nil))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(content))
	})
}
