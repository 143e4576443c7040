package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/leaders"
	"github.com/fwojciec/leaders/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func dataset() leaders.Dataset {
	details := leaders.NewPersonalDetails()
	details.Set("Born", []string{"Joseph Robinette Biden Jr", "November 20 1942"})
	details.Set("Spouses", []string{"Neilia Hunter", "Jill Jacobs"})
	details.Set("Alma mater", []string{"University of Delaware"})

	return leaders.Dataset{
		"us": {{
			ID:              "Q6279",
			FirstName:       "Joe",
			LastName:        "Biden",
			WikipediaURL:    "https://en.wikipedia.org/wiki/Joe_Biden",
			FirstWikiPara:   "Joseph Robinette Biden Jr. (born November 20, 1942) is an American politician & lawyer.",
			PersonalDetails: details,
		}},
		"be": {},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		path    string
		want    fs.Format
		wantErr bool
	}{
		{name: "explicit json", format: "json", path: "out.yaml", want: fs.FormatJSON},
		{name: "explicit yaml", format: "YAML", path: "out.json", want: fs.FormatYAML},
		{name: "yml alias", format: "yml", want: fs.FormatYAML},
		{name: "yaml extension", path: "out/leaders.yml", want: fs.FormatYAML},
		{name: "defaults to json", path: "leaders.txt", want: fs.FormatJSON},
		{name: "unknown format", format: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.ParseFormat(tt.format, tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, leaders.EINVALID, leaders.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriter_WriteDataset(t *testing.T) {
	t.Parallel()

	t.Run("writes indented JSON keeping detail order", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "leaders.json")

		err := fs.NewWriter(path, fs.FormatJSON).WriteDataset(context.Background(), dataset())
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		content := string(data)
		assert.Contains(t, content, "\n  \"us\": [")
		assert.Contains(t, content, "politician & lawyer")
		assert.Less(t, strings.Index(content, `"Born"`), strings.Index(content, `"Spouses"`))
		assert.Less(t, strings.Index(content, `"Spouses"`), strings.Index(content, `"Alma mater"`))

		var got leaders.Dataset
		require.NoError(t, json.Unmarshal(data, &got))
		require.Len(t, got["us"], 1)
		assert.Equal(t, []string{"Born", "Spouses", "Alma mater"}, got["us"][0].PersonalDetails.Labels())
		assert.Empty(t, got["be"])
	})

	t.Run("writes YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "leaders.yaml")

		err := fs.NewWriter(path, fs.FormatYAML).WriteDataset(context.Background(), dataset())
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got leaders.Dataset
		require.NoError(t, yaml.Unmarshal(data, &got))
		require.Len(t, got["us"], 1)
		assert.Equal(t, "Q6279", got["us"][0].ID)
		assert.Equal(t, []string{"Born", "Spouses", "Alma mater"}, got["us"][0].PersonalDetails.Labels())
		spouses, _ := got["us"][0].PersonalDetails.Get("Spouses")
		assert.Equal(t, []string{"Neilia Hunter", "Jill Jacobs"}, spouses)
	})

	t.Run("replaces an existing file without leaving temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "leaders.json")
		require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

		err := fs.NewWriter(path, fs.FormatJSON).WriteDataset(context.Background(), dataset())
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "leaders.json", entries[0].Name())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEqual(t, "stale", string(data))
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "nested", "leaders.json")

		err := fs.NewWriter(path, fs.FormatJSON).WriteDataset(context.Background(), leaders.Dataset{})

		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("rejects unknown format without touching the file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "leaders.csv")

		err := fs.NewWriter(path, fs.Format("csv")).WriteDataset(context.Background(), dataset())

		require.Error(t, err)
		assert.Equal(t, leaders.EINVALID, leaders.ErrorCode(err))
		assert.NoFileExists(t, path)
	})

	t.Run("rejects empty path", func(t *testing.T) {
		t.Parallel()

		err := fs.NewWriter("", fs.FormatJSON).WriteDataset(context.Background(), dataset())

		require.Error(t, err)
		assert.Equal(t, leaders.EINVALID, leaders.ErrorCode(err))
	})
}
