package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDatasetState(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "dataset_state_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	tests := []struct {
		name     string
		filename string
		data     []byte
	}{
		{
			name:     "basic dataset load",
			filename: "mock_data.json",
			data:     []byte(`{"users": [{"user_id": 1, "name": "Ada"}], "foods": []}`),
		},
		{
			name:     "empty document",
			filename: "empty.json",
			data:     []byte(`{}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(tmpDir, tt.filename)

			// Create the test file
			err := os.WriteFile(filePath, tt.data, 0644)
			require.NoError(t, err)

			loadedData, err := NewFileDatasetState(filePath).Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.data, loadedData)
		})
	}

	t.Run("load nonexistent dataset", func(t *testing.T) {
		state := NewFileDatasetState(filepath.Join(tmpDir, "nonexistent.json"))
		_, err := state.Load(context.Background())
		assert.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestFilePreferenceLog(t *testing.T) {
	tests := []struct {
		name     string
		existing []byte
		want     []Preference
	}{
		{
			name: "absent log starts a new list",
			want: []Preference{{Item: "oatmeal", PreferenceType: "like", Notes: "mornings"}},
		},
		{
			name:     "existing entries are kept",
			existing: []byte(`[{"item":"soda","preference_type":"avoid","notes":""}]`),
			want: []Preference{
				{Item: "soda", PreferenceType: "avoid"},
				{Item: "oatmeal", PreferenceType: "like", Notes: "mornings"},
			},
		},
		{
			name:     "corrupt log is replaced",
			existing: []byte(`{not json`),
			want:     []Preference{{Item: "oatmeal", PreferenceType: "like", Notes: "mornings"}},
		},
		{
			name:     "non-list document is replaced",
			existing: []byte(`{"item":"soda"}`),
			want:     []Preference{{Item: "oatmeal", PreferenceType: "like", Notes: "mornings"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(t.TempDir(), "user_prefs.json")
			if tt.existing != nil {
				require.NoError(t, os.WriteFile(filePath, tt.existing, 0644))
			}

			log := NewFilePreferenceLog(filePath)
			location, err := log.Append(context.Background(), Preference{Item: "oatmeal", PreferenceType: "like", Notes: "mornings"})
			require.NoError(t, err)
			assert.Equal(t, filePath, location)

			b, err := os.ReadFile(filePath)
			require.NoError(t, err)
			var got []Preference
			require.NoError(t, json.Unmarshal(b, &got))
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unwritable path", func(t *testing.T) {
		log := NewFilePreferenceLog(filepath.Join(t.TempDir(), "missing", "user_prefs.json"))
		_, err := log.Append(context.Background(), Preference{Item: "tea"})
		assert.ErrorContains(t, err, "write preferences")
	})
}

func TestFilePreferenceLog_KeepsExistingEntries(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		want     string
	}{
		{
			name:     "entries with other field types",
			existing: `[{"item":"a","preference_type":"like","notes":5}]`,
			want:     `[{"item":"a","preference_type":"like","notes":5},{"item":"b","preference_type":"dislike","notes":""}]`,
		},
		{
			name:     "plain string entries",
			existing: `["legacy note"]`,
			want:     `["legacy note",{"item":"b","preference_type":"dislike","notes":""}]`,
		},
		{
			name:     "extra fields survive the rewrite",
			existing: `[{"item":"a","preference_type":"like","notes":"","ts":1}]`,
			want:     `[{"item":"a","preference_type":"like","notes":"","ts":1},{"item":"b","preference_type":"dislike","notes":""}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(t.TempDir(), "user_prefs.json")
			require.NoError(t, os.WriteFile(filePath, []byte(tt.existing), 0644))

			_, err := NewFilePreferenceLog(filePath).Append(context.Background(), Preference{Item: "b", PreferenceType: "dislike"})
			require.NoError(t, err)

			b, err := os.ReadFile(filePath)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestTestPreferenceLog(t *testing.T) {
	log := NewTestPreferenceLog(nil)
	_, err := log.Append(context.Background(), Preference{Item: "a"})
	require.NoError(t, err)
	_, err = log.Append(context.Background(), Preference{Item: "b"})
	require.NoError(t, err)
	assert.Equal(t, []Preference{{Item: "a"}, {Item: "b"}}, log.Records())

	_, err = NewTestPreferenceLogWithError().Append(context.Background(), Preference{Item: "a"})
	assert.Error(t, err)
}
