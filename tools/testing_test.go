package tools

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nutriguide/dataset"
	"nutriguide/tools/storage"
)

func sampleProvider() dataset.Provider {
	return dataset.NewLoadingProvider(storage.NewTestDatasetState(dataset.SampleDocument))
}

func newTestRegistry(t *testing.T) (*Registry, *storage.TestPreferenceLog) {
	t.Helper()
	prefs := storage.NewTestPreferenceLog(nil)
	registry, err := NewRegistry(sampleProvider(), prefs)
	require.NoError(t, err)
	return registry, prefs
}
