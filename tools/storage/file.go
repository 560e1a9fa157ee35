package storage

import (
	"context"
	"fmt"
	"os"
)

type FileDatasetState struct {
	FilePath string
}

func NewFileDatasetState(filePath string) *FileDatasetState {
	return &FileDatasetState{FilePath: filePath}
}

func (d *FileDatasetState) Load(ctx context.Context) ([]byte, error) {
	return os.ReadFile(d.FilePath)
}

// FilePreferenceLog rewrites the whole JSON list on every append. Last writer wins.
type FilePreferenceLog struct {
	FilePath string
}

func NewFilePreferenceLog(filePath string) *FilePreferenceLog {
	return &FilePreferenceLog{FilePath: filePath}
}

func (l *FilePreferenceLog) Append(ctx context.Context, p Preference) (string, error) {
	existing, err := os.ReadFile(l.FilePath)
	if err != nil {
		existing = nil
	}
	b, err := appendPreference(existing, p)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(l.FilePath, b, 0644); err != nil {
		return "", fmt.Errorf("write preferences: %w", err)
	}
	return l.FilePath, nil
}
