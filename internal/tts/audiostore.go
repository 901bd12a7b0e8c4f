package tts

import (
	"fmt"
	"os"
	"path/filepath"

	"newswave/internal/core"
)

// AudioStore persists synthesized audio and returns a stable reference for
// the script record.
type AudioStore interface {
	Save(category core.Category, date string, audio []byte) (string, error)
}

// FileAudioStore writes audio files under a base directory, one file per
// category and date.
type FileAudioStore struct {
	baseDir string
}

// NewFileAudioStore creates a filesystem audio store rooted at baseDir.
func NewFileAudioStore(baseDir string) *FileAudioStore {
	if baseDir == "" {
		baseDir = "audio"
	}
	return &FileAudioStore{baseDir: baseDir}
}

// Save writes the audio as <baseDir>/<date>/<category>.mp3 and returns that
// path. Re-saving the same category and date overwrites.
func (s *FileAudioStore) Save(category core.Category, date string, audio []byte) (string, error) {
	dir := filepath.Join(s.baseDir, date)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}

	path := filepath.Join(dir, category.Key+".mp3")
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	return path, nil
}

// MemoryAudioStore keeps audio in memory for tests.
type MemoryAudioStore struct {
	Saved map[string][]byte
	Err   error
}

// NewMemoryAudioStore creates an empty in-memory store.
func NewMemoryAudioStore() *MemoryAudioStore {
	return &MemoryAudioStore{Saved: make(map[string][]byte)}
}

// Save records the audio under "<date>/<category>.mp3".
func (s *MemoryAudioStore) Save(category core.Category, date string, audio []byte) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	ref := date + "/" + category.Key + ".mp3"
	s.Saved[ref] = audio
	return ref, nil
}
