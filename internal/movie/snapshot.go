package movie

import (
	"encoding/gob"
	"fmt"
	"os"
	"strings"
)

// SaveSnapshot serializes the whole movie to a binary snapshot for fast
// startup. The ".gob" extension is appended when missing.
func (m *Movie) SaveSnapshot(path string) (string, error) {
	if !strings.HasSuffix(path, ".gob") {
		path += ".gob"
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return "", fmt.Errorf("ошибка записи снапшота: %w", err)
	}
	return path, nil
}

// LoadSnapshot restores a movie previously written by SaveSnapshot.
func LoadSnapshot(path string) (*Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m Movie
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("ошибка чтения снапшота: %w", err)
	}
	m.loaded = true
	return &m, nil
}
