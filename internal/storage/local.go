package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type LocalStorage struct{}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{}
}

func (s *LocalStorage) Open(path string) (*Video, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat video file: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}

	return &Video{
		ReadCloser: f,
		Name:       filepath.Base(path),
		Size:       info.Size(),
	}, nil
}

func (s *LocalStorage) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ListVideos returns the video files directly under dir, sorted by name.
func (s *LocalStorage) ListVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read video directory: %w", err)
	}

	var videos []string
	for _, entry := range entries {
		if entry.IsDir() || !isVideo(entry.Name()) {
			continue
		}
		videos = append(videos, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(videos)
	return videos, nil
}
