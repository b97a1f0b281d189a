package storage

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"
)

// FileStorage is the content store for generated QR artifacts.
type FileStorage interface {
	Save(name string, data []byte) error
	Get(name string) (io.ReadCloser, error)
	Delete(name string) error
	Exists(name string) bool
	List() ([]string, error)
	ModTime(name string) (time.Time, error)
}

type fileStorage struct {
	basePath string
}

func NewFileStorage(basePath string) FileStorage {
	return &fileStorage{basePath: basePath}
}

func (s *fileStorage) Save(name string, data []byte) error {
	fullPath := filepath.Join(s.basePath, name)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, bytes.NewReader(data))
	return err
}

func (s *fileStorage) Get(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.basePath, name))
}

func (s *fileStorage) Delete(name string) error {
	return os.Remove(filepath.Join(s.basePath, name))
}

func (s *fileStorage) ModTime(name string) (time.Time, error) {
	info, err := os.Stat(filepath.Join(s.basePath, name))
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

func (s *fileStorage) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.basePath, name))
	return !os.IsNotExist(err)
}

// List returns the names of all stored artifacts, non-recursively.
func (s *fileStorage) List() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
