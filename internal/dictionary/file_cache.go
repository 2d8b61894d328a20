package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileCache stores one raw API response per word under rootDir.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (f *FileCache) filePath(word string) string {
	return filepath.Join(f.rootDir, strings.ReplaceAll(strings.ToLower(word), string(filepath.Separator), "_")+".json")
}

// cache returns the stored response of word, calling fetch and storing its result on a miss.
func (cache *FileCache) cache(word string, fetch func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(word)
	contents, err := os.ReadFile(localFilePath)
	if err == nil {
		return contents, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", localFilePath, err)
	}

	contents, err = fetch()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cache.rootDir, 0o755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll > %w", err)
	}
	if err := os.WriteFile(localFilePath, contents, 0o644); err != nil {
		return contents, fmt.Errorf("os.WriteFile > %w", err)
	}
	return contents, nil
}
