package utils

import (
	"os"
	"path/filepath"
)

func Exists(path string) (isDir bool, exists bool, err error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return info.IsDir(), true, nil
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	isDir, exists, _ := Exists(path)
	return exists && !isDir
}

// WriteFile writes data to path, creating parent directories first.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
