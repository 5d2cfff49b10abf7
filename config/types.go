package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Validator is implemented by bound structs that need checks beyond tags.
type Validator interface {
	Validate() error
}

type Config struct {
	instance *viper.Viper
	opts     Options
	files    []string

	mu        sync.RWMutex
	watchOnce sync.Once
	watcher   *fsnotify.Watcher
}

type Options struct {
	BasePath string
	FileName string
	FileType string

	// File loads exactly this file and skips the BasePath/FileName lookup.
	File string

	EnvPrefix string

	// Optional allows running on defaults and environment only.
	Optional bool

	WatchAble bool
	OnChange  func(e fsnotify.Event)
}
