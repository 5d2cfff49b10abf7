package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/fsnotify/fsnotify"
	apperrors "github.com/leeforge/rucaptcha/errors"
	"github.com/leeforge/rucaptcha/logging"
	"github.com/leeforge/rucaptcha/utils"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// PathEnvKey overrides the default configuration directory.
const PathEnvKey = "RUCAPTCHA_CONFIG_PATH"

func DefaultOptions() Options {
	basePath := os.Getenv(PathEnvKey)
	if basePath == "" {
		basePath = "."
	}

	return Options{
		BasePath:  basePath,
		FileName:  "captcha",
		FileType:  "yaml",
		EnvPrefix: "RUCAPTCHA",
		Optional:  true,
		WatchAble: false,
		OnChange:  nil,
	}
}

func New(optsArr ...Options) (*Config, error) {
	var opts Options
	if len(optsArr) == 0 {
		opts = DefaultOptions()
	} else {
		opts = optsArr[0]
	}
	if opts.FileType == "" {
		opts.FileType = "yaml"
	}

	instance, files, err := createViper(opts)
	if err != nil {
		return nil, err
	}

	return &Config{
		instance: instance,
		opts:     opts,
		files:    files,
	}, nil
}

// Files returns the configuration files that were merged, in load order.
func (c *Config) Files() []string {
	return append([]string(nil), c.files...)
}

// Bind resets instance, applies its default tags, overlays files and
// environment, then validates. instance must be a pointer to a struct.
func (c *Config) Bind(instance any) error {
	if c == nil || c.instance == nil {
		return apperrors.NewInternal("config instance is nil")
	}
	if err := checkTarget(instance); err != nil {
		return err
	}

	c.mu.Lock()
	err := bind(c.instance, instance)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	if c.opts.WatchAble {
		var watchErr error
		c.watchOnce.Do(func() {
			watchErr = c.watch(instance)
		})
		if watchErr != nil {
			return watchErr
		}
	}

	return nil
}

func bind(v *viper.Viper, instance any) error {
	target := reflect.ValueOf(instance).Elem()
	target.Set(reflect.Zero(target.Type()))

	if err := defaults.Set(instance); err != nil {
		return apperrors.WrapWithType(err, apperrors.ErrorTypeInternal, "set config defaults")
	}

	// Registering every key lets environment variables reach fields that
	// no file mentions.
	registerKeys(v, "", target)

	if err := v.Unmarshal(instance); err != nil {
		return apperrors.WrapWithType(err, apperrors.ErrorTypeInvalidConfiguration, "unmarshal config")
	}

	return ValidateStruct(instance)
}

func checkTarget(instance any) error {
	if instance == nil {
		return apperrors.NewInternal("config target is nil")
	}
	val := reflect.ValueOf(instance)
	if val.Kind() != reflect.Ptr || val.IsNil() || val.Elem().Kind() != reflect.Struct {
		return apperrors.NewInternal(fmt.Sprintf("config target must be a pointer to a struct, got %T", instance))
	}
	return nil
}

// registerKeys sets a viper default for every mapstructure-tagged leaf field.
func registerKeys(v *viper.Viper, prefix string, val reflect.Value) {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		fv := val.Field(i)
		if fv.Kind() == reflect.Struct && fv.Type().PkgPath() != "time" {
			registerKeys(v, key, fv)
			continue
		}
		v.SetDefault(key, fv.Interface())
	}
}

// watch reloads the merged files into instance whenever one of them is
// written, then calls OnChange.
func (c *Config) watch(instance any) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.WrapWithType(err, apperrors.ErrorTypeInternal, "create config watcher")
	}

	dirs := make(map[string]struct{})
	for _, file := range c.files {
		dirs[filepath.Dir(file)] = struct{}{}
	}
	if len(dirs) == 0 {
		dirs[c.opts.BasePath] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return apperrors.WrapWithType(err, apperrors.ErrorTypeInternal, "watch config directory "+dir)
		}
	}
	c.watcher = watcher

	go func() {
		for {
			select {
			case e, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
					continue
				}
				if !c.isCandidate(e.Name) {
					continue
				}
				c.reload(e, instance)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn("config watch error", zap.Error(err))
			}
		}
	}()

	return nil
}

func (c *Config) isCandidate(name string) bool {
	name = filepath.Clean(name)
	for _, candidate := range candidateFilePaths(c.opts) {
		if filepath.Clean(candidate) == name {
			return true
		}
	}
	return false
}

func (c *Config) reload(e fsnotify.Event, instance any) {
	c.mu.Lock()
	v, files, err := createViper(c.opts)
	if err == nil {
		err = bind(v, instance)
	}
	if err != nil {
		c.mu.Unlock()
		logging.Warn("config reload failed", zap.String("file", e.Name), zap.Error(err))
		return
	}
	c.instance = v
	c.files = files
	c.mu.Unlock()

	logging.Info("config reloaded", zap.String("file", e.Name))
	if c.opts.OnChange != nil {
		c.opts.OnChange(e)
	}
}

// Close stops the file watcher, if any.
func (c *Config) Close() error {
	if c.watcher == nil {
		return nil
	}
	return c.watcher.Close()
}

// Export writes the merged settings to path; the extension picks the format.
func (c *Config) Export(path string) error {
	if path == "" {
		return apperrors.NewInvalidConfiguration("path", path, "export path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return apperrors.WrapWithType(err, apperrors.ErrorTypeInternal, "create directory "+dir)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if err := c.instance.WriteConfigAs(path); err != nil {
		return apperrors.WrapWithType(err, apperrors.ErrorTypeInternal, "write config to "+path)
	}

	return nil
}

func (c *Config) Get(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.instance.Get(key)
}

func (c *Config) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.instance.Set(key, value)
}

func createViper(opts Options) (*viper.Viper, []string, error) {
	configPaths, err := configFilePaths(opts)
	if err != nil {
		return nil, nil, err
	}

	v := viper.New()
	v.SetConfigType(opts.FileType)

	for _, configPath := range configPaths {
		tempV := viper.New()
		tempV.SetConfigFile(configPath)
		if err := tempV.ReadInConfig(); err != nil {
			return nil, nil, apperrors.WrapWithType(err, apperrors.ErrorTypeInvalidConfiguration, "read config file "+configPath)
		}

		for _, key := range tempV.AllKeys() {
			v.Set(key, tempV.Get(key))
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
	}
	v.AutomaticEnv()

	// Environment variables win over file values
	applyEnvOverrides(v, opts.EnvPrefix)

	return v, configPaths, nil
}

// applyEnvOverrides checks all config keys and overrides with environment variables if they exist.
func applyEnvOverrides(v *viper.Viper, envPrefix string) {
	replacer := strings.NewReplacer(".", "_")

	for _, key := range v.AllKeys() {
		// captcha.image.width -> RUCAPTCHA_CAPTCHA_IMAGE_WIDTH
		envKey := strings.ToUpper(replacer.Replace(key))
		if envPrefix != "" {
			envKey = envPrefix + "_" + envKey
		}

		if envValue := os.Getenv(envKey); envValue != "" {
			v.Set(key, envValue)
		}
	}
}

func configFilePaths(opts Options) ([]string, error) {
	if opts.File != "" {
		if !utils.IsFile(opts.File) {
			return nil, apperrors.NewInvalidConfiguration("config", opts.File, "file does not exist")
		}
		return []string{opts.File}, nil
	}

	var configFiles []string
	for _, file := range candidateFilePaths(opts) {
		if utils.IsFile(file) {
			configFiles = append(configFiles, file)
		}
	}

	if len(configFiles) == 0 && !opts.Optional {
		return nil, apperrors.NewInvalidConfiguration("config", opts.BasePath, "no configuration files found")
	}
	return configFiles, nil
}

// candidateFilePaths lists every file that may contribute, lowest priority
// first: base, base.local, then each mode variant and its .local.
func candidateFilePaths(opts Options) []string {
	if opts.File != "" {
		return []string{opts.File}
	}

	fileNames := []string{
		opts.FileName,
		fmt.Sprintf("%s.local", opts.FileName),
	}
	for _, suffix := range modeFileSuffixes(CurrentMode()) {
		fileNames = append(fileNames,
			fmt.Sprintf("%s.%s", opts.FileName, suffix),
			fmt.Sprintf("%s.%s.local", opts.FileName, suffix),
		)
	}

	paths := make([]string, 0, len(fileNames))
	for _, fileName := range fileNames {
		paths = append(paths, filepath.Join(opts.BasePath, fmt.Sprintf("%s.%s", fileName, opts.FileType)))
	}
	return paths
}
