package config

import (
	"os"
	"strings"
)

// ModeEnvKey selects the environment-specific configuration variants.
const ModeEnvKey = "RUCAPTCHA_ENV_MODE"

type Mode string

const (
	DevMode  Mode = "development"
	ProMode  Mode = "production"
	TestMode Mode = "test"
)

func ParseMode(env string) Mode {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod", "pro":
		return ProMode
	case "test", "testing":
		return TestMode
	default:
		return DevMode
	}
}

// CurrentMode reads ModeEnvKey on every call so tests can switch modes.
func CurrentMode() Mode {
	return ParseMode(os.Getenv(ModeEnvKey))
}

// modeFileSuffixes lists the file name suffixes loaded for each mode, in order.
func modeFileSuffixes(mode Mode) []string {
	switch mode {
	case ProMode:
		return []string{"pro", "prod", "production"}
	case TestMode:
		return []string{"test"}
	default:
		return []string{"dev", "development"}
	}
}
