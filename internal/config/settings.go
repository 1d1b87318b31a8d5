package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

const EnvPrefix = "SPINFLIGHT"

// Settings are application-wide options, independent of any single run.
type Settings struct {
	DataDir   string
	LogLevel  string
	LogFormat string
	FrameSkip int
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("data_dir", filepath.Join(".", "runs"))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("frame_skip", 5)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// LoadSettings reads defaults, then path if given, then SPINFLIGHT_* variables.
func LoadSettings(path string) (*Settings, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	s := &Settings{
		DataDir:   v.GetString("data_dir"),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		FrameSkip: v.GetInt("frame_skip"),
	}
	if s.FrameSkip < 1 {
		return nil, fmt.Errorf("frame_skip must be at least 1, got %d", s.FrameSkip)
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("unknown log format: %s", s.LogFormat)
	}
	return s, nil
}
