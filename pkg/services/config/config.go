package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Speech selects how narration and dictation bind to the platform.
// Engine "command" drives a local TTS binary, "online" uses the
// network synthesizer, "off" disables narration.
type Speech struct {
	Engine        string `mapstructure:"engine"`
	Command       string `mapstructure:"command"`
	ListenCommand string `mapstructure:"listen_command"`
	Language      string `mapstructure:"language"`
	CacheDir      string `mapstructure:"cache_dir"`
}

type Config struct {
	ServiceURL string `mapstructure:"service_url"`
	ExportDir  string `mapstructure:"export_dir"`
	Speech     Speech `mapstructure:"speech"`
}

// LoadConfig reads the client configuration. With an empty path only
// defaults and DATABRIEF_* environment overrides apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("service_url", "http://localhost:8000")
	v.SetDefault("export_dir", ".")
	v.SetDefault("speech.engine", "command")
	v.SetDefault("speech.language", "en")
	v.SetDefault("speech.cache_dir", ".databrief-audio")

	v.SetEnvPrefix("DATABRIEF")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
