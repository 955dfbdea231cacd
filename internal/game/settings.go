package game

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Settings are the presentation-side knobs read from an optional config file.
// Physics constants are compiled in (config.go); these only tune the shell
// around the simulation.
type Settings struct {
	WindowWidth  int     `mapstructure:"windowWidth"`
	WindowHeight int     `mapstructure:"windowHeight"`
	LogLevel     string  `mapstructure:"logLevel"`
	Seed         uint64  `mapstructure:"seed"` // 0 = seed from the clock
	AudioEnabled bool    `mapstructure:"audioEnabled"`
	AudioVolume  float64 `mapstructure:"audioVolume"`
	Camera       string  `mapstructure:"camera"` // "chase" or "overhead"
}

// DefaultSettings mirrors the viper defaults for when config loading fails
// outright.
func DefaultSettings() Settings {
	return Settings{
		WindowWidth:  WindowWidth,
		WindowHeight: WindowHeight,
		LogLevel:     "info",
		AudioEnabled: true,
		AudioVolume:  0.7,
		Camera:       "chase",
	}
}

// LoadSettings reads racer.cfg.json from configDir. A missing file is not an
// error (defaults apply); a malformed file is.
func LoadSettings(configDir string) (Settings, error) {
	viper.SetDefault("windowWidth", WindowWidth)
	viper.SetDefault("windowHeight", WindowHeight)
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("seed", 0)
	viper.SetDefault("audioEnabled", true)
	viper.SetDefault("audioVolume", 0.7)
	viper.SetDefault("camera", "chase")

	viper.SetConfigName("racer.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if s.WindowWidth <= 0 || s.WindowHeight <= 0 {
		return Settings{}, fmt.Errorf("invalid window size %dx%d", s.WindowWidth, s.WindowHeight)
	}
	s.AudioVolume = clampF(s.AudioVolume, 0, 1)
	return s, nil
}

// StartCameraMode maps the configured camera name to a mode, defaulting to
// chase for anything unrecognized.
func (s Settings) StartCameraMode() CameraMode {
	if s.Camera == "overhead" {
		return CameraOverhead
	}
	return CameraChase
}
