package analysis

import (
	"github.com/chenBenjamin97/tennis-analyzer/pkg/court"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/shots"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/units"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/utils"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//Config holds every tunable of one analysis run
type Config struct {
	MiniCourt court.Options
	Shots     shots.Options
	SpeedUnit string
}

//DefaultConfig returns the configuration used when config.yaml sets nothing
func DefaultConfig() Config {
	return Config{
		MiniCourt: court.DefaultOptions(),
		Shots:     shots.DefaultOptions(),
		SpeedUnit: units.KMPH,
	}
}

//SetDefaults registers the analysis defaults in viper, config.yaml values override them
func SetDefaults() {
	viper.SetDefault("analysis.fps", utils.DefaultFPS)
	viper.SetDefault("analysis.min_shot_seconds", utils.DefaultMinShotSeconds)
	viper.SetDefault("analysis.smoothing_window", utils.DefaultSmoothingWindow)
	viper.SetDefault("analysis.speed_unit", units.KMPH)

	viper.SetDefault("minicourt.width", utils.MiniCourtWidth)
	viper.SetDefault("minicourt.height", utils.MiniCourtHeight)
	viper.SetDefault("minicourt.buffer", utils.MiniCourtBuffer)
	viper.SetDefault("minicourt.padding", utils.MiniCourtPadding)
}

//ConfigFromViper builds the analysis configuration from viper's current values
func ConfigFromViper() (Config, error) {
	cfg := Config{
		MiniCourt: court.Options{
			Width:   viper.GetInt("minicourt.width"),
			Height:  viper.GetInt("minicourt.height"),
			Buffer:  viper.GetInt("minicourt.buffer"),
			Padding: viper.GetInt("minicourt.padding"),
		},
		Shots: shots.Options{
			FPS:             viper.GetFloat64("analysis.fps"),
			MinShotSeconds:  viper.GetFloat64("analysis.min_shot_seconds"),
			SmoothingWindow: viper.GetInt("analysis.smoothing_window"),
		},
		SpeedUnit: viper.GetString("analysis.speed_unit"),
	}

	if !units.IsValid(cfg.SpeedUnit) {
		return Config{}, errors.Errorf("ConfigFromViper: Unknown speed unit '%s', expected one of %v", cfg.SpeedUnit, units.ValidUnits)
	}

	if cfg.Shots.FPS <= 0 || cfg.Shots.MinShotSeconds < 0 {
		return Config{}, errors.Wrapf(utils.ErrInvalidFrameInterval, "ConfigFromViper: fps %v, min shot seconds %v", cfg.Shots.FPS, cfg.Shots.MinShotSeconds)
	}

	return cfg, nil
}
