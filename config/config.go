// Package config loads pipeline settings from an optional YAML file with
// environment variable overrides. Every key has a default, so a missing
// config file yields a fully usable configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	Analysis      AnalysisConfig      `mapstructure:"analysis"`
	Summarization SummarizationConfig `mapstructure:"summarization"`
	Visuals       VisualsConfig       `mapstructure:"visuals"`
	Slides        SlidesConfig        `mapstructure:"slides"`
	Video         VideoConfig         `mapstructure:"video"`
	Report        ReportConfig        `mapstructure:"report"`
	OpenAIAPIKey  string              `mapstructure:"OPENAI_API_KEY"`
}

type AnalysisConfig struct {
	MaxSlides int `mapstructure:"max_slides"`
}

type SummarizationConfig struct {
	MaxTitleWords   int `mapstructure:"max_title_words"`
	MaxBulletWords  int `mapstructure:"max_bullet_words"`
	MaxSpeakerWords int `mapstructure:"max_speaker_words"`
	BulletCount     int `mapstructure:"bullet_count"`
}

type VisualsConfig struct {
	Strategy    string `mapstructure:"strategy"`
	ImageWidth  int    `mapstructure:"image_width"`
	ImageHeight int    `mapstructure:"image_height"`
}

type SlidesConfig struct {
	AspectRatio string `mapstructure:"aspect_ratio"`
	Theme       string `mapstructure:"theme"`
}

type VideoConfig struct {
	OutputFormat     string           `mapstructure:"output_format"`
	FPS              int              `mapstructure:"fps"`
	Resolution       ResolutionConfig `mapstructure:"resolution"`
	MinSlideDuration float64          `mapstructure:"min_slide_duration"`
	MaxSlideDuration float64          `mapstructure:"max_slide_duration"`
	KenBurnsEnabled  bool             `mapstructure:"ken_burns_enabled"`
	TTSRate          int              `mapstructure:"tts_rate"`
	TTSEngine        string           `mapstructure:"tts_engine"`
	TTSVoice         string           `mapstructure:"tts_voice"`
}

type ResolutionConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type ReportConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from configPath. An empty path or a missing file
// is fine: defaults apply, and environment variables still override.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	_ = v.BindEnv("OPENAI_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.max_slides", 10)

	v.SetDefault("summarization.max_title_words", 20)
	v.SetDefault("summarization.max_bullet_words", 15)
	v.SetDefault("summarization.max_speaker_words", 25)
	v.SetDefault("summarization.bullet_count", 2)

	v.SetDefault("visuals.strategy", "simple_generation")
	v.SetDefault("visuals.image_width", 800)
	v.SetDefault("visuals.image_height", 600)

	v.SetDefault("slides.aspect_ratio", "16:9")
	v.SetDefault("slides.theme", "modern")

	v.SetDefault("video.output_format", "mp4")
	v.SetDefault("video.fps", 30)
	v.SetDefault("video.resolution.width", 1920)
	v.SetDefault("video.resolution.height", 1080)
	v.SetDefault("video.min_slide_duration", 5.0)
	v.SetDefault("video.max_slide_duration", 12.0)
	v.SetDefault("video.ken_burns_enabled", true)
	v.SetDefault("video.tts_rate", 150)
	v.SetDefault("video.tts_engine", "espeak")
	v.SetDefault("video.tts_voice", "alloy")

	v.SetDefault("report.enabled", false)
}
