package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the settings file, relative to the process working directory.
const ConfigPath = "config/game.yaml"

// Environment variables that override the file.
const (
	EnvSeed       = "MAZE_SEED"
	EnvFullscreen = "MAZE_FULLSCREEN"
	EnvAssets     = "MAZE_ASSETS"
	EnvShowFPS    = "MAZE_SHOW_FPS"
)

// Window controls the game window. Width and height are ignored in fullscreen mode.
type Window struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	// FPS caps the simulation; frames arriving sooner than 1/FPS are skipped.
	FPS int `yaml:"fps"`
}

// Camera holds the perspective settings. FOV is vertical, in degrees.
type Camera struct {
	FOV  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// Config is everything the game reads at startup.
type Config struct {
	Window Window `yaml:"window"`
	Camera Camera `yaml:"camera"`
	// Assets is the directory holding shaders, textures, meshes and music.
	Assets string `yaml:"assets"`
	// Seed drives every random choice of a run. 0 picks a seed from the clock.
	Seed         int64   `yaml:"seed"`
	Music        string  `yaml:"music"`
	MusicVolume  float32 `yaml:"music_volume"`
	ShowFPS      bool    `yaml:"show_fps"`
	ShowMemAlloc bool    `yaml:"show_memalloc"`
	LogPath      string  `yaml:"log_path"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Window: Window{
			Title:  "The Maze",
			Width:  1280,
			Height: 720,
			FPS:    60,
		},
		Camera: Camera{
			FOV:  60,
			Near: 0.001,
			Far:  1000,
		},
		Assets:      "assets",
		Music:       "music.wav",
		MusicVolume: 1,
		LogPath:     "logs/maze.txt",
	}
}

// Load reads path and merges its non-empty values over Default, then applies the
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	default:
		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := copier.CopyWithOption(&cfg, file, copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
			return cfg, fmt.Errorf("merge %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvFullscreen); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFullscreen, err)
		}
		c.Window.Fullscreen = b
	}
	if v, ok := os.LookupEnv(EnvAssets); ok && v != "" {
		c.Assets = v
	}
	if v, ok := os.LookupEnv(EnvShowFPS); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvShowFPS, err)
		}
		c.ShowFPS = b
	}
	return nil
}

// Save writes c to path as yaml, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
