package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Defaults mirror the layout of a fresh checkout so the tool runs with no
// config file at all.
const (
	DefaultProfilesDir     = "./profiles"
	DefaultOutputDir       = "./output"
	DefaultPublishDir      = "./dist"
	DefaultTemplatePath    = "./templates/resume.tex.tmpl"
	DefaultExperienceStart = "2021-08-01"
	DefaultLaTeXCommand    = "pdflatex"
	DefaultLeftDelim       = "((("
	DefaultRightDelim      = ")))"
)

// epochLayout is the date format of experience_start.
const epochLayout = "2006-01-02"

// Config represents the application configuration.
type Config struct {
	ProfilesDir     string       `json:"profiles_dir"`
	OutputDir       string       `json:"output_dir"`
	PublishDir      string       `json:"publish_dir"`
	TemplatePath    string       `json:"template_path"`
	ExperienceStart string       `json:"experience_start"`
	LaTeX           LaTeXConfig  `json:"latex"`
	Delims          DelimsConfig `json:"delims"`
}

// LaTeXConfig holds compiler-related configuration.
type LaTeXConfig struct {
	Command string `json:"command"`
}

// DelimsConfig holds the template action delimiters. They must not collide
// with LaTeX's own brace syntax, which rules out the engine's usual {{ }}.
type DelimsConfig struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Load reads configuration from file with environment variable overrides.
// A missing config file is not an error: defaults cover everything, so the
// tool works out of the box against a fresh checkout.
func Load(configPath string) (cfg Config, err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return cfg, err
		}
		path = filepath.Join(homeDir, ".resume-press", "config.json")
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			err = errors.Wrapf(err, "failed to read config file: %s", path)
			return cfg, err
		}
		// No config file: defaults apply below.
		err = nil
	} else {
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	}

	// A .env in the working directory may supply overrides; absence is fine.
	_ = godotenv.Load()

	if templatePath := os.Getenv("RESUME_PRESS_TEMPLATE"); templatePath != "" {
		cfg.TemplatePath = templatePath
	}
	if publishDir := os.Getenv("RESUME_PRESS_PUBLISH_DIR"); publishDir != "" {
		cfg.PublishDir = publishDir
	}
	if command := os.Getenv("RESUME_PRESS_LATEX"); command != "" {
		cfg.LaTeX.Command = command
	}

	// Apply defaults and validate
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate applies defaults for unset fields and checks the epoch date.
func (c *Config) Validate() (err error) {
	if c.ProfilesDir == "" {
		c.ProfilesDir = DefaultProfilesDir
	}

	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}

	if c.PublishDir == "" {
		c.PublishDir = DefaultPublishDir
	}

	if c.TemplatePath == "" {
		c.TemplatePath = DefaultTemplatePath
	}

	if c.ExperienceStart == "" {
		c.ExperienceStart = DefaultExperienceStart
	}

	if c.LaTeX.Command == "" {
		c.LaTeX.Command = DefaultLaTeXCommand
	}

	if c.Delims.Left == "" {
		c.Delims.Left = DefaultLeftDelim
	}

	if c.Delims.Right == "" {
		c.Delims.Right = DefaultRightDelim
	}

	_, err = c.Epoch()
	if err != nil {
		return err
	}

	return err
}

// Epoch parses the experience_start date anchoring the computed
// years_of_experience field.
func (c *Config) Epoch() (epoch time.Time, err error) {
	epoch, err = time.Parse(epochLayout, c.ExperienceStart)
	if err != nil {
		err = errors.Wrapf(err, "invalid experience_start date: %s", c.ExperienceStart)
		return epoch, err
	}
	return epoch, err
}

// DefaultProfile returns the profile path used when no argument is given.
func (c *Config) DefaultProfile() (path string) {
	path = filepath.Join(c.ProfilesDir, "base.json")
	return path
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return err
		}
		path = filepath.Join(homeDir, ".resume-press", "config.json")
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		ProfilesDir:     DefaultProfilesDir,
		OutputDir:       DefaultOutputDir,
		PublishDir:      DefaultPublishDir,
		TemplatePath:    DefaultTemplatePath,
		ExperienceStart: DefaultExperienceStart,
		LaTeX: LaTeXConfig{
			Command: DefaultLaTeXCommand,
		},
		Delims: DelimsConfig{
			Left:  DefaultLeftDelim,
			Right: DefaultRightDelim,
		},
	}

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
