package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "fruitmatch.yaml"

// Load reads the configuration and validates it.
// Search order: customPath -> ~/.fruitmatch/configs/fruitmatch.yaml ->
// ./configs/fruitmatch.yaml -> embedded default.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped when missing or malformed.
func Load(customPath string) (Match3Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Match3Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Match3Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, Validate(cfg)
	}

	candidates := []string{userConfigPath(configFile), filepath.Join("configs", configFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, Validate(cfg)
		}
	}

	cfg, err := parse(defaultMatch3YAML)
	if err != nil {
		return DefaultMatch3Config(), nil
	}
	return cfg, Validate(cfg)
}

// LoadWithPreset is Load followed by ApplyPreset and a second validation.
func LoadWithPreset(customPath string, preset DifficultyPreset) (Match3Config, error) {
	cfg, err := Load(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyPreset(&cfg, preset)
	return cfg, Validate(cfg)
}

// parse decodes YAML on top of the built-in defaults, so partial files only
// override the keys they set.
func parse(data []byte) (Match3Config, error) {
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Match3Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fruitmatch", "configs", filename)
}
