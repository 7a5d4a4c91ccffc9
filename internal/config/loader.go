package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configDirName is the per-user directory under $HOME.
const configDirName = ".cookies"

// LoadCookies loads the board configuration. Fields missing from the file
// keep their default values.
// Search order: customPath -> ~/.cookies/configs/cookies.yaml -> ./configs/cookies.yaml -> embedded default
func LoadCookies(customPath string) (CookiesConfig, error) {
	cfg := DefaultCookiesConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths("cookies.yaml") {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultCookiesConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	if err := yaml.Unmarshal(defaultCookiesYAML, &cfg); err != nil {
		return DefaultCookiesConfig(), nil
	}
	return cfg, nil
}

// searchPaths lists the user and local locations for a config file.
func searchPaths(filename string) []string {
	var paths []string
	if p := userConfigPath(filename); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", filename))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDirName, "configs", filename)
}

// DataPath returns a path inside the per-user data directory (~/.cookies).
func DataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, configDirName, name)
}
