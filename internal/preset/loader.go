package preset

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/yamlutil"
)

//go:embed presets/*.yaml
var presets embed.FS

// DefaultName is the preset used when the caller specifies nothing.
const DefaultName = "legal"

// Names returns the embedded preset names, sorted.
func Names() []string {
	entries, err := presets.ReadDir("presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Load returns an embedded preset by name.
func Load(name string) (*Config, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	data, err := presets.ReadFile("presets/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrPresetNotFound, name, strings.Join(Names(), ", "))
	}
	return parse(data)
}

// Default returns the default preset. Panics if the embedded file is
// broken, which is a build defect, not a runtime condition.
func Default() *Config {
	cfg, err := Load(DefaultName)
	if err != nil {
		panic("preset: embedded default preset is invalid: " + err.Error())
	}
	return cfg
}

// LoadFile parses a preset from a YAML file on disk.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, path)
		}
		return nil, fmt.Errorf("reading preset file: %w", err)
	}
	return parse(data)
}

// Resolve loads a preset from a name or a path. Names are looked up in the
// embedded set first, then as <name>.yaml/.yml in the current directory and
// the user config directory (~/.config/go-md2docx/).
func Resolve(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyName
	}

	if fileutil.IsFilePath(nameOrPath) {
		return LoadFile(nameOrPath)
	}

	if cfg, err := Load(nameOrPath); err == nil {
		return cfg, nil
	}

	path, err := searchConfigDirs(nameOrPath)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// searchConfigDirs looks for <name>.yaml or <name>.yml in the current
// directory, then the user config directory.
func searchConfigDirs(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-md2docx", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrPresetNotFound, strings.Join(triedPaths, ", "))
}

// parse unmarshals and validates preset YAML. Unknown keys are rejected.
func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPresetParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPresetParse, err)
	}
	return &cfg, nil
}
