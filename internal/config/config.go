// Package config handles meshedit tool configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Logging LoggingConfig `yaml:"logging"`
}

// ImportConfig holds mesh import settings.
type ImportConfig struct {
	// Weld merges geometrically coincident render vertices before the mesh
	// is loaded into the topology kernel, so seams share edges.
	Weld bool `yaml:"weld"`

	// WeldEpsilon is the merge distance used when Weld is on.
	WeldEpsilon float32 `yaml:"weld_epsilon"`

	// FlipV mirrors the V texture coordinate on import and export, for
	// renderers with a top-left UV origin.
	FlipV bool `yaml:"flip_v"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Weld:        false,
			WeldEpsilon: 1e-4,
			FlipV:       false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
