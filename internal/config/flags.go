package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile     = flag.String("logfile", "", "Write logs to file")
	flagWeld        = flag.Bool("weld", false, "Weld coincident vertices before import")
	flagWeldEpsilon = flag.Float64("weld-epsilon", 0, "Weld merge distance")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags(args []string) {
	_ = flag.CommandLine.Parse(args)
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagWeld {
		cfg.Import.Weld = true
	}
	if *flagWeldEpsilon > 0 {
		cfg.Import.WeldEpsilon = float32(*flagWeldEpsilon)
	}
}
