package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagTexSize    = flag.Int("texsize", 0, "Screen atlas size (power of two)")
	flagGradient   = flag.String("gradient", "", "Background gradient preset")
	flagNoBG       = flag.Bool("no-background", false, "Start with a transparent background")
	flagExportDir  = flag.String("export-dir", "", "Directory for exported mockups")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagTexSize > 0 {
		cfg.Screen.TextureSize = *flagTexSize
	}
	if *flagGradient != "" {
		cfg.Background.Gradient = *flagGradient
	}
	if *flagNoBG {
		cfg.Background.Enabled = false
	}
	if *flagExportDir != "" {
		cfg.Export.Dir = *flagExportDir
	}
}
