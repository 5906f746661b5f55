// mgen is a headless CLI for composing phone screen textures.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/mgen/internal/background"
	"github.com/Faultbox/mgen/internal/compositor"
	"github.com/Faultbox/mgen/internal/config"
	"github.com/Faultbox/mgen/internal/export"
	"github.com/Faultbox/mgen/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "atlas":
		cmdAtlas(args)
	case "layout":
		cmdLayout(args)
	case "gradient":
		cmdGradient(args)
	case "presets", "ls":
		cmdPresets()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mgen - phone mockup texture tool

Usage:
  mgen <command> [options]

Commands:
  atlas <image> [-o out.png] [-size N]  Composite an image into a screen atlas
  layout <width> <height> [-size N]     Print where an image of that size lands
  gradient <id> [-o out.png]            Render a background gradient
  presets                               List background gradients

Options shared by atlas and layout:
  -config <file>  Load screen settings from a YAML config
  -v              Verbose logging

Examples:
  mgen atlas screenshot.png -o atlas.webp
  mgen layout 1920 1080
  mgen gradient umi -o umi.png`)
}

type common struct {
	configPath string
	size       int
	verbose    bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Config file")
	fs.IntVar(&c.size, "size", 0, "Atlas size (power of two, overrides config)")
	fs.BoolVar(&c.verbose, "v", false, "Verbose logging")
}

// load reads the config and initialises logging to stderr.
func (c *common) load() *config.Config {
	cfg, err := config.LoadFile(c.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if c.size > 0 {
		cfg.Screen.TextureSize = c.size
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	level := "warn"
	if c.verbose {
		level = "debug"
	}
	if err := logger.Init(level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// reorder moves flags after positional arguments to the front so
// "atlas in.png -o out.png" parses like "atlas -o out.png in.png".
func reorder(fs *flag.FlagSet, args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if len(a) > 1 && a[0] == '-' {
			flags = append(flags, a)
			name := a[1:]
			if name != "" && name[0] == '-' {
				name = name[1:]
			}
			if f := fs.Lookup(name); f != nil && i+1 < len(args) {
				if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); !ok || !bf.IsBoolFlag() {
					i++
					flags = append(flags, args[i])
				}
			}
			continue
		}
		positional = append(positional, a)
	}
	return append(flags, positional...)
}

func cmdAtlas(args []string) {
	fs := flag.NewFlagSet("atlas", flag.ExitOnError)
	var c common
	c.register(fs)
	out := fs.String("o", "atlas.png", "Output file (.png or .webp)")
	fs.Parse(reorder(fs, args))

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mgen atlas <image> [-o out.png] [-size N]")
		os.Exit(1)
	}
	cfg := c.load()
	defer logger.Sync()

	policy, err := cfg.UploadPolicy()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	img, err := policy.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := compositor.Composite(img, cfg.Screen.UV, cfg.CompositorOptions(logger.Named("compositor")))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := export.WriteFile(*out, res.Atlas); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("atlas written", zap.String("path", *out))
	b := img.Bounds()
	fmt.Printf("Source:  %dx%d\n", b.Dx(), b.Dy())
	printPlacement(res.Placement)
	fmt.Printf("Written: %s (%dx%d)\n", *out, cfg.Screen.TextureSize, cfg.Screen.TextureSize)
}

func cmdLayout(args []string) {
	fs := flag.NewFlagSet("layout", flag.ExitOnError)
	var c common
	c.register(fs)
	fs.Parse(reorder(fs, args))

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: mgen layout <width> <height> [-size N]")
		os.Exit(1)
	}
	w, errW := strconv.Atoi(fs.Arg(0))
	h, errH := strconv.Atoi(fs.Arg(1))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		fmt.Fprintln(os.Stderr, "Error: width and height must be positive integers")
		os.Exit(1)
	}
	cfg := c.load()
	defer logger.Sync()

	fmt.Printf("Source:  %dx%d\n", w, h)
	fmt.Printf("Atlas:   %d\n", cfg.Screen.TextureSize)
	printPlacement(compositor.Layout(w, h, cfg.Screen.UV, cfg.Screen.TextureSize))
}

func printPlacement(p compositor.Placement) {
	minX, minY, maxX, maxY := p.Bounds()
	mx, my := p.Margins()
	fmt.Printf("Region:  x=%.1f y=%.1f w=%.1f h=%.1f\n", p.Region.X, p.Region.Y, p.Region.W, p.Region.H)
	fmt.Printf("Scale:   %.4f (x %.4f, y %.4f)\n", p.Scale, p.ScaleX, p.ScaleY)
	fmt.Printf("Drawn:   %.1f x %.1f (image axes)\n", p.DrawW, p.DrawH)
	fmt.Printf("Box:     [%.1f,%.1f]-[%.1f,%.1f] in atlas\n", minX, minY, maxX, maxY)
	fmt.Printf("Margins: x=%.1f y=%.1f\n", mx, my)
}

func cmdGradient(args []string) {
	fs := flag.NewFlagSet("gradient", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default <id>.png)")
	fs.Parse(reorder(fs, args))

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mgen gradient <id> [-o out.png]")
		os.Exit(1)
	}
	p, ok := background.Lookup(fs.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown gradient: %s (see mgen presets)\n", fs.Arg(0))
		os.Exit(1)
	}
	if *out == "" {
		*out = p.ID + ".png"
	}

	img, err := background.Render(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := export.WriteFile(*out, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Written: %s (%dx%d)\n", *out, background.Width, background.Height)
}

func cmdPresets() {
	for _, p := range background.Presets() {
		fmt.Printf("  %-8s %-8s %s -> %s\n", p.ID, p.Name, p.Top, p.Bottom)
	}
}
