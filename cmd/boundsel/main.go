package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"boundsel/internal/config"
	"boundsel/internal/geom"
	"boundsel/internal/tui"
)

func main() {
	var previewSrc, coordsPath, xName, yName, cfgPath, logPath string
	var printScene bool

	flag.StringVar(&previewSrc, "preview", "", "preview image: path, http(s) URL or data URI")
	flag.StringVar(&coordsPath, "coords", "", "scene or coordinate file (.json or .csv)")
	flag.StringVar(&xName, "x", "", "coordinate mapped to the horizontal axis")
	flag.StringVar(&yName, "y", "", "coordinate mapped to the vertical axis")
	flag.StringVar(&cfgPath, "config", "", "config file (default "+config.GetConfigPath()+")")
	flag.StringVar(&logPath, "log", "", "write logs to this file (DEBUG=1 uses debug.log)")
	flag.BoolVar(&printScene, "print", false, "print the final scene as JSON on exit")
	flag.Parse()

	if logPath == "" && os.Getenv("DEBUG") != "" {
		logPath = "debug.log"
	}
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "boundsel")
		if err != nil {
			fatalf("log: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}

	if coordsPath == "" && flag.NArg() > 0 {
		coordsPath = flag.Arg(0)
	}
	var scene geom.Scene
	if coordsPath != "" {
		scene, err = geom.LoadScene(coordsPath)
		if err != nil {
			fatalf("coords: %v", err)
		}
		if scene.Preview != "" && !isRemote(scene.Preview) && !filepath.IsAbs(scene.Preview) {
			scene.Preview = filepath.Join(filepath.Dir(coordsPath), scene.Preview)
		}
	}
	if previewSrc != "" {
		scene.Preview = previewSrc
	}
	if xName != "" {
		scene.Axes.X = xName
	}
	if yName != "" {
		scene.Axes.Y = yName
	}
	log.Printf("start preview=%q axes=%+v coordinates=%d", scene.Preview, scene.Axes, len(scene.Coordinates))

	m := tui.NewWithScene(cfg, scene)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		fatalf("%v", err)
	}
	if fm, ok := final.(tui.Model); ok && printScene {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fm.Scene()); err != nil {
			fatalf("%v", err)
		}
	}
}

// loadConfig reads an explicit config file, or the default one when present.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = config.GetConfigPath()
	}
	cfg := config.Default()
	if _, err := os.Stat(path); err == nil || explicit {
		cfg, err = config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func isRemote(src string) bool {
	for _, p := range []string{"http://", "https://", "data:"} {
		if strings.HasPrefix(src, p) {
			return true
		}
	}
	return false
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "boundsel: "+format+"\n", args...)
	os.Exit(1)
}
