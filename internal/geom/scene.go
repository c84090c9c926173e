package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadScene reads a scene from a .json or .csv file.
// A CSV file only carries coordinates; the first two rows become the x and y axes.
func LoadScene(path string) (Scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		coords, err := LoadCSV(path)
		if err != nil {
			return Scene{}, err
		}
		return Scene{Coordinates: coords}.WithDefaultAxes(), nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return Scene{}, err
		}
		defer f.Close()
		s, err := ReadScene(f)
		if err != nil {
			return Scene{}, err
		}
		return s.WithDefaultAxes(), nil
	}
}

// ReadScene decodes a JSON scene. A bare coordinate array is accepted too.
// The axis assignment is left empty when the input has none.
func ReadScene(r io.Reader) (Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Scene{}, err
	}
	return ParseScene(data)
}

// ParseScene decodes a JSON scene from memory.
func ParseScene(data []byte) (Scene, error) {
	var s Scene
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return Scene{}, errors.New("empty scene")
	}
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &s.Coordinates); err != nil {
			return Scene{}, fmt.Errorf("scene: %w", err)
		}
	} else if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("scene: %w", err)
	}
	if len(s.Coordinates) == 0 {
		return Scene{}, errors.New("scene: no coordinates")
	}
	return s, nil
}

// WithDefaultAxes fills in an empty assignment from the coordinate order.
func (s Scene) WithDefaultAxes() Scene {
	if s.Axes == (AxisAssignment{}) {
		s.Axes = DefaultAxes(s.Coordinates)
	}
	return s
}

// DefaultAxes assigns the first two coordinates to x and y.
func DefaultAxes(coords []CoordinateAxis) AxisAssignment {
	var a AxisAssignment
	if len(coords) > 0 {
		a.X = coords[0].Name
	}
	if len(coords) > 1 {
		a.Y = coords[1].Name
	}
	return a
}
