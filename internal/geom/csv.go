package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a coordinate table, one axis per row.
// Column detection (case-insensitive):
//
//	name|coord|axis
//	min|bounds_min, max|bounds_max
//	full_min|start, full_max|stop
//	reverse|reverse_order (optional)
func LoadCSV(path string) ([]CoordinateAxis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV is LoadCSV over an arbitrary reader.
func ReadCSV(r io.Reader) ([]CoordinateAxis, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idx := map[string]int{"name": -1, "min": -1, "max": -1, "full_min": -1, "full_max": -1, "reverse": -1}
	set := func(key string, i int) {
		if idx[key] == -1 {
			idx[key] = i
		}
	}
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name", "coord", "axis":
			set("name", i)
		case "min", "bounds_min":
			set("min", i)
		case "max", "bounds_max":
			set("max", i)
		case "full_min", "start":
			set("full_min", i)
		case "full_max", "stop":
			set("full_max", i)
		case "reverse", "reverse_order":
			set("reverse", i)
		}
	}
	for _, k := range []string{"name", "full_min", "full_max"} {
		if idx[k] == -1 {
			return nil, fmt.Errorf("csv: column %q not found", k)
		}
	}
	var coords []CoordinateAxis
	for n, row := range recs[1:] {
		cell := func(key string) string {
			i := idx[key]
			if i < 0 || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		name := cell("name")
		if name == "" {
			continue
		}
		f0, err1 := strconv.ParseFloat(cell("full_min"), 64)
		f1, err2 := strconv.ParseFloat(cell("full_max"), 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("csv: row %d: invalid full bounds", n+2)
		}
		a := CoordinateAxis{Name: name, FullBounds: [2]float64{f0, f1}, Bounds: [2]float64{f0, f1}}
		if v, err := strconv.ParseFloat(cell("min"), 64); err == nil {
			a.Bounds[0] = v
		}
		if v, err := strconv.ParseFloat(cell("max"), 64); err == nil {
			a.Bounds[1] = v
		}
		if v, err := strconv.ParseBool(cell("reverse")); err == nil {
			a.ReverseOrder = Flag(v)
		}
		coords = append(coords, a)
	}
	if len(coords) == 0 {
		return nil, errors.New("csv: no coordinates parsed")
	}
	return coords, nil
}
