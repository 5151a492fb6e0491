package annotation

import (
	"bufio"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/featuremap/pkg/feature"
)

// Signal is one bedGraph interval and its value.
type Signal struct {
	Start int     `json:"start"`
	End   int     `json:"end"`
	Value float64 `json:"value"`
}

// Mid returns the midpoint of the interval.
func (s Signal) Mid() float64 { return float64(s.Start+s.End) / 2 }

// Track is a quantitative signal along the sequence, drawn under the map.
type Track struct {
	Name   string   `json:"name"`
	Points []Signal `json:"points"`
}

// Max returns the largest value in the track, or 0 for an empty track.
func (t *Track) Max() float64 {
	var m float64
	for i, p := range t.Points {
		if i == 0 || p.Value > m {
			m = p.Value
		}
	}
	return m
}

// Min returns the smallest value in the track, or 0 for an empty track.
func (t *Track) Min() float64 {
	var m float64
	for i, p := range t.Points {
		if i == 0 || p.Value < m {
			m = p.Value
		}
	}
	return m
}

// Crop keeps the intervals intersecting rng, clipped to it.
func (t *Track) Crop(rng feature.Range) *Track {
	out := &Track{Name: t.Name}
	for _, p := range t.Points {
		if span, ok := (feature.Range{Start: p.Start, End: p.End}).Intersect(rng); ok && !span.Empty() {
			out.Points = append(out.Points, Signal{Start: span.Start, End: span.End, Value: p.Value})
		}
	}
	return out
}

// ReadBedGraph reads "chrom start end value" lines, tab or space separated.
// A track line's name= attribute names the track.
func ReadBedGraph(r io.Reader) (*Track, error) {
	sc := bufio.NewScanner(r)
	t := &Track{}
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "track") {
			t.Name = trackName(line)
			continue
		}
		fields := bedFields(line)
		if fields == nil {
			continue
		}
		if len(fields) < 4 {
			return nil, parseError(lineNo, "expected 4 columns, got %d", len(fields))
		}
		start, err1 := strconv.Atoi(fields[1])
		end, err2 := strconv.Atoi(fields[2])
		value, err3 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, parseError(lineNo, "invalid bedGraph line %q", line)
		}
		t.Points = append(t.Points, Signal{Start: start, End: end, Value: value})
	}
	if err := sc.Err(); err != nil {
		return nil, parseError(lineNo, "%v", err)
	}
	return t, nil
}

// OpenTrack reads a bedGraph file. Unnamed tracks are named after the file.
func OpenTrack(path string) (*Track, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadBedGraph(f)
	if err != nil {
		return nil, err
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return t, nil
}

func trackName(line string) string {
	_, rest, ok := strings.Cut(line, "name=")
	if !ok {
		return ""
	}
	if strings.HasPrefix(rest, `"`) {
		name, _, _ := strings.Cut(rest[1:], `"`)
		return name
	}
	name, _, _ := strings.Cut(rest, " ")
	return name
}
