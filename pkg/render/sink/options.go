package sink

import (
	"github.com/matzehuels/featuremap/pkg/annotation"
	"github.com/matzehuels/featuremap/pkg/layout"
	"github.com/matzehuels/featuremap/pkg/render/styles"
)

// Drawing defaults, in pixels.
const (
	DefaultLevelPixels = 18.0
	DefaultTrackPixels = 40.0
	DefaultTicks       = 10
	DefaultScale       = 2.0

	margin = 24.0
)

// Option configures a sink.
type Option func(*renderer)

type renderer struct {
	style    styles.Style
	levelPx  float64
	fontSize float64
	ticks    int
	tracks   []*annotation.Track
	trackPx  float64
	title    bool
	scale    float64
}

// WithStyle selects the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) Option { return func(r *renderer) { r.style = s } }

// WithLevelPixels sets the height of one level in pixels.
func WithLevelPixels(px float64) Option { return func(r *renderer) { r.levelPx = px } }

// WithFontSize sets the label font size. It should match the size the
// layout measured labels with.
func WithFontSize(px float64) Option { return func(r *renderer) { r.fontSize = px } }

// WithTicks sets the approximate number of ruler ticks; 0 hides the ruler
// labels.
func WithTicks(n int) Option { return func(r *renderer) { r.ticks = n } }

// WithTracks draws bedGraph signal tracks with the map.
func WithTracks(tracks ...*annotation.Track) Option {
	return func(r *renderer) { r.tracks = append(r.tracks, tracks...) }
}

// WithTrackPixels sets the height of each signal track.
func WithTrackPixels(px float64) Option { return func(r *renderer) { r.trackPx = px } }

// WithoutTitle hides the record name.
func WithoutTitle() Option { return func(r *renderer) { r.title = false } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) Option { return func(r *renderer) { r.scale = s } }

func newRenderer(opts ...Option) *renderer {
	r := &renderer{
		style:    styles.Simple{},
		levelPx:  DefaultLevelPixels,
		fontSize: layout.DefaultFontSize,
		ticks:    DefaultTicks,
		trackPx:  DefaultTrackPixels,
		title:    true,
		scale:    DefaultScale,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.style == nil {
		r.style = styles.Simple{}
	}
	if r.levelPx <= 0 {
		r.levelPx = DefaultLevelPixels
	}
	if r.fontSize <= 0 {
		r.fontSize = layout.DefaultFontSize
	}
	if r.scale <= 0 {
		r.scale = DefaultScale
	}
	return r
}
