package cache

// Keyer builds cache keys for each pipeline stage. Every option that can
// change a stage's output is hashed into its key.
type Keyer interface {
	// RecordKey keys a translated (and possibly cropped) record by the hash
	// of its input file.
	RecordKey(inputHash string, opts RecordKeyOpts) string
	// LayoutKey keys a layout plan by the hash of its record.
	LayoutKey(recordHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys rendered output by the hash of its plan.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// RecordKeyOpts are the options that shape a translated record.
type RecordKeyOpts struct {
	ThemeHash string `json:"theme,omitempty"`
	Circular  bool   `json:"circular,omitempty"`
	Crop      string `json:"crop,omitempty"`
}

// LayoutKeyOpts are the layout options that shape a plan.
type LayoutKeyOpts struct {
	Width        float64 `json:"width"`
	PointWidth   float64 `json:"point_width"`
	LabelSpacing float64 `json:"label_spacing"`
	FontSize     float64 `json:"font_size"`
	Labels       bool    `json:"labels"`
	InlineLabels bool    `json:"inline_labels"`
	RingRadius   float64 `json:"ring_radius"`
	Origin       *int    `json:"origin,omitempty"`
}

// ArtifactKeyOpts are the render options that shape an artifact.
type ArtifactKeyOpts struct {
	Format      string   `json:"format"`
	Style       string   `json:"style"`
	LevelPixels float64  `json:"level_pixels"`
	Ticks       int      `json:"ticks"`
	Scale       float64  `json:"scale,omitempty"`
	Title       bool     `json:"title"`
	TrackHashes []string `json:"tracks,omitempty"`
}

// DefaultKeyer hashes options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) RecordKey(inputHash string, opts RecordKeyOpts) string {
	return hashKey("record", inputHash, opts)
}

func (DefaultKeyer) LayoutKey(recordHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", recordHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
