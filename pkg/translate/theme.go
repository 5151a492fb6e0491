package translate

import (
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/featuremap/pkg/errors"
)

// DefaultColor is the fill used when neither the annotation nor the theme
// provides one.
const DefaultColor = "#7245dc"

// Theme configures [DefaultHooks]. It is usually loaded from a TOML file:
//
//	default_color = "#7245dc"
//	label_fields = ["label", "gene"]
//	ignored_kinds = ["source"]
//	max_label_length = 30
//
//	[colors]
//	CDS = "#ffd700"
//	terminator = "green"
//
//	[thickness]
//	rep_origin = 0.4
type Theme struct {
	DefaultColor     string             `toml:"default_color" json:"default_color" validate:"omitempty,hexcolor|alpha"`
	DefaultThickness float64            `toml:"default_thickness" json:"default_thickness" validate:"gte=0"`
	Colors           map[string]string  `toml:"colors" json:"colors,omitempty" validate:"dive,hexcolor|alpha"`
	Thickness        map[string]float64 `toml:"thickness" json:"thickness,omitempty" validate:"dive,gte=0"`
	LabelFields      []string           `toml:"label_fields" json:"label_fields,omitempty" validate:"dive,required"`
	IgnoredKinds     []string           `toml:"ignored_kinds" json:"ignored_kinds,omitempty"`
	UnlabeledKinds   []string           `toml:"unlabeled_kinds" json:"unlabeled_kinds,omitempty"`
	MaxLabelLength   int                `toml:"max_label_length" json:"max_label_length" validate:"gte=0"`
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() *Theme {
	return &Theme{
		DefaultColor: DefaultColor,
		LabelFields:  []string{"label", "gene", "locus_tag", "product", "note", "source"},
		IgnoredKinds: []string{"source"},
	}
}

var validate = validator.New()

// Validate checks colors and numeric limits.
func (t *Theme) Validate() error {
	if err := validate.Struct(t); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTheme, err, "invalid theme")
	}
	return nil
}

// ParseTheme decodes a TOML theme. Fields missing from the document keep
// their DefaultTheme values.
func ParseTheme(data []byte) (*Theme, error) {
	t := DefaultTheme()
	if err := toml.Unmarshal(data, t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "parse theme")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadTheme reads a TOML theme file.
func LoadTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "read theme %s", path)
	}
	return ParseTheme(data)
}

func (t *Theme) ignores(kind string) bool   { return slices.Contains(t.IgnoredKinds, kind) }
func (t *Theme) unlabeled(kind string) bool { return slices.Contains(t.UnlabeledKinds, kind) }

// truncate shortens label to MaxLabelLength runes, ending in "..".
func (t *Theme) truncate(label string) string {
	r := []rune(label)
	if t.MaxLabelLength <= 0 || len(r) <= t.MaxLabelLength {
		return label
	}
	return string(r[:max(1, t.MaxLabelLength-2)]) + ".."
}
