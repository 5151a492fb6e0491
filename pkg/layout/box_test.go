package layout

import "testing"

func TestBoxDimensions(t *testing.T) {
	tests := []struct {
		name          string
		box           Box
		width, height float64
		cx, cy        float64
	}{
		{"unit", Box{Left: 0, Right: 1, Bottom: 0, Top: 1}, 1, 1, 0.5, 0.5},
		{"offset", Box{Left: 10, Right: 50, Bottom: 20, Top: 80}, 40, 60, 30, 50},
		{"degenerate", Box{Left: 10, Right: 10, Bottom: 5, Top: 5}, 0, 0, 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Width(); got != tt.width {
				t.Errorf("Width() = %v, want %v", got, tt.width)
			}
			if got := tt.box.Height(); got != tt.height {
				t.Errorf("Height() = %v, want %v", got, tt.height)
			}
			if got := tt.box.CenterX(); got != tt.cx {
				t.Errorf("CenterX() = %v, want %v", got, tt.cx)
			}
			if got := tt.box.CenterY(); got != tt.cy {
				t.Errorf("CenterY() = %v, want %v", got, tt.cy)
			}
		})
	}
}

func TestBoxOverlaps(t *testing.T) {
	a := Box{Left: 0, Right: 10, Bottom: 0, Top: 1}
	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"same", a, true},
		{"touching edge", Box{Left: 10, Right: 20, Bottom: 0, Top: 1}, false},
		{"other row", Box{Left: 0, Right: 10, Bottom: 1, Top: 2}, false},
		{"partial", Box{Left: 5, Right: 15, Bottom: 0.5, Top: 1.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}
