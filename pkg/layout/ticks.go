package layout

import "math"

// Ticks returns ruler positions inside the plan bounds, spaced by a round
// step (1, 2 or 5 times a power of ten) chosen so that roughly target ticks
// fit.
func (p *Plan) Ticks(target int) []int {
	if target < 1 {
		target = 1
	}
	step := niceStep(float64(p.Bounds.Len()) / float64(target))
	var out []int
	for x := ceilTo(p.Bounds.Start, step); x <= p.Bounds.End; x += step {
		out = append(out, x)
	}
	return out
}

func niceStep(raw float64) int {
	if raw <= 1 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*mag >= raw {
			return int(m * mag)
		}
	}
	return int(10 * mag)
}

func ceilTo(x, step int) int {
	r := x % step
	switch {
	case r == 0:
		return x
	case r < 0:
		return x - r
	default:
		return x - r + step
	}
}
