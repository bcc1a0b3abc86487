package gromacs

import "fmt"

// Selection decides which COLVAR frames to extract. Explicit times win;
// otherwise a threshold picks every frame whose CV is strictly above it;
// otherwise the frame at the maximum CV is used.
type Selection struct {
	Times        []float64
	Threshold    float64
	UseThreshold bool
}

// MaxCV returns the first time at which cv is largest, and that value.
func MaxCV(time, cv []float64) (float64, float64, error) {
	if len(time) != len(cv) {
		return 0, 0, fmt.Errorf("%w: %d vs %d", ErrLength, len(time), len(cv))
	}
	if len(cv) == 0 {
		return 0, 0, ErrNoFrames
	}
	best := 0
	for i, v := range cv {
		if v > cv[best] {
			best = i
		}
	}
	return time[best], cv[best], nil
}

// Above returns the times whose CV exceeds threshold.
func Above(time, cv []float64, threshold float64) ([]float64, error) {
	if len(time) != len(cv) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLength, len(time), len(cv))
	}
	var out []float64
	for i, v := range cv {
		if v > threshold {
			out = append(out, time[i])
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no CV above %g", ErrNoFrames, threshold)
	}
	return out, nil
}

func Select(time, cv []float64, sel Selection) ([]float64, error) {
	switch {
	case len(sel.Times) > 0:
		return sel.Times, nil
	case sel.UseThreshold:
		return Above(time, cv, sel.Threshold)
	default:
		t, _, err := MaxCV(time, cv)
		if err != nil {
			return nil, err
		}
		return []float64{t}, nil
	}
}
