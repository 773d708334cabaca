package colorspace_test

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"hslc/colorspace"
)

// hueDistance compares hues on the circle.
func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 1-d)
}

func closeHSL(got, want colorspace.Triple, eps float64) bool {
	return hueDistance(got[0], want[0]) <= eps && math.Abs(got[1]-want[1]) <= eps && math.Abs(got[2]-want[2]) <= eps
}

// referenceHSL is the textbook closed form inverse.
func referenceHSL(rgb colorspace.Triple) colorspace.Triple {
	r, g, b := rgb[0], rgb[1], rgb[2]
	hi, lo := max(r, g, b), min(r, g, b)
	l := (hi + lo) / 2
	c := hi - lo
	if c == 0 {
		return colorspace.Triple{0, 0, l}
	}
	s := c / (1 - math.Abs(2*l-1))
	var h float64
	switch hi {
	case r:
		h = math.Mod((g-b)/c+6, 6)
	case g:
		h = (b-r)/c + 2
	default:
		h = (r-g)/c + 4
	}
	return colorspace.Triple{h / 6, s, l}
}

func TestToHSL_RoundTrip(t *testing.T) {
	conv := colorspace.NewConverter(zap.NewNop())

	cases := []colorspace.Triple{
		{0, 1, 0.5},
		{1.0 / 3, 1, 0.5},
		{2.0 / 3, 1, 0.5},
		{0.1, 0.3, 0.2},
		{0.95, 0.7, 0.8},
		{0.5, 0.5, 0.5},
	}
	rnd := rand.New(rand.NewPCG(1, 2))
	for range 40 {
		cases = append(cases, colorspace.Triple{
			rnd.Float64(),
			0.05 + 0.9*rnd.Float64(),
			0.05 + 0.9*rnd.Float64(),
		})
	}

	for _, hsl := range cases {
		sol := conv.Solve(colorspace.ToRGB(hsl))
		if !sol.Converged {
			t.Errorf("Solve(ToRGB(%v)) did not converge, residual %.3e", hsl, sol.Residual)
			continue
		}
		if got := sol.HSL; !closeHSL(got, hsl, conv.Tolerance()) {
			t.Errorf("ToHSL(ToRGB(%v)) = %v", hsl, got)
		}
	}
}

func TestToHSL_PrimaryColors(t *testing.T) {
	conv := colorspace.NewConverter(nil)

	tests := []struct {
		name string
		rgb  colorspace.Triple
		want colorspace.Triple
	}{
		{"red", colorspace.Triple{1, 0, 0}, colorspace.Triple{0, 1, 0.5}},
		{"green", colorspace.Triple{0, 1, 0}, colorspace.Triple{1.0 / 3, 1, 0.5}},
		{"blue", colorspace.Triple{0, 0, 1}, colorspace.Triple{2.0 / 3, 1, 0.5}},
		{"cyan", colorspace.Triple{0, 1, 1}, colorspace.Triple{0.5, 1, 0.5}},
		{"pale green", colorspace.Triple{0.25, 0.75, 0.25}, colorspace.Triple{1.0 / 3, 0.5, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := conv.ToHSL(tt.rgb); !closeHSL(got, tt.want, conv.Tolerance()) {
				t.Errorf("ToHSL(%v) = %v, want %v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestToHSL_FullySaturated(t *testing.T) {
	conv := colorspace.NewConverter(zaptest.NewLogger(t))

	tests := []struct {
		name string
		rgb  colorspace.Triple
		want colorspace.Triple
	}{
		{"rgb(0,3,30)", colorspace.Triple{0, 3.0 / 255, 30.0 / 255}, colorspace.Triple{234.0 / 360, 1, 15.0 / 255}},
		{"rgb(0,6,39)", colorspace.Triple{0, 6.0 / 255, 39.0 / 255}, colorspace.Triple{(4 - 6.0/39) / 6, 1, 39.0 / 510}},
		{"#22ffff", colorspace.Triple{34.0 / 255, 1, 1}, colorspace.Triple{0.5, 1, 289.0 / 510}},
		{"dark red", colorspace.Triple{10.0 / 255, 0, 0}, colorspace.Triple{0, 1, 5.0 / 255}},
		{"light yellow", colorspace.Triple{1, 1, 250.0 / 255}, colorspace.Triple{1.0 / 6, 1, 505.0 / 510}},
		{"orange", colorspace.Triple{0.971, 0.706, 0.055}, colorspace.Triple{0.651 / 0.916 / 6, 0.916 / 0.974, 0.513}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol := conv.Solve(tt.rgb)
			if !sol.Converged {
				t.Fatalf("Solve(%v) did not converge, residual %.3e", tt.rgb, sol.Residual)
			}
			if !closeHSL(sol.HSL, tt.want, conv.Tolerance()) {
				t.Errorf("Solve(%v) = %v, want %v", tt.rgb, sol.HSL, tt.want)
			}
		})
	}
}

// Every 8-bit color with one channel at 0 or 255 has saturation 1.
func TestToHSL_SaturatedGrid(t *testing.T) {
	conv := colorspace.NewConverter(zap.NewNop())

	step := 5
	if testing.Short() {
		step = 15
	}
	count := 0
	for r := 0; r <= 255; r += step {
		for g := 0; g <= 255; g += step {
			for b := 0; b <= 255; b += step {
				hi, lo := max(r, g, b), min(r, g, b)
				if hi == lo || (lo != 0 && hi != 255) {
					continue
				}
				count++
				rgb := colorspace.Triple{float64(r) / 255, float64(g) / 255, float64(b) / 255}
				want := referenceHSL(rgb)
				sol := conv.Solve(rgb)
				if !sol.Converged {
					t.Errorf("Solve(rgb(%d,%d,%d)) did not converge, residual %.3e", r, g, b, sol.Residual)
					continue
				}
				if !closeHSL(sol.HSL, want, conv.Tolerance()) {
					t.Errorf("Solve(rgb(%d,%d,%d)) = %v, want %v", r, g, b, sol.HSL, want)
				}
			}
		}
	}
	if count == 0 {
		t.Fatal("no colors checked")
	}
}

func TestToHSL_DegeneracySnapping(t *testing.T) {
	conv := colorspace.NewConverter(zap.NewNop())

	tests := []struct {
		name      string
		rgb       colorspace.Triple
		lightness float64
	}{
		{"black", colorspace.Triple{0, 0, 0}, 0},
		{"white", colorspace.Triple{1, 1, 1}, 1},
		{"gray", colorspace.Triple{0.5, 0.5, 0.5}, 0.5},
		{"dark gray", colorspace.Triple{0.2, 0.2, 0.2}, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := conv.ToHSL(tt.rgb)
			if got[0] != 0 {
				t.Errorf("hue = %v, want 0", got[0])
			}
			if got[1] >= conv.Tolerance() {
				t.Errorf("saturation = %v, want 0", got[1])
			}
			if math.Abs(got[2]-tt.lightness) > 1e-5 {
				t.Errorf("lightness = %v, want %v", got[2], tt.lightness)
			}
		})
	}
}

func TestToHSL_BlackAndWhiteSaturationIsZero(t *testing.T) {
	conv := colorspace.NewConverter(zap.NewNop())
	for _, rgb := range []colorspace.Triple{{0, 0, 0}, {1, 1, 1}} {
		got := conv.ToHSL(rgb)
		if got[0] != 0 || got[1] != 0 {
			t.Errorf("ToHSL(%v) = %v, want zero hue and saturation", rgb, got)
		}
	}
}

func TestToHSL_WarnsWhenNotConverged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	var warnings []colorspace.Warning
	conv := colorspace.NewConverter(zap.New(core), colorspace.WithWarningHandler(func(w colorspace.Warning) {
		warnings = append(warnings, w)
	}))

	// out of gamut, no HSL color produces it
	target := colorspace.Triple{1.5, 0, 0}
	sol := conv.Solve(target)

	if sol.Converged {
		t.Fatalf("expected non-convergence, residual %.3e", sol.Residual)
	}
	if sol.Residual <= conv.Tolerance() {
		t.Errorf("residual %.3e should exceed tolerance", sol.Residual)
	}
	// best effort is pure red which is 0.5 away in red channel
	if math.Abs(sol.Residual-0.25) > 1e-2 {
		t.Errorf("residual = %.3e, want about 0.25", sol.Residual)
	}

	if len(warnings) != 1 {
		t.Fatalf("warning handler called %d times, want 1", len(warnings))
	}
	if warnings[0].Target != target {
		t.Errorf("warning target = %v, want %v", warnings[0].Target, target)
	}
	if logs.FilterMessage("Conversion to HSL did not converge").Len() != 1 {
		t.Errorf("expected one warning log entry, got %d", logs.Len())
	}
}

func TestToHSL_NoWarningWhenConverged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	conv := colorspace.NewConverter(zap.New(core))

	conv.ToHSL(colorspace.Triple{0.2, 0.4, 0.6})
	if logs.Len() != 0 {
		t.Errorf("unexpected warnings: %v", logs.All())
	}
}

func TestWithTolerance(t *testing.T) {
	conv := colorspace.NewConverter(nil, colorspace.WithTolerance(1e-3), colorspace.WithMaxIterations(50))
	if conv.Tolerance() != 1e-3 {
		t.Errorf("Tolerance() = %v, want 1e-3", conv.Tolerance())
	}
	// ignored
	conv = colorspace.NewConverter(nil, colorspace.WithTolerance(-1))
	if conv.Tolerance() != colorspace.DefaultTolerance {
		t.Errorf("Tolerance() = %v, want default", conv.Tolerance())
	}
}

func TestToHSLBatch_MatchesSingleCalls(t *testing.T) {
	in := []colorspace.Triple{
		{1, 0, 0},
		{0, 0, 0},
		{0.2, 0.4, 0.6},
		{0.9, 0.8, 0.1},
		{1, 1, 1},
	}

	single := colorspace.NewConverter(nil)
	for _, workers := range []int{1, 3} {
		conv := colorspace.NewConverter(nil, colorspace.WithWorkers(workers))
		out, err := conv.ToHSLBatch(context.Background(), in)
		if err != nil {
			t.Fatalf("workers=%d: ToHSLBatch() error = %v", workers, err)
		}
		for i := range in {
			if want := single.ToHSL(in[i]); out[i] != want {
				t.Errorf("workers=%d: row %d = %v, want %v", workers, i, out[i], want)
			}
		}
	}
}

func TestToHSLArray_ShapeMirrors(t *testing.T) {
	rgb, err := colorspace.NewArray([]int{1, 2, 3}, []float64{1, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("NewArray() error = %v", err)
	}

	conv := colorspace.NewConverter(nil, colorspace.WithWorkers(2))
	hsl, err := conv.ToHSLArray(context.Background(), rgb)
	if err != nil {
		t.Fatalf("ToHSLArray() error = %v", err)
	}
	if len(hsl.Shape) != 3 || hsl.Shape[0] != 1 || hsl.Shape[1] != 2 || hsl.Shape[2] != 3 {
		t.Fatalf("shape = %v, want [1 2 3]", hsl.Shape)
	}
	if got := hsl.Row(1); got[0] != 0 || got[1] != 0 || got[2] > 1e-5 {
		t.Errorf("black row = %v, want zeros", got)
	}
	if got := hsl.Row(0); math.Abs(got[1]-1) > 1e-4 || math.Abs(got[2]-0.5) > 1e-4 {
		t.Errorf("red row = %v", got)
	}
}

func TestToHSLBatch_ConcurrentWarnings(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	var (
		mu      sync.Mutex
		targets []colorspace.Triple
	)
	conv := colorspace.NewConverter(zap.New(core), colorspace.WithWorkers(4), colorspace.WithWarningHandler(func(w colorspace.Warning) {
		mu.Lock()
		defer mu.Unlock()
		targets = append(targets, w.Target)
	}))

	var in []colorspace.Triple
	for i := range 8 {
		in = append(in, colorspace.Triple{1.5, 0, 0}, colorspace.Triple{0.1 * float64(i), 0.5, 0.5})
	}
	if _, err := conv.ToHSLBatch(context.Background(), in); err != nil {
		t.Fatalf("ToHSLBatch() error = %v", err)
	}

	if len(targets) != 8 {
		t.Fatalf("warning handler called %d times, want 8", len(targets))
	}
	for _, target := range targets {
		if target != (colorspace.Triple{1.5, 0, 0}) {
			t.Errorf("unexpected warning for %v", target)
		}
	}
	if n := logs.FilterMessage("Conversion to HSL did not converge").Len(); n != 8 {
		t.Errorf("got %d warning log entries, want 8", n)
	}
}

func TestToHSLBatch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		conv := colorspace.NewConverter(nil, colorspace.WithWorkers(workers))
		_, err := conv.ToHSLBatch(ctx, []colorspace.Triple{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("workers=%d: error = %v, want context.Canceled", workers, err)
		}
	}
}
