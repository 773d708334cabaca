package colorspace

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

const (
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 500

	// number of consecutive iterations without objective improvement of
	// at least eps^2 before solver gives up
	stallIterations = 10

	// refinement limits
	polishIterations = 50
	minDamping       = 1e-12
	maxDamping       = 1e8
)

// Solution describes result of RGB to HSL inversion.
type Solution struct {
	HSL        Triple  // after degeneracy snapping
	Residual   float64 // squared error of the fit before snapping
	Iterations int     // solver and refinement iterations, all restarts included
	Converged  bool    // Residual is within tolerance
}

// Warning is raised when inversion could not fit target color within
// tolerance. Result is still usable.
type Warning struct {
	Target    Triple
	Solution  Solution
	Tolerance float64
}

func (w Warning) String() string {
	return fmt.Sprintf("min_loss %.3e > %.3e", w.Solution.Residual, w.Tolerance)
}

// Converter performs RGB to HSL inversion. It keeps no mutable state and may
// be used from multiple goroutines.
type Converter struct {
	log       *zap.Logger
	eps       float64
	maxIter   int
	workers   int
	onWarning func(Warning)
}

type Option func(*Converter)

// WithTolerance sets eps used for convergence test and degeneracy snapping.
func WithTolerance(eps float64) Option {
	return func(c *Converter) {
		if eps > 0 {
			c.eps = eps
		}
	}
}

func WithMaxIterations(n int) Option {
	return func(c *Converter) {
		if n > 0 {
			c.maxIter = n
		}
	}
}

// WithWorkers sets number of goroutines used by batch inversion.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithWarningHandler registers callback for non-convergence warnings, it is
// called in addition to logging. Batch conversion with more than one worker
// calls it from several goroutines at once, handler must be safe for
// concurrent use.
func WithWarningHandler(fn func(Warning)) Option {
	return func(c *Converter) {
		c.onWarning = fn
	}
}

// NewConverter creates RGB to HSL converter.
func NewConverter(log *zap.Logger, opts ...Option) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Converter{
		log:     log.Named("colorspace"),
		eps:     DefaultTolerance,
		maxIter: DefaultMaxIterations,
		workers: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Converter) Tolerance() float64 {
	return c.eps
}

// ToRGB is the same as package level ToRGB, here for symmetry.
func (c *Converter) ToRGB(hsl Triple) Triple {
	return ToRGB(hsl)
}

// ToHSL converts RGB color back to HSL.
func (c *Converter) ToHSL(rgb Triple) Triple {
	return c.Solve(rgb).HSL
}

// Loss is squared distance between ToRGB(hsl) and rgb.
func Loss(hsl, rgb Triple) float64 {
	got := ToRGB(hsl)
	var sum float64
	for i := range got {
		d := got[i] - rgb[i]
		sum += d * d
	}
	return sum
}

// Solve fits HSL color to target RGB by minimizing Loss over [0,1]^3.
//
// L-BFGS runs on the box-clamped loss: saturation and lightness are clamped
// before evaluation and their gradient vanishes outside of [0,1], hue is
// periodic and left free. The point found is refined with damped
// Gauss-Newton steps projected onto the box, channels resting on a bound
// are frozen while the step points outside. First start is an estimate
// taken from the target itself, fixed starts are only tried when residual
// stays above tolerance.
func (c *Converter) Solve(rgb Triple) Solution {
	var (
		best  Triple
		bestF = math.Inf(1)
		iters int
	)
	for _, x0 := range append([]Triple{estimate(rgb)}, startingPoints...) {
		hsl, n := c.minimize(rgb, x0)
		hsl, m := c.polish(rgb, hsl)
		iters += n + m
		if f := Loss(hsl, rgb); f < bestF {
			best, bestF = hsl, f
		}
		if bestF <= c.eps {
			break
		}
	}

	sol := Solution{
		HSL:        c.snap(best),
		Residual:   bestF,
		Iterations: iters,
		Converged:  bestF <= c.eps,
	}
	if !sol.Converged {
		c.warn(Warning{Target: rgb, Solution: sol, Tolerance: c.eps})
	}
	return sol
}

// Middle of the box, the primaries and two fully saturated points, tried in
// order.
var startingPoints = []Triple{
	{0.5, 0.5, 0.5},
	{0, 0.5, 0.5},
	{1.0 / 3, 0.5, 0.5},
	{2.0 / 3, 0.5, 0.5},
	{0, 1, 0.25},
	{0, 1, 0.75},
}

// estimate guesses HSL for in-gamut target: lightness and saturation from
// channel extremes, hue from the angle in the chroma plane which is exact
// for primary and secondary colors only.
func estimate(rgb Triple) Triple {
	r, g, b := clamp(rgb[0]), clamp(rgb[1]), clamp(rgb[2])
	hi, lo := max(r, g, b), min(r, g, b)
	l := (hi + lo) / 2
	var s float64
	if d := 1 - math.Abs(2*l-1); hi > lo && d > 0 {
		s = clamp((hi - lo) / d)
	}
	h := math.Atan2(math.Sqrt(3)*(g-b), 2*r-g-b) / (2 * math.Pi)
	return Triple{wrapHue(h), s, l}
}

func (c *Converter) minimize(rgb, x0 Triple) (Triple, int) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return Loss(fromSolver(x), rgb)
		},
		Grad: func(grad, x []float64) {
			hsl := fromSolver(x)
			got, jac := ToRGB(hsl), Jacobian(hsl)
			for j := range grad {
				grad[j] = 0
			}
			for i := range got {
				d := 2 * (got[i] - rgb[i])
				for j := range grad {
					grad[j] += d * jac[i][j]
				}
			}
			// loss is flat where clamping is in effect
			for j := 1; j < len(x); j++ {
				if x[j] < 0 || x[j] > 1 {
					grad[j] = 0
				}
			}
		},
	}
	settings := &optimize.Settings{
		MajorIterations: c.maxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   c.eps * c.eps,
			Iterations: stallIterations,
		},
	}

	res, err := optimize.Minimize(problem, x0[:], settings, &optimize.LBFGS{})
	if res == nil {
		c.log.Debug("Solver failed", zap.Float64s("target", rgb[:]), zap.Error(err))
		return x0, 0
	}
	if err != nil {
		// line search running out of precision near the optimum is normal
		c.log.Debug("Solver stopped", zap.Float64s("target", rgb[:]), zap.Stringer("status", res.Status), zap.Error(err))
	}
	return project(fromSolver(res.X)), res.Stats.MajorIterations
}

func fromSolver(x []float64) Triple {
	return Triple{x[0], clamp(x[1]), clamp(x[2])}
}

// project moves point into the box.
func project(hsl Triple) Triple {
	return Triple{wrapHue(hsl[0]), clamp(hsl[1]), clamp(hsl[2])}
}

// polish refines hsl with Levenberg-Marquardt steps kept inside the box. Step
// is accepted only when loss decreases, so result is never worse than hsl.
func (c *Converter) polish(rgb, hsl Triple) (Triple, int) {
	f := Loss(hsl, rgb)
	lambda := 1e-3

	n := 0
	for ; n < polishIterations && f > 0 && lambda < maxDamping; n++ {
		d, ok := boxStep(hsl, rgb, lambda)
		if !ok {
			lambda *= 10
			continue
		}
		next := project(Triple{hsl[0] + d[0], hsl[1] + d[1], hsl[2] + d[2]})
		if nf := Loss(next, rgb); nf < f {
			hsl, f = next, nf
			lambda = math.Max(lambda/10, minDamping)
		} else {
			lambda *= 10
		}
	}
	return hsl, n
}

// boxStep computes damped Gauss-Newton step. Saturation or lightness sitting
// on a bound is frozen when unconstrained step would push it outside.
func boxStep(hsl, rgb Triple, lambda float64) (Triple, bool) {
	var frozen [3]bool
	d, ok := dampedStep(hsl, rgb, lambda, frozen)
	if !ok {
		return d, false
	}
	again := false
	for j := 1; j < 3; j++ {
		if hsl[j] <= 0 && d[j] < 0 || hsl[j] >= 1 && d[j] > 0 {
			frozen[j], again = true, true
		}
	}
	if !again {
		return d, true
	}
	return dampedStep(hsl, rgb, lambda, frozen)
}

// dampedStep solves (JᵀJ + λI)d = -Jᵀr with frozen channels excluded.
func dampedStep(hsl, rgb Triple, lambda float64, frozen [3]bool) (Triple, bool) {
	got, jac := ToRGB(hsl), Jacobian(hsl)

	a := mat.NewSymDense(3, nil)
	b := mat.NewVecDense(3, nil)
	for j := range 3 {
		if frozen[j] {
			a.SetSym(j, j, 1)
			continue
		}
		var g float64
		for i := range 3 {
			g -= jac[i][j] * (got[i] - rgb[i])
		}
		b.SetVec(j, g)
		for k := j; k < 3; k++ {
			if frozen[k] {
				continue
			}
			var v float64
			for i := range 3 {
				v += jac[i][j] * jac[i][k]
			}
			if k == j {
				v += lambda
			}
			a.SetSym(j, k, v)
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(a) {
		return Triple{}, false
	}
	var x mat.VecDense
	if err := chol.SolveVecTo(&x, b); err != nil {
		// ill-conditioned system still yields a step, loss test decides
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return Triple{}, false
		}
	}
	return Triple{x.AtVec(0), x.AtVec(1), x.AtVec(2)}, true
}

// snap removes channels which are not observable: saturation of (near) black
// and white, hue of achromatic colors.
func (c *Converter) snap(hsl Triple) Triple {
	if hsl[2] < c.eps || hsl[2] > 1-c.eps {
		hsl[1] = 0
	}
	if hsl[1] < c.eps {
		hsl[0] = 0
	}
	return hsl
}

func (c *Converter) warn(w Warning) {
	c.log.Warn("Conversion to HSL did not converge",
		zap.Float64s("rgb", w.Target[:]),
		zap.Float64s("hsl", w.Solution.HSL[:]),
		zap.Stringer("loss", w),
	)
	if c.onWarning != nil {
		c.onWarning(w)
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
