// Package rbf fits radial-basis-function interpolants through scattered
// two-dimensional samples.
package rbf

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/leapstack-labs/datavis/pkg/core"
)

// collinearTolerance bounds the cross product below which three points are
// treated as lying on one line.
const collinearTolerance = 1e-12

// Options configures a fit.
type Options struct {
	Kernel Kernel
	// Epsilon is the shape parameter of the multiquadric, inverse and
	// gaussian kernels. Zero selects the average node spacing.
	Epsilon float64
	// Smooth adds a ridge term to the system. Zero interpolates exactly.
	Smooth float64
}

// Evaluator returns the interpolated value at (x, y). Implementations must
// be safe for concurrent use.
type Evaluator interface {
	At(x, y float64) float64
}

// Fitter builds an Evaluator from samples.
type Fitter interface {
	Fit(points [][2]float64, values []float64, opts Options) (Evaluator, error)
}

// Solver is the default Fitter. It solves the weight system with gonum.
type Solver struct{}

// Fit implements Fitter.
func (Solver) Fit(points [][2]float64, values []float64, opts Options) (Evaluator, error) {
	return Fit(points, values, opts)
}

// Interpolator is a fitted RBF surface.
type Interpolator struct {
	nodes   [][2]float64
	weights []float64
	kernel  Kernel
	epsilon float64
}

// Fit solves (Phi + smooth*I) w = values for the given samples. At least
// three non-collinear points are required.
func Fit(points [][2]float64, values []float64, opts Options) (*Interpolator, error) {
	n := len(points)
	if n != len(values) {
		return nil, core.NewConfigurationError("values", "got %d values for %d points", len(values), n)
	}
	if n < 3 {
		return nil, core.NewInvalidDataError("surface interpolation needs at least 3 samples, got %d", n)
	}
	if collinear(points) {
		return nil, core.NewInvalidDataError("surface samples are collinear")
	}
	if opts.Kernel < Multiquadric || opts.Kernel > ThinPlate {
		return nil, core.NewConfigurationError("kernel", "unknown kernel %d", int(opts.Kernel))
	}

	eps := opts.Epsilon
	if eps <= 0 {
		eps = averageSpacing(points)
	}

	phi := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := opts.Kernel.eval(dist(points[i], points[j]), eps)
			if i == j {
				v += opts.Smooth
			}
			phi.Set(i, j, v)
		}
	}

	var w mat.VecDense
	if err := w.SolveVec(phi, mat.NewVecDense(n, append([]float64(nil), values...))); err != nil {
		var cond mat.Condition
		switch {
		case errors.Is(err, mat.ErrSingular):
			return nil, core.NewInvalidDataError("rbf system is singular; samples may contain duplicate points")
		case errors.As(err, &cond) && !math.IsInf(float64(cond), 1):
			// Ill-conditioned but solved; the result is still usable.
		default:
			return nil, fmt.Errorf("solve rbf weights: %w", err)
		}
	}

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = w.AtVec(i)
	}

	return &Interpolator{
		nodes:   append([][2]float64(nil), points...),
		weights: weights,
		kernel:  opts.Kernel,
		epsilon: eps,
	}, nil
}

// At implements Evaluator.
func (ip *Interpolator) At(x, y float64) float64 {
	var sum float64
	p := [2]float64{x, y}
	for i, node := range ip.nodes {
		sum += ip.weights[i] * ip.kernel.eval(dist(p, node), ip.epsilon)
	}
	return sum
}

// Epsilon returns the shape parameter used by the fit.
func (ip *Interpolator) Epsilon() float64 { return ip.epsilon }

func dist(a, b [2]float64) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// averageSpacing approximates the mean distance between nodes from the
// bounding box: (product of non-zero edges / n) ^ (1 / number of edges).
func averageSpacing(points [][2]float64) float64 {
	lo := points[0]
	hi := points[0]
	for _, p := range points[1:] {
		for d := 0; d < 2; d++ {
			lo[d] = math.Min(lo[d], p[d])
			hi[d] = math.Max(hi[d], p[d])
		}
	}

	prod := 1.0
	edges := 0
	for d := 0; d < 2; d++ {
		if e := hi[d] - lo[d]; e > 0 {
			prod *= e
			edges++
		}
	}
	if edges == 0 {
		return 1
	}
	return math.Pow(prod/float64(len(points)), 1/float64(edges))
}

// collinear reports whether all points lie on one line.
func collinear(points [][2]float64) bool {
	a := points[0]
	var b [2]float64
	found := false
	for _, p := range points[1:] {
		if p != a {
			b = p
			found = true
			break
		}
	}
	if !found {
		return true
	}

	scaleSq := (b[0]-a[0])*(b[0]-a[0]) + (b[1]-a[1])*(b[1]-a[1])
	for _, c := range points {
		cross := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
		if math.Abs(cross) > collinearTolerance*math.Max(scaleSq, 1) {
			return false
		}
	}
	return true
}
