package rbf

import (
	"fmt"
	"math"
	"strings"
)

// Kernel is a radial basis function.
type Kernel int

// Supported kernels.
const (
	Multiquadric Kernel = iota
	Inverse
	Gaussian
	Linear
	Cubic
	Quintic
	ThinPlate
)

var kernelNames = [...]string{
	Multiquadric: "multiquadric",
	Inverse:      "inverse",
	Gaussian:     "gaussian",
	Linear:       "linear",
	Cubic:        "cubic",
	Quintic:      "quintic",
	ThinPlate:    "thin_plate",
}

// String returns the config name of the kernel.
func (k Kernel) String() string {
	if k < 0 || int(k) >= len(kernelNames) {
		return fmt.Sprintf("Kernel(%d)", int(k))
	}
	return kernelNames[k]
}

// ParseKernel converts a case-insensitive kernel name.
func ParseKernel(s string) (Kernel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "-", "_")
	if name == "" {
		return Multiquadric, nil
	}
	if name == "thinplate" {
		name = "thin_plate"
	}
	for k, n := range kernelNames {
		if n == name {
			return Kernel(k), nil
		}
	}
	return Multiquadric, fmt.Errorf("unknown rbf kernel %q (expected one of %s)", s, strings.Join(kernelNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kernel) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kernel) UnmarshalText(text []byte) error {
	v, err := ParseKernel(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// eval returns phi(r) for shape parameter eps.
func (k Kernel) eval(r, eps float64) float64 {
	switch k {
	case Multiquadric:
		s := r / eps
		return math.Sqrt(s*s + 1)
	case Inverse:
		s := r / eps
		return 1 / math.Sqrt(s*s+1)
	case Gaussian:
		s := r / eps
		return math.Exp(-s * s)
	case Linear:
		return r
	case Cubic:
		return r * r * r
	case Quintic:
		return r * r * r * r * r
	case ThinPlate:
		if r == 0 {
			return 0
		}
		return r * r * math.Log(r)
	default:
		return 0
	}
}
