package dataset

import (
	"cogentcore.org/core/math32/minmax"
)

// Row is one parsed data row.
//
// Categorical rows carry Label and Values = [value, tail...].
// Numerical rows carry Values = [x, (y), z, tail...].
type Row struct {
	Label  string    `json:"label,omitempty" yaml:"label,omitempty"`
	Values []float64 `json:"values" yaml:"values"`
}

// Ranges holds the extent of the data along each axis. Y is only set for
// three-dimensional data and ZAnim only for animable data.
type Ranges struct {
	X     minmax.F64 `json:"x" yaml:"x"`
	Y     minmax.F64 `json:"y" yaml:"y"`
	Z     minmax.F64 `json:"z" yaml:"z"`
	ZAnim minmax.F64 `json:"z_anim" yaml:"z_anim"`
}

// Labels are the axis titles of a dataset.
type Labels struct {
	X string `json:"x,omitempty" yaml:"x,omitempty" koanf:"x"`
	Y string `json:"y,omitempty" yaml:"y,omitempty" koanf:"y"`
	Z string `json:"z,omitempty" yaml:"z,omitempty" koanf:"z"`
}

// merge returns l with every non-empty field of override applied.
func (l Labels) merge(override Labels) Labels {
	if override.X != "" {
		l.X = override.X
	}
	if override.Y != "" {
		l.Y = override.Y
	}
	if override.Z != "" {
		l.Z = override.Z
	}
	return l
}

// Options controls how a table is loaded.
type Options struct {
	// Kind forces the dataset kind. KindAuto infers it.
	Kind Kind
	// Labels override header labels field by field.
	Labels Labels
}

// Dataset is an immutable snapshot of one loaded table.
type Dataset struct {
	raw    RawTable
	class  Classification
	rows   []Row
	ranges Ranges
	labels Labels
	err    error
}

// Load classifies raw, parses its rows and computes ranges and labels.
// It always returns a non-nil Dataset. When the data is invalid the dataset
// has KindInvalid and the returned error is the cached classification error.
func Load(raw RawTable, opts Options) (*Dataset, error) {
	raw = raw.Clone()

	var (
		class Classification
		rows  []Row
		err   error
	)
	if opts.Kind == KindAuto {
		class, err = Classify(raw)
		if err == nil {
			start := 0
			if class.HasLabels {
				start = 1
			}
			rows, err = parseRows(raw[start:], start, class.Kind)
		}
	} else {
		hasLabels := len(raw) > 0 && isHeader(raw[0])
		class, rows, err = ParseAs(raw, opts.Kind, hasLabels)
	}

	if err != nil {
		ds := &Dataset{
			raw:   raw,
			class: Classification{Kind: KindInvalid, HasLabels: class.HasLabels, Signature: class.Signature},
			err:   err,
		}
		ds.labels = opts.Labels
		return ds, err
	}

	ds := &Dataset{raw: raw, class: class, rows: rows}
	ds.ranges = computeRanges(class, rows)
	ds.labels = headerLabels(raw, class).merge(opts.Labels)
	return ds, nil
}

// WithKind re-derives the dataset under an explicit kind and returns a new
// snapshot. The receiver is left untouched.
func (d *Dataset) WithKind(kind Kind) (*Dataset, error) {
	return Load(d.raw, Options{Kind: kind, Labels: d.labels})
}

// Raw returns the table the dataset was built from. Callers must not modify it.
func (d *Dataset) Raw() RawTable { return d.raw }

// Classification returns the classifier verdict.
func (d *Dataset) Classification() Classification { return d.class }

// Kind returns the dataset kind.
func (d *Dataset) Kind() Kind { return d.class.Kind }

// Dimensions returns 2 or 3 for valid data and 0 otherwise.
func (d *Dataset) Dimensions() int { return d.class.Dimensions }

// HasLabels reports whether the first raw row is a header.
func (d *Dataset) HasLabels() bool { return d.class.HasLabels }

// Animable reports whether the rows carry an animation tail.
func (d *Dataset) Animable() bool { return d.class.Animable }

// TailLength returns the number of animation tail columns.
func (d *Dataset) TailLength() int { return d.class.TailLength }

// Rows returns the parsed rows. Callers must not modify them.
func (d *Dataset) Rows() []Row { return d.rows }

// Len returns the number of parsed rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Ranges returns the per-axis ranges.
func (d *Dataset) Ranges() Ranges { return d.ranges }

// Labels returns the axis titles.
func (d *Dataset) Labels() Labels { return d.labels }

// Valid reports whether the dataset can be laid out.
func (d *Dataset) Valid() bool {
	return d != nil && d.err == nil && d.class.Kind != KindInvalid
}

// Err returns the cached classification error, or nil for valid data.
func (d *Dataset) Err() error {
	if d == nil {
		return nil
	}
	return d.err
}

// TickLabels returns the row labels of categorical data, in row order.
func (d *Dataset) TickLabels() []string {
	if d.class.Kind != KindCategorical {
		return nil
	}
	out := make([]string, len(d.rows))
	for i, r := range d.rows {
		out[i] = r.Label
	}
	return out
}

// Point returns the base coordinates of row i. Categorical rows use their
// index as x. y is zero for two-dimensional data.
func (d *Dataset) Point(i int) (x, y, z float64) {
	r := d.rows[i]
	if d.class.Kind == KindCategorical {
		return float64(i), 0, r.Values[0]
	}
	if d.class.Dimensions == 3 {
		return r.Values[0], r.Values[1], r.Values[2]
	}
	return r.Values[0], 0, r.Values[1]
}

// Tail returns the animation tail values of row i.
func (d *Dataset) Tail(i int) []float64 {
	r := d.rows[i]
	base := d.class.Dimensions
	if d.class.Kind == KindCategorical {
		base = 1
	}
	if base >= len(r.Values) {
		return nil
	}
	return r.Values[base:]
}

// Summary is a serializable overview of a dataset.
type Summary struct {
	Classification `yaml:",inline"`
	Rows           int    `json:"rows" yaml:"rows"`
	Ranges         Ranges `json:"ranges" yaml:"ranges"`
	Labels         Labels `json:"labels" yaml:"labels"`
	Error          string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary returns a serializable overview of the dataset.
func (d *Dataset) Summary() Summary {
	s := Summary{
		Classification: d.class,
		Rows:           len(d.rows),
		Ranges:         d.ranges,
		Labels:         d.labels,
	}
	if d.err != nil {
		s.Error = d.err.Error()
	}
	return s
}

// computeRanges returns the extremal values per axis, widening any
// degenerate range by one.
func computeRanges(class Classification, rows []Row) Ranges {
	var r Ranges
	if len(rows) == 0 {
		return r
	}

	column := func(idx int) minmax.F64 {
		var m minmax.F64
		m.SetInfinity()
		for _, row := range rows {
			m.FitValInRange(row.Values[idx])
		}
		return m
	}

	zIdx := class.Dimensions - 1
	tailStart := class.Dimensions
	if class.Kind == KindCategorical {
		r.X = minmax.F64{Min: 0, Max: float64(len(rows) - 1)}
		zIdx = 0
		tailStart = 1
	} else {
		r.X = column(0)
		if class.Dimensions == 3 {
			r.Y = column(1)
		}
	}
	r.Z = column(zIdx)

	if class.TailLength > 0 {
		r.ZAnim = r.Z
		for t := 0; t < class.TailLength; t++ {
			r.ZAnim.FitInRange(column(tailStart + t))
		}
	}

	widen(&r.X)
	widen(&r.Z)
	if class.Dimensions == 3 && class.Kind == KindNumerical {
		widen(&r.Y)
	}
	if class.TailLength > 0 {
		widen(&r.ZAnim)
	}
	return r
}

func widen(m *minmax.F64) {
	if m.Min == m.Max {
		m.Max++
	}
}

// headerLabels reads axis titles from the header row.
func headerLabels(raw RawTable, class Classification) Labels {
	if !class.HasLabels || len(raw) == 0 {
		return Labels{}
	}
	h := raw[0]
	if class.Kind == KindNumerical && class.Dimensions == 3 && len(h) >= 3 {
		return Labels{X: h[0], Y: h[1], Z: h[2]}
	}
	if len(h) >= 2 {
		return Labels{X: h[0], Z: h[1]}
	}
	return Labels{}
}
