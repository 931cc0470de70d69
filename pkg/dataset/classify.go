package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/datavis/pkg/core"
)

// RawTable is rows x columns of text as split from a delimited source.
type RawTable [][]string

// Clone returns a deep copy of the table.
func (t RawTable) Clone() RawTable {
	if t == nil {
		return nil
	}
	out := make(RawTable, len(t))
	for i, row := range t {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Signature counts how the cells of one row parse.
type Signature struct {
	Floats        int  `json:"floats" yaml:"floats"`
	Strings       int  `json:"strings" yaml:"strings"`
	FirstIsString bool `json:"first_is_string" yaml:"first_is_string"`
}

// Classification is the result of analysing a RawTable.
type Classification struct {
	Kind       Kind      `json:"kind" yaml:"kind"`
	Dimensions int       `json:"dimensions" yaml:"dimensions"`
	HasLabels  bool      `json:"has_labels" yaml:"has_labels"`
	Animable   bool      `json:"animable" yaml:"animable"`
	TailLength int       `json:"tail_length" yaml:"tail_length"`
	Signature  Signature `json:"signature" yaml:"signature"`
}

// parseCell parses a numeric cell. Non-finite values count as text.
func parseCell(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func rowSignature(row []string) Signature {
	var sig Signature
	for i, cell := range row {
		if _, ok := parseCell(cell); ok {
			sig.Floats++
			continue
		}
		sig.Strings++
		if i == 0 {
			sig.FirstIsString = true
		}
	}
	return sig
}

// isHeader reports whether no cell of row parses as a number.
func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	for _, cell := range row {
		if _, ok := parseCell(cell); ok {
			return false
		}
	}
	return true
}

// checkShape verifies every row has the column count of row 0.
func checkShape(raw RawTable) error {
	if len(raw) == 0 {
		return core.NewInvalidDataError("table is empty")
	}
	width := len(raw[0])
	if width == 0 {
		return &core.InvalidDataError{Row: 0, Column: -1, Reason: "row has no columns"}
	}
	for i, row := range raw {
		if len(row) != width {
			return &core.InvalidDataError{
				Row:    i,
				Column: -1,
				Reason: "expected " + strconv.Itoa(width) + " columns, got " + strconv.Itoa(len(row)),
			}
		}
	}
	return nil
}

// Classify infers kind, dimensionality, header presence and animation tail
// from raw. Every data row must share the first data row's signature.
// On failure the returned classification has KindInvalid and zero dimensions
// and the error is a *core.InvalidDataError.
func Classify(raw RawTable) (Classification, error) {
	invalid := Classification{Kind: KindInvalid}

	if err := checkShape(raw); err != nil {
		return invalid, err
	}

	start := 0
	if isHeader(raw[0]) {
		invalid.HasLabels = true
		start = 1
	}
	if start >= len(raw) {
		return invalid, core.NewInvalidDataError("table has a header but no data rows")
	}

	sig := rowSignature(raw[start])
	for i := start + 1; i < len(raw); i++ {
		if got := rowSignature(raw[i]); got != sig {
			return invalid, &core.InvalidDataError{
				Row:    i,
				Column: -1,
				Reason: "row shape differs from the first data row",
			}
		}
	}

	c := Classification{HasLabels: start == 1, Signature: sig}
	switch {
	case sig.FirstIsString && sig.Strings == 1 && sig.Floats > 0:
		c.Kind = KindCategorical
		c.Dimensions = 2
		c.Animable = sig.Floats > 1
		c.TailLength = sig.Floats - 1
	case sig.Strings == 0 && sig.Floats >= 2:
		c.Kind = KindNumerical
		c.Dimensions = min(sig.Floats, 3)
		c.Animable = sig.Floats > 3
		c.TailLength = sig.Floats - c.Dimensions
	default:
		invalid.Signature = sig
		return invalid, core.NewInvalidDataError(
			"unsupported row shape: %d numeric and %d text columns", sig.Floats, sig.Strings)
	}

	if c.TailLength < 0 {
		invalid.Signature = sig
		return invalid, core.NewInvalidDataError("negative animation tail length %d", c.TailLength)
	}
	return c, nil
}

// ParseAs parses raw under an explicit kind instead of the inferred one.
// Every cell that must be numeric for kind has to parse; the first one that
// does not is reported with its row and column.
func ParseAs(raw RawTable, kind Kind, hasLabels bool) (Classification, []Row, error) {
	invalid := Classification{Kind: KindInvalid, HasLabels: hasLabels}
	if err := checkShape(raw); err != nil {
		return invalid, nil, err
	}

	start := 0
	if hasLabels {
		start = 1
	}
	if start >= len(raw) {
		return invalid, nil, core.NewInvalidDataError("table has a header but no data rows")
	}

	width := len(raw[0])
	c := Classification{Kind: kind, HasLabels: hasLabels}

	switch kind {
	case KindCategorical:
		if width < 2 {
			return invalid, nil, core.NewInvalidDataError("categorical data needs a label and a value column")
		}
		c.Dimensions = 2
		c.TailLength = width - 2
		c.Signature = Signature{Floats: width - 1, Strings: 1, FirstIsString: true}
	case KindNumerical:
		if width < 2 {
			return invalid, nil, core.NewInvalidDataError("numerical data needs at least two columns")
		}
		c.Dimensions = min(width, 3)
		c.TailLength = width - c.Dimensions
		c.Signature = Signature{Floats: width}
	default:
		return invalid, nil, core.NewConfigurationError("kind", "cannot parse data as %s", kind)
	}
	c.Animable = c.TailLength > 0

	rows, err := parseRows(raw[start:], start, kind)
	if err != nil {
		return invalid, nil, err
	}
	return c, rows, nil
}

// parseRows converts data rows to typed rows. offset is the index of the
// first data row in the raw table and is used for error positions.
func parseRows(data RawTable, offset int, kind Kind) ([]Row, error) {
	rows := make([]Row, 0, len(data))
	for i, raw := range data {
		var row Row
		first := 0
		if kind == KindCategorical {
			row.Label = strings.TrimSpace(raw[0])
			first = 1
		}
		row.Values = make([]float64, 0, len(raw)-first)
		for j := first; j < len(raw); j++ {
			v, ok := parseCell(raw[j])
			if !ok {
				return nil, &core.InvalidDataError{
					Row:    i + offset,
					Column: j,
					Reason: "cannot parse " + strconv.Quote(raw[j]) + " as a number",
				}
			}
			row.Values = append(row.Values, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
