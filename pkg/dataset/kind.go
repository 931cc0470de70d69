package dataset

import (
	"fmt"
	"strings"
)

// Kind is the inferred shape of a dataset.
type Kind int

// Dataset kinds. KindAuto is only meaningful as a load option and asks the
// classifier to infer the kind.
const (
	KindAuto Kind = iota
	KindInvalid
	KindNumerical
	KindCategorical
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindInvalid:
		return "invalid"
	case KindNumerical:
		return "numerical"
	case KindCategorical:
		return "categorical"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a case-insensitive kind name. An empty string is auto.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return KindAuto, nil
	case "invalid":
		return KindInvalid, nil
	case "numerical", "numeric":
		return KindNumerical, nil
	case "categorical", "category":
		return KindCategorical, nil
	default:
		return KindAuto, fmt.Errorf("unknown dataset kind %q (expected auto, numerical or categorical)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
