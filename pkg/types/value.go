package types

import (
	"fmt"
	"strconv"
)

// Kind names one of the supported component value variants.
type Kind string

// Value kinds. A column holds values of a single kind by construction; a
// mismatch is only detected when a value is cast.
const (
	KindPoint  Kind = "point"
	KindF32    Kind = "f32"
	KindU32    Kind = "u32"
	KindUsize  Kind = "usize"
	KindBool   Kind = "bool"
	KindMarker Kind = "marker"
	KindColor  Kind = "color"
)

// validKinds is the set of recognized value kinds.
var validKinds = map[Kind]bool{
	KindPoint:  true,
	KindF32:    true,
	KindU32:    true,
	KindUsize:  true,
	KindBool:   true,
	KindMarker: true,
	KindColor:  true,
}

// Kinds lists every supported kind in declaration order.
var Kinds = []Kind{KindPoint, KindF32, KindU32, KindUsize, KindBool, KindMarker, KindColor}

// Value is a component or resource value. The set of implementations is
// closed: only the types declared in this package satisfy it.
type Value interface {
	// Kind reports the variant of the value.
	Kind() Kind

	// String renders the value for reports and error messages.
	String() string

	isValue()
}

// F32 is a 32-bit float value.
type F32 float32

// U32 is an unsigned 32-bit integer value. Entity ids use this kind.
type U32 uint32

// Usize is an unsigned size or count value.
type Usize uint64

// Bool is a boolean value. The delete flag uses this kind.
type Bool bool

// Marker is a free-form text label.
type Marker string

func (F32) Kind() Kind    { return KindF32 }
func (U32) Kind() Kind    { return KindU32 }
func (Usize) Kind() Kind  { return KindUsize }
func (Bool) Kind() Kind   { return KindBool }
func (Marker) Kind() Kind { return KindMarker }

func (v F32) String() string    { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func (v U32) String() string    { return strconv.FormatUint(uint64(v), 10) }
func (v Usize) String() string  { return strconv.FormatUint(uint64(v), 10) }
func (v Bool) String() string   { return strconv.FormatBool(bool(v)) }
func (v Marker) String() string { return string(v) }

func (F32) isValue()    {}
func (U32) isValue()    {}
func (Usize) isValue()  {}
func (Bool) isValue()   {}
func (Marker) isValue() {}

// IsValidKind reports whether k is a recognized kind.
func IsValidKind(k Kind) bool {
	return validKinds[k]
}

// ParseKind converts a kind name to a Kind.
// Returns ErrUnknownKind if the name is not recognized.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if !validKinds[k] {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// ZeroValue returns the zero value for the given kind.
// Returns ErrUnknownKind if the kind is not recognized.
func ZeroValue(k Kind) (Value, error) {
	switch k {
	case KindPoint:
		return Point{}, nil
	case KindF32:
		return F32(0), nil
	case KindU32:
		return U32(0), nil
	case KindUsize:
		return Usize(0), nil
	case KindBool:
		return Bool(false), nil
	case KindMarker:
		return Marker(""), nil
	case KindColor:
		return Color{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
}

// formatFloat renders a float32 the same way F32.String does.
func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
