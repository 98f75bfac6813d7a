// Package tensor provides the padded dense containers the expression engine reads from and writes to.
package tensor

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Numeric is the constraint for container element types.
// Floating point types get IEEE semantics; signed integers are exact.
type Numeric interface {
	constraints.Float | constraints.Signed
}

// Lanes is the SIMD lane width every buffer is padded to.
const Lanes = 8

// PaddedLen rounds n up to the next multiple of Lanes.
func PaddedLen(n int) int {
	return (n + Lanes - 1) / Lanes * Lanes
}

// DataType represents runtime type information for containers.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Int
	Int8
	Int16

	// Unknown is reported for named types built on top of the basic ones.
	Unknown DataType = -1
)

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Int:
		return "int"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	default:
		return "unknown"
	}
}

// Size returns the size in bytes of one element, or 0 for Unknown.
func (dt DataType) Size() int {
	switch dt {
	case Int:
		return bits.UintSize / 8
	case Float64, Int64:
		return 8
	case Float32, Int32:
		return 4
	case Int16:
		return 2
	case Int8:
		return 1
	default:
		return 0
	}
}

// DataTypeOf infers the DataType of T.
func DataTypeOf[T Numeric]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case int:
		return Int
	case int8:
		return Int8
	case int16:
		return Int16
	default:
		return Unknown
	}
}
