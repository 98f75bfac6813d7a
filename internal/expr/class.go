package expr

import "fmt"

// Class tells the assignment engine how a node can be evaluated.
type Class int

// Node classes.
const (
	// ClassValue is a directly addressable buffer.
	ClassValue Class = iota
	// ClassSimple is an elementwise combinator that may be streamed over the
	// padded length.
	ClassSimple
	// ClassUnaligned is an elementwise combinator that must not be evaluated past
	// its logical size, e.g. a division whose padding would divide by zero.
	ClassUnaligned
	// ClassSmart is a node that computed its whole result into a cache.
	ClassSmart
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassValue:
		return "Value"
	case ClassSimple:
		return "Simple"
	case ClassUnaligned:
		return "Unaligned"
	case ClassSmart:
		return "Smart"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// unaryClass propagates the class of a unary pass-through node.
func unaryClass(child Class) Class {
	if child == ClassUnaligned {
		return ClassUnaligned
	}
	return ClassSimple
}

// binaryClass propagates the class of a binary node.
func binaryClass(op BinaryOp, lhs, rhs Class) Class {
	if op == OpDiv || lhs == ClassUnaligned || rhs == ClassUnaligned {
		return ClassUnaligned
	}
	return ClassSimple
}
