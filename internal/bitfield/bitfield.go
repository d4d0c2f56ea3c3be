// Package bitfield reads and writes packed sub-fields of small unsigned integers.
package bitfield

import "golang.org/x/exp/constraints"

// Descriptor locates a sub-field: Width bits starting at bit Pos.
type Descriptor struct {
	Pos   uint8
	Width uint8
}

// Mask returns the unshifted mask for the descriptor's width.
func Mask[T constraints.Unsigned](d Descriptor) T {
	return T(1)<<d.Width - 1
}

// Get extracts the sub-field described by d from v.
func Get[T constraints.Unsigned](v T, d Descriptor) T {
	return (v >> d.Pos) & Mask[T](d)
}

// Set returns v with the sub-field described by d replaced by x.
// x is masked to the field width; bits outside the field are untouched.
func Set[T constraints.Unsigned](v, x T, d Descriptor) T {
	m := Mask[T](d)
	return v&^(m<<d.Pos) | (x&m)<<d.Pos
}

// Has reports whether a one-bit field is set.
func Has[T constraints.Unsigned](v T, d Descriptor) bool {
	return Get(v, d) != 0
}
