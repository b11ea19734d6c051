// Package collection converts ordered collections into fixed-size arrays.
//
// Go has no separate boxed collection type, so the closest equivalent of
// "collection to typed array" is a copy into a freshly allocated slice whose
// length is fixed at creation. The result never aliases the input.
package collection

// Fruits is the fixed input of the toarray demo.
var Fruits = []string{"apple", "banana", "cherry"}

// ToArray returns a new slice with the same length and the same elements
// in the same order as items. Writes to the result do not affect items.
// A nil input yields an empty, non-nil slice.
func ToArray[T any](items []T) []T {
	// make+copy instead of append(items[:0:0], ...) so that a nil input
	// still produces a non-nil result.
	out := make([]T, len(items))
	copy(out, items)
	return out
}
