package settings

import (
	"slices"
)

// Set is the stored value of a multi-select field: enum values without an
// implied order. It is kept sorted and free of duplicates so equal sets
// compare and serialize identically.
type Set []int32

// NewSet builds a normalized set
func NewSet(values ...int32) Set {
	if len(values) == 0 {
		return nil
	}
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

// Has reports whether v is a member
func (s Set) Has(v int32) bool {
	_, found := slices.BinarySearch(s, v)
	return found
}

// With returns the set plus v. Adding a member twice is a no-op.
func (s Set) With(v int32) Set {
	i, found := slices.BinarySearch(s, v)
	if found {
		return s.Clone()
	}
	out := make(Set, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, v)
	return append(out, s[i:]...)
}

// Without returns the set minus v
func (s Set) Without(v int32) Set {
	i, found := slices.BinarySearch(s, v)
	if !found {
		return s.Clone()
	}
	out := make(Set, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Toggle adds v if missing and removes it otherwise, so toggling twice
// restores the original set
func (s Set) Toggle(v int32) Set {
	if s.Has(v) {
		return s.Without(v)
	}
	return s.With(v)
}

// Clone returns an independent copy
func (s Set) Clone() Set {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}

// Equal compares two sets
func (s Set) Equal(other Set) bool {
	return slices.Equal(s, other)
}
