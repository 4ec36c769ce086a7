package tree

// Value holds an attribute value that is either a single scalar or a list
// of scalars accumulated from repeated group codes (see spec.md §3,
// "Heterogeneous attribute values"). Every accessor normalises on read so
// callers never need to type-switch.
type Value struct {
	scalar string
	list   []string
	isList bool
}

// Scalar wraps a single string value.
func Scalar(s string) Value {
	return Value{scalar: s}
}

// List wraps an ordered slice of string values.
func List(ss []string) Value {
	return Value{list: ss, isList: true}
}

// IsList reports whether the value was built from a repeated group code.
func (v Value) IsList() bool { return v.isList }

// String returns the first (or only) value, or "" if empty.
func (v Value) String() string {
	if v.isList {
		if len(v.list) == 0 {
			return ""
		}
		return v.list[0]
	}
	return v.scalar
}

// Strings normalises the value to a slice: a non-empty scalar becomes a
// single-element slice, an empty scalar nil, a list is returned as-is.
func (v Value) Strings() []string {
	if v.isList {
		return v.list
	}
	if v.scalar == "" {
		return nil
	}
	return []string{v.scalar}
}

// Append promotes a scalar to a list (or extends an existing list),
// mirroring the parser rule: "If the attribute is already present,
// promote to a list (append)."
func (v Value) Append(s string) Value {
	if !v.isList {
		if v.scalar == "" {
			return Scalar(s)
		}
		return List([]string{v.scalar, s})
	}
	return List(append(append([]string{}, v.list...), s))
}

// Empty reports whether the value is an empty scalar (including the zero
// Value). A list is never Empty, even one with no elements.
func (v Value) Empty() bool {
	return !v.isList && v.scalar == ""
}
