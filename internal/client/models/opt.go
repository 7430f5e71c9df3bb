package models

// Opt is a value with an explicit presence flag. A zero Opt is absent,
// which is distinct from a present zero value.
type Opt[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Set: true}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// OrElse returns the value if present, otherwise def.
func (o Opt[T]) OrElse(def T) T {
	if !o.Set {
		return def
	}
	return o.Value
}

// apply overwrites o with u when u is present.
func (o *Opt[T]) apply(u Opt[T]) {
	if u.Set {
		*o = u
	}
}
