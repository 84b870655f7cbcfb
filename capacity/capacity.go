// Package capacity defines profiles of per-vertex matching capacities,
// commonly called b-values: the number of distinct neighbors to which a vertex
// may be matched.
package capacity

import "github.com/pkg/errors"

// Profile maps a profile index and an original vertex identifier to the
// capacity of that vertex. Implementations must be deterministic and pure,
// and safe for concurrent use.
type Profile interface {
	Capacity(profile int, vertex int64) int
}

// Func adapts an ordinary function to a Profile.
type Func func(profile int, vertex int64) int

// Capacity calls f(profile, vertex).
func (f Func) Capacity(profile int, vertex int64) int { return f(profile, vertex) }

// Modulo is the default Profile family. Profile zero assigns a capacity of
// one to every vertex (an ordinary matching). Profile p assigns capacities
// cycling through [1, p+1] with the vertex identifier.
var Modulo = Func(func(profile int, vertex int64) int {
	if profile < 0 {
		return 0
	}
	var m = int64(profile) + 1
	var r = (vertex + int64(profile)) % m
	if r < 0 {
		r += m
	}
	return 1 + int(r)
})

// Linear assigns a capacity of p+1 to every vertex under profile p.
var Linear = Func(func(profile int, _ int64) int {
	if profile < 0 {
		return 0
	}
	return profile + 1
})

// Constant returns a Profile which assigns capacity |b| to every vertex,
// regardless of profile.
func Constant(b int) Profile {
	return Func(func(int, int64) int { return b })
}

// ByName returns the named built-in Profile.
func ByName(name string) (Profile, error) {
	switch name {
	case "modulo":
		return Modulo, nil
	case "linear":
		return Linear, nil
	default:
		return nil, errors.Errorf("unknown capacity profile %q", name)
	}
}
