// Package texture interns texture names into small integer identifiers so
// the rest of the pipeline can group and compare by integer instead of by
// string, per spec.md §4.E/§9: "hash once at parse time and compare
// integers."
package texture

// ID is a grouping key for a texture name, the FNV-32 hash of its bytes.
// Collisions are resolved by the Registry's string cache (the name that
// first produced a given hash wins the slot; a second distinct name with
// the same hash is treated as the same texture, matching pt_map.h's
// ptm__string_cache, which the spec notes leaves collision handling to the
// parser).
type ID uint32

const (
	fnvOffsetBasis uint32 = 2166136261
	fnvPrime       uint32 = 16777619
)

// Hash computes the FNV-32 hash pt_map.h's ptm__create_hash_fnv32 uses.
func Hash(name string) ID {
	h := fnvOffsetBasis
	for i := 0; i < len(name); i++ {
		h ^= uint32(name[i])
		h *= fnvPrime
	}
	return ID(h)
}

// Registry interns texture names to IDs, caching one canonical name per
// hash so repeated lookups of the same texture across a map's faces share
// one entry.
type Registry struct {
	names map[ID]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[ID]string)}
}

// Intern records name (if its hash hasn't been seen) and returns its ID.
func (r *Registry) Intern(name string) ID {
	id := Hash(name)
	if _, ok := r.names[id]; !ok {
		r.names[id] = name
	}
	return id
}

// Name returns the canonical name cached for id, or "" if none was
// interned.
func (r *Registry) Name(id ID) string {
	return r.names[id]
}

// Len returns the number of distinct textures interned.
func (r *Registry) Len() int {
	return len(r.names)
}
