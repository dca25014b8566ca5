package osufile

// Dict is a string-keyed map that remembers insertion order. Setting an
// existing key overwrites its value but keeps the key's original slot,
// which is what keeps re-serialized sections in source order.
type Dict struct {
	keys   []string
	values map[string]any
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{values: make(map[string]any)}
}

// Get returns the value stored for key.
func (d *Dict) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set stores value under key. A repeated key keeps its first position.
func (d *Dict) Set(key string, value any) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// SetDefault stores value only if key is not already present.
func (d *Dict) SetDefault(key string, value any) {
	if _, ok := d.values[key]; !ok {
		d.Set(key, value)
	}
}

// Delete removes key and its slot.
func (d *Dict) Delete(key string) {
	if _, ok := d.values[key]; !ok {
		return
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.keys)
}
