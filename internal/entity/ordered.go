package entity

// ordered is a string-keyed map that remembers insertion order. Overwriting a key keeps its
// original position.
type ordered[V any] struct {
	keys  []string
	items map[string]V
}

func newOrdered[V any]() ordered[V] {
	return ordered[V]{items: make(map[string]V)}
}

func (o *ordered[V]) get(key string) (V, bool) {
	v, ok := o.items[key]
	return v, ok
}

func (o *ordered[V]) has(key string) bool {
	_, ok := o.items[key]
	return ok
}

func (o *ordered[V]) set(key string, v V) {
	if o.items == nil {
		o.items = make(map[string]V)
	}
	if _, ok := o.items[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.items[key] = v
}

func (o *ordered[V]) remove(key string) {
	if _, ok := o.items[key]; !ok {
		return
	}
	delete(o.items, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

func (o *ordered[V]) names() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

func (o *ordered[V]) values() []V {
	out := make([]V, 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, o.items[k])
	}
	return out
}

func (o *ordered[V]) len() int {
	return len(o.keys)
}
