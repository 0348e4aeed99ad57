package palette

// Ordinal maps discrete string keys onto a palette.
//
// Keys receive the next palette slot the first time they are seen, either
// through the initial domain or through Color. Equal keys always resolve to
// the same colour. An Ordinal is not safe for concurrent use; build one per
// layout pass.
type Ordinal struct {
	colors Palette
	index  map[string]int
	domain []string
}

// NewOrdinal creates a scale over colors with the given initial domain.
// Duplicate domain keys are ignored after their first occurrence.
func NewOrdinal(colors Palette, domain ...string) *Ordinal {
	o := &Ordinal{
		colors: colors,
		index:  make(map[string]int, len(domain)),
	}
	for _, k := range domain {
		o.add(k)
	}
	return o
}

func (o *Ordinal) add(key string) int {
	if i, ok := o.index[key]; ok {
		return i
	}
	i := len(o.domain)
	o.index[key] = i
	o.domain = append(o.domain, key)
	return i
}

// Color returns the colour for key, extending the domain if key is new.
func (o *Ordinal) Color(key string) string {
	return o.colors.At(o.add(key))
}

// Domain returns the keys in the order they were added.
func (o *Ordinal) Domain() []string {
	return append([]string(nil), o.domain...)
}
