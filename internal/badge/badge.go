package badge

// Color is a semantic badge color understood by the dashboard
type Color string

const (
	Blue      Color = "blue"
	Green     Color = "green"
	Yellow    Color = "yellow"
	Gray      Color = "gray"
	Red       Color = "red"
	Orange    Color = "orange"
	Purple    Color = "purple"
	RedStrong Color = "red-strong"
)

// Badge is the rendered form of an enum value
type Badge struct {
	Label string `json:"label"`
	Color Color  `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// Lookup returns the badge for key. Unknown keys have no badge.
func Lookup[K comparable](table map[K]Badge, key K) (Badge, bool) {
	b, ok := table[key]
	return b, ok
}

// Ptr is Lookup for JSON payloads: nil when key has no badge
func Ptr[K comparable](table map[K]Badge, key K) *Badge {
	b, ok := table[key]
	if !ok {
		return nil
	}
	return &b
}

// Missing returns the keys that have no entry in table, in input order
func Missing[K comparable](table map[K]Badge, keys []K) []K {
	var out []K
	for _, k := range keys {
		if _, ok := table[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}
