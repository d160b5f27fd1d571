package driven

// ConfigStore holds user settings as flat dotted keys such as
// "search.max_results" or "ingest.dedup.fold_space".
//
// Typed getters return the zero value when a key is missing or holds
// a value of another type; callers fall back to defaults in that case.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string

	// GetInt accepts any integral number.
	GetInt(key string) int

	// GetFloat accepts integers as well as floats.
	GetFloat(key string) float64

	// GetStringSlice skips non-string elements.
	GetStringSlice(key string) []string

	// Set stores value under key and persists the store.
	Set(key string, value any) error

	// Keys returns every key that is set, sorted.
	Keys() []string
}
