package sources

// Config is a key-value map for source-type-specific configuration.
// Implementations interpret the keys they declare in ConfigSpec.
type Config map[string]any

// String returns the string value for key, or "" when absent.
func (c Config) String(key string) string {
	s, _ := c[key].(string)
	return s
}
