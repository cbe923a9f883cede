package sources

// ConfigField describes one configuration field for a source type.
type ConfigField struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "string", "number", "bool"
	Required    bool   `json:"required"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
}

// SourceTypeInfo describes a source type and the configuration it expects.
// Returned by Factory.ConfigSpec() and exposed via GET /sources/info and GET /sources/types/:type.
type SourceTypeInfo struct {
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Fields      []ConfigField `json:"fields"`
}
