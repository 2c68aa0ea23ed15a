package validation

// SchemaConfig controls schema compilation limits and caching.
type SchemaConfig struct {
	MaxSchemaSize  int // bytes
	MaxSchemaDepth int

	AllowRemoteRef bool
	AllowedSchemes []string

	EnableCache  bool
	MaxCacheSize int

	AssertFormat bool
}

// DefaultSchemaConfig returns conservative defaults: no remote $ref,
// formats asserted, compiled schemas cached.
func DefaultSchemaConfig() *SchemaConfig {
	return &SchemaConfig{
		MaxSchemaSize:  64 * 1024,
		MaxSchemaDepth: 10,
		AllowRemoteRef: false,
		AllowedSchemes: []string{"file"},
		EnableCache:    true,
		MaxCacheSize:   256,
		AssertFormat:   true,
	}
}
