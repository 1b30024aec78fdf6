package text

// DefaultScanLimit is the exclusive upper bound of the codepoint range
// scanned when the main font is loaded.
const DefaultScanLimit rune = 2560000

// Option configures a GlyphManager.
type Option func(*managerConfig)

// managerConfig holds configuration for GlyphManager.
type managerConfig struct {
	cacheDir     string
	scanLimit    rune
	systemFonts  bool
	embeddedData []byte
}

// defaultManagerConfig returns the default manager configuration.
func defaultManagerConfig() managerConfig {
	return managerConfig{
		scanLimit:   DefaultScanLimit,
		systemFonts: true,
	}
}

// WithCacheDir sets the directory where the system font index is cached.
// An empty string selects the user cache directory.
func WithCacheDir(dir string) Option {
	return func(c *managerConfig) {
		c.cacheDir = dir
	}
}

// WithScanLimit sets the exclusive upper bound of the codepoints loaded
// eagerly from the main font. Codepoints below 32 are never scanned.
func WithScanLimit(limit rune) Option {
	return func(c *managerConfig) {
		c.scanLimit = limit
	}
}

// WithoutSystemFonts disables the system font index. The main font then
// resolves to a font file path or the embedded fallback, and
// PrepareFallbackFonts becomes a no-op.
func WithoutSystemFonts() Option {
	return func(c *managerConfig) {
		c.systemFonts = false
	}
}

// WithFallbackFont replaces the embedded font used when no system font
// matches. The data must be a TrueType or OpenType file.
func WithFallbackFont(data []byte) Option {
	return func(c *managerConfig) {
		c.embeddedData = data
	}
}
