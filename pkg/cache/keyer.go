package cache

// LayoutKeyOpts are the solve options that change a layout result.
type LayoutKeyOpts struct {
	Direction  string `json:"direction"`
	TargetSDK  int    `json:"target_sdk"`
	WidthMode  string `json:"width_mode"`
	Width      int    `json:"width"`
	HeightMode string `json:"height_mode"`
	Height     int    `json:"height"`
}

// ArtifactKeyOpts identify a rendering of a solved layout.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Kind     string  `json:"kind"` // "frames" or a dependency axis
	Detailed bool    `json:"detailed,omitempty"`
	Cols     int     `json:"cols,omitempty"`
	Rows     int     `json:"rows,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey keys a solved layout by document hash and options.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendering of a solved layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every input into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
