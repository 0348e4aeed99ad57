package cache

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey identifies a layout computed from a dataset.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every chart option that changes layout geometry.
type LayoutKeyOpts struct {
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Margin      float64  `json:"margin"`
	TextColor   string   `json:"text_color"`
	Percentage  bool     `json:"percentage"`
	LeaderLines bool     `json:"leader_lines"`
	HoleRatio   float64  `json:"hole_ratio"`
	Palette     []string `json:"palette,omitempty"`
	ColorKey    string   `json:"color_key"`
}

// ArtifactKeyOpts holds every render option that changes artifact bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	ChartID  string  `json:"chart_id,omitempty"`
	Title    string  `json:"title,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
