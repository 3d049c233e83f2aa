package cache

// Keyer derives cache keys. Keys for equal options are equal; keys for
// different options differ.
type Keyer interface {
	MazeKey(opts MazeKeyOpts) string
	RenderKey(mazeHash string, opts RenderKeyOpts) string
}

// MazeKeyOpts identifies one generated maze.
type MazeKeyOpts struct {
	Width  int    `json:"w"`
	Height int    `json:"h"`
	StartX int    `json:"sx"`
	StartY int    `json:"sy"`
	Seed   uint64 `json:"seed"`
	Format string `json:"fmt"`
	Steps  int    `json:"steps,omitempty"`
}

// RenderKeyOpts identifies one rendering of a maze.
type RenderKeyOpts struct {
	Kind  string  `json:"kind"`
	Style string  `json:"style,omitempty"`
	Solve bool    `json:"solve,omitempty"`
	Scale float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes options under fixed prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// MazeKey returns "maze:<sha256 of opts>".
func (DefaultKeyer) MazeKey(opts MazeKeyOpts) string {
	return hashKey("maze", opts)
}

// RenderKey returns "render:<sha256 of hash and opts>".
func (DefaultKeyer) RenderKey(mazeHash string, opts RenderKeyOpts) string {
	return hashKey("render", mazeHash, opts)
}
