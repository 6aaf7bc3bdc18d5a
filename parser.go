package regionmap

import "fmt"

// Parser divides an image into fixed-size cells and classifies each one
// against a color map. A Parser holds only configuration and may be reused
// for any number of scans.
type Parser struct {
	// CellWidth and CellHeight are the partition size in pixels.
	CellWidth  int
	CellHeight int
	// Threshold is the minimum fraction of a cell's pixels, in [0, 1],
	// that must match a region for the cell to belong to it.
	Threshold float64
	// Transform maps grid indices to cell coordinates.
	Transform CellTransform
	// Verbose logs every partition through Logf.
	Verbose bool

	colors *ColorMap
}

// ParserOption is a functional option for configuring a Parser.
type ParserOption func(*Parser)

// NewParser creates a Parser for colors with the given options.
// Defaults: Threshold=0, Transform=DefaultCellTransform(). The cell size
// has no default and must be set with WithCellSize.
func NewParser(colors *ColorMap, opts ...ParserOption) *Parser {
	p := &Parser{
		Transform: DefaultCellTransform(),
		colors:    colors,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithCellSize sets the partition size in pixels.
func WithCellSize(width, height int) ParserOption {
	return func(p *Parser) {
		p.CellWidth = width
		p.CellHeight = height
	}
}

// WithThreshold sets the minimum matching fraction, in [0, 1].
func WithThreshold(threshold float64) ParserOption {
	return func(p *Parser) {
		p.Threshold = threshold
	}
}

// WithTransform replaces the grid index to cell coordinate mapping.
func WithTransform(t CellTransform) ParserOption {
	return func(p *Parser) {
		p.Transform = t
	}
}

// WithVerbose enables per-partition logging.
func WithVerbose(verbose bool) ParserOption {
	return func(p *Parser) {
		p.Verbose = verbose
	}
}

// Colors returns the color map the parser classifies against.
func (p *Parser) Colors() *ColorMap {
	return p.colors
}

// validate checks the configuration before any pixel is read.
func (p *Parser) validate() error {
	if p.colors == nil {
		return fmt.Errorf("%w: parser has no color map", ErrInvalidInput)
	}
	if p.CellWidth <= 0 || p.CellHeight <= 0 {
		return fmt.Errorf("%w: partition size [ %d x %d ] must be positive",
			ErrInvalidInput, p.CellWidth, p.CellHeight)
	}
	if p.Threshold < 0 || p.Threshold > 1 {
		return fmt.Errorf("%w: threshold %g is out of range [0, 1]",
			ErrInvalidInput, p.Threshold)
	}
	return p.Transform.Validate()
}
