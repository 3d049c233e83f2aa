package mazefile

import (
	"encoding/json"
	"io"

	errs "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
)

// Document is the JSON form of a grid.
type Document struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Cells  []int `json:"cells"`
}

// NewDocument captures the cells of g in row-major order.
func NewDocument(g *maze.Grid) Document {
	doc := Document{Width: g.Width(), Height: g.Height(), Cells: make([]int, 0, g.Len())}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			doc.Cells = append(doc.Cells, int(g.Cell(x, y).Raw()))
		}
	}
	return doc
}

// Grid rebuilds the grid. It returns MALFORMED_INPUT when the cell count does
// not match the dimensions or a cell exceeds four bits.
func (d Document) Grid() (*maze.Grid, error) {
	if d.Width > 0 && d.Height > 0 && (len(d.Cells)%d.Width != 0 || len(d.Cells)/d.Width != d.Height) {
		return nil, errs.New(errs.ErrCodeMalformedInput, "%dx%d maze does not match %d cells", d.Width, d.Height, len(d.Cells))
	}
	g, err := maze.New(d.Width, d.Height)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeMalformedInput, err, "invalid dimensions")
	}
	for i, c := range d.Cells {
		if c < 0 || c > 0x0f {
			return nil, errs.New(errs.ErrCodeMalformedInput, "cell %d value %d exceeds 4 bits", i, c)
		}
		g.SetCell(i%d.Width, i/d.Width, maze.Cell(c))
	}
	return g, nil
}

// WriteJSON encodes g as an indented JSON [Document].
func WriteJSON(w io.Writer, g *maze.Grid) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(g)); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode")
	}
	return nil
}

// ReadJSON decodes a JSON [Document] from r.
func ReadJSON(r io.Reader) (*maze.Grid, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeMalformedInput, err, "decode")
	}
	return doc.Grid()
}
