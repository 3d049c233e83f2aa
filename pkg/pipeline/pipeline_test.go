package pipeline

import (
	"testing"

	errs "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
)

func TestValidateKind(t *testing.T) {
	tests := []struct {
		kind    string
		wantErr bool
	}{
		{"ascii", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"nodelink", false},
		{"SVG", true}, // case-sensitive
		{"json", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateKind(tt.kind)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateKind(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
		}
	}
}

func TestOptionsSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if o.Width != DefaultWidth || o.Height != DefaultHeight {
		t.Errorf("defaults = %dx%d", o.Width, o.Height)
	}
	if o.Logger == nil {
		t.Error("logger not defaulted")
	}
	if o.Seeded() {
		t.Error("zero options should not be seeded")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"ok", Options{Width: 5, Height: 5}, ""},
		{"zero width", Options{Width: 0, Height: 5}, errs.ErrCodeInvalidDimensions},
		{"too tall", Options{Width: 5, Height: MaxDimension + 1}, errs.ErrCodeInvalidDimensions},
		{"start outside", Options{Width: 5, Height: 5, Start: maze.Point{X: 5}}, errs.ErrCodeOutOfBounds},
		{"negative start", Options{Width: 5, Height: 5, Start: maze.Point{Y: -1}}, errs.ErrCodeOutOfBounds},
		{"legacy too wide", Options{Width: 256, Height: 5, Format: maze.FormatLegacy}, errs.ErrCodeInvalidDimensions},
		{"legacy max", Options{Width: 255, Height: 255, Format: maze.FormatLegacy}, ""},
		{"unknown format", Options{Width: 5, Height: 5, Format: 9}, errs.ErrCodeInvalidFormat},
		{"negative steps", Options{Width: 5, Height: 5, MaxSteps: -1}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestMazeKeyOpts(t *testing.T) {
	seed := uint64(9)
	o := Options{Width: 4, Height: 3, Start: maze.Point{X: 1, Y: 2}, Seed: &seed, Format: maze.FormatLegacy, MaxSteps: 5}
	k := o.MazeKeyOpts()
	if k.Width != 4 || k.Height != 3 || k.StartX != 1 || k.StartY != 2 || k.Seed != 9 || k.Format != "legacy" || k.Steps != 5 {
		t.Errorf("MazeKeyOpts() = %+v", k)
	}
}

func TestRenderOptionsValidate(t *testing.T) {
	ok := []RenderOptions{{Kind: "ascii"}, {Kind: "ascii", Style: "compact"}, {Kind: "svg", Style: "ignored"}}
	for _, o := range ok {
		if err := o.Validate(); err != nil {
			t.Errorf("%+v: %v", o, err)
		}
	}
	bad := []RenderOptions{{Kind: "bmp"}, {Kind: "ascii", Style: "fancy"}}
	for _, o := range bad {
		if err := o.Validate(); err == nil {
			t.Errorf("%+v: expected error", o)
		}
	}
}
