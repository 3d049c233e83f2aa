package maze

import (
	"bytes"
	"testing"

	errs "github.com/matzehuels/mazegen/pkg/errors"
)

// corridor builds a 3x1 grid with both passages open.
func corridor(t *testing.T) *Grid {
	t.Helper()
	g, err := New(3, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = g.Link(Point{0, 0}, Point{1, 0})
	_ = g.Link(Point{1, 0}, Point{2, 0})
	return g
}

func TestEncodeLayout(t *testing.T) {
	g := corridor(t)

	tests := []struct {
		name   string
		format Format
		want   []byte
	}{
		{
			name:   "current",
			format: FormatCurrent,
			want:   []byte{3, 0, 0, 0, 1, 0, 0, 0, 0x45, 0x10},
		},
		{
			name:   "legacy",
			format: FormatLegacy,
			want:   []byte{3, 1, 0x45, 0x10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.Encode(tt.format)
			if err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode = % x, want % x", got, tt.want)
			}
			if len(got) != EncodedLen(3, 1, tt.format) {
				t.Errorf("len = %d, EncodedLen = %d", len(got), EncodedLen(3, 1, tt.format))
			}
		})
	}
}

func TestEncodeLeavesGridIntact(t *testing.T) {
	g := corridor(t)
	before := g.Clone()
	if _, err := g.Encode(FormatCurrent); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if !g.Equal(before) {
		t.Error("Encode mutated the grid")
	}
	if _, err := g.Encode(FormatCurrent); err != nil {
		t.Errorf("second Encode error: %v", err)
	}
}

func TestDecode(t *testing.T) {
	data := []byte{2, 0, 0, 0, 2, 0, 0, 0, 0x62, 0x98}
	g, err := Decode(data, FormatCurrent)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if g.Width() != 2 || g.Height() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", g.Width(), g.Height())
	}
	want := []uint8{0x6, 0x2, 0x9, 0x8}
	for i, w := range want {
		x, y := i%2, i/2
		if got := g.Cell(x, y).Raw(); got != w {
			t.Errorf("cell (%d,%d) = %x, want %x", x, y, got, w)
		}
		if !g.IsDirty(x, y) {
			t.Errorf("cell (%d,%d) not dirty after decode", x, y)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		format Format
	}{
		{"empty", nil, FormatCurrent},
		{"short header", []byte{1, 0, 0}, FormatCurrent},
		{"short legacy header", []byte{1}, FormatLegacy},
		{"zero width", []byte{0, 0, 0, 0, 1, 0, 0, 0, 0}, FormatCurrent},
		{"zero height", []byte{1, 0}, FormatLegacy},
		{"short payload", []byte{3, 3, 0, 0, 0, 0}, FormatLegacy},
		{"odd count short", []byte{3, 0, 0, 0, 1, 0, 0, 0, 0x45}, FormatCurrent},
		{"huge header", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0}, FormatCurrent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data, tt.format)
			if !errs.Is(err, errs.ErrCodeMalformedInput) {
				t.Errorf("Decode error = %v, want %s", err, errs.ErrCodeMalformedInput)
			}
		})
	}
}

func TestUnknownFormat(t *testing.T) {
	g := corridor(t)
	if _, err := g.Encode(Format(9)); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Encode error = %v, want INVALID_FORMAT", err)
	}
	if _, err := Decode([]byte{1, 1, 0}, Format(9)); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Decode error = %v, want INVALID_FORMAT", err)
	}
	if _, _, err := DecodeHeader([]byte{1, 1, 0}, Format(9)); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("DecodeHeader error = %v, want INVALID_FORMAT", err)
	}
}

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		format Format
		w, h   int
		ok     bool
	}{
		{"current", []byte{3, 1, 0, 0, 2, 0, 0, 0}, FormatCurrent, 259, 2, true},
		{"legacy without payload", []byte{7, 5}, FormatLegacy, 7, 5, true},
		{"short", []byte{7}, FormatLegacy, 0, 0, false},
		{"zero height", []byte{7, 0}, FormatLegacy, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := DecodeHeader(tt.data, tt.format)
			if !tt.ok {
				if !errs.Is(err, errs.ErrCodeMalformedInput) {
					t.Errorf("err = %v, want MALFORMED_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeHeader: %v", err)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("DecodeHeader = %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestLegacyOverflow(t *testing.T) {
	g, _ := New(256, 1)
	if _, err := g.Encode(FormatLegacy); !errs.Is(err, errs.ErrCodeInvalidDimensions) {
		t.Errorf("Encode error = %v, want INVALID_DIMENSIONS", err)
	}
	g, _ = New(255, 255)
	if _, err := g.Encode(FormatLegacy); err != nil {
		t.Errorf("255x255 legacy Encode error: %v", err)
	}
}

func TestRoundTripGenerated(t *testing.T) {
	sizes := [][2]int{{1, 1}, {3, 3}, {5, 2}, {7, 7}, {32, 17}}
	for _, format := range []Format{FormatCurrent, FormatLegacy} {
		for _, sz := range sizes {
			g, _ := New(sz[0], sz[1])
			gen, _ := NewGenerator(g, Point{}, WithSeed(uint64(sz[0]*100+sz[1])))
			for gen.HasNext() {
				gen.Step()
			}

			data, err := g.Encode(format)
			if err != nil {
				t.Fatalf("%v %v Encode error: %v", format, sz, err)
			}
			back, err := Decode(data, format)
			if err != nil {
				t.Fatalf("%v %v Decode error: %v", format, sz, err)
			}
			if !g.Equal(back) {
				t.Errorf("%v %v: Decode(Encode(g)) differs from g", format, sz)
			}
		}
	}
}

func TestDecodeEncodeCanonicalPadding(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []byte
	}{
		{
			name:  "even count unchanged",
			input: []byte{2, 1, 0x4f},
			want:  []byte{2, 1, 0x4f},
		},
		{
			name:  "odd count zero pad unchanged",
			input: []byte{3, 1, 0x45, 0x10},
			want:  []byte{3, 1, 0x45, 0x10},
		},
		{
			name:  "odd count garbage pad canonicalized",
			input: []byte{3, 1, 0x45, 0x1f},
			want:  []byte{3, 1, 0x45, 0x10},
		},
		{
			name:  "trailing bytes dropped",
			input: []byte{1, 1, 0x00, 0xaa, 0xbb},
			want:  []byte{1, 1, 0x00},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Decode(tt.input, FormatLegacy)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			got, err := g.Encode(FormatLegacy)
			if err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode(Decode(b)) = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCurrent, false},
		{"current", FormatCurrent, false},
		{"Legacy", FormatLegacy, false},
		{"v2", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
