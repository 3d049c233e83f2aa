package mazefile

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"

	errs "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
)

// Magic opens every compressed maze file.
const Magic = "MZGZ"

// Version is the container version written by [Write].
const Version = 1

const containerHeader = len(Magic) + 2

// MaxDecodedSize bounds the decompressed size of a container. A square maze
// of about 23000 cells per side fits.
const MaxDecodedSize = 256 << 20

// Options configures reading and writing.
type Options struct {
	// Format is the header layout of raw files.
	Format maze.Format
	// Compress wraps the encoded maze in a zstd container on write.
	Compress bool
}

var encoders = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil)
		return enc
	},
}

var decoders = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecodedSize))
		return dec
	},
}

// Compressed reports whether data starts with the container magic.
func Compressed(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Magic))
}

// Marshal encodes g as file bytes.
func Marshal(g *maze.Grid, opts Options) ([]byte, error) {
	raw, err := g.Encode(opts.Format)
	if err != nil {
		return nil, err
	}
	if !opts.Compress {
		return raw, nil
	}
	if len(raw) > MaxDecodedSize {
		return nil, errs.New(errs.ErrCodeInvalidDimensions, "%dx%d maze is too large to compress", g.Width(), g.Height())
	}

	var buf bytes.Buffer
	buf.WriteString(Magic)
	buf.WriteByte(Version)
	buf.WriteByte(byte(opts.Format))

	enc := encoders.Get().(*zstd.Encoder)
	defer encoders.Put(enc)
	enc.Reset(&buf)
	if _, err := enc.Write(raw); err != nil {
		_ = enc.Close()
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "compress")
	}
	if err := enc.Close(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "compress")
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes file bytes. Compressed data is detected by its magic and
// decoded with the format recorded in the container.
func Unmarshal(data []byte, opts Options) (*maze.Grid, error) {
	if !Compressed(data) {
		return maze.Decode(data, opts.Format)
	}
	if len(data) < containerHeader {
		return nil, errs.New(errs.ErrCodeMalformedInput, "truncated container header")
	}
	if v := data[len(Magic)]; v != Version {
		return nil, errs.New(errs.ErrCodeMalformedInput, "unsupported container version %d", v)
	}
	format := maze.Format(data[len(Magic)+1])
	if maze.HeaderSize(format) == 0 {
		return nil, errs.New(errs.ErrCodeMalformedInput, "container declares unknown format %d", format)
	}

	dec := decoders.Get().(*zstd.Decoder)
	defer decoders.Put(dec)
	if err := dec.Reset(bytes.NewReader(data[containerHeader:])); err != nil {
		return nil, errs.Wrap(errs.ErrCodeMalformedInput, err, "decompress")
	}

	// The inner header fixes the payload size, so nothing past it is inflated.
	hs := maze.HeaderSize(format)
	hdr := make([]byte, hs)
	if _, err := io.ReadFull(dec, hdr); err != nil {
		return nil, errs.Wrap(errs.ErrCodeMalformedInput, err, "decompress header")
	}
	w, h, err := maze.DecodeHeader(hdr, format)
	if err != nil {
		return nil, err
	}
	size := uint64(hs) + (uint64(w)*uint64(h)+1)/2
	if size > MaxDecodedSize {
		return nil, errs.New(errs.ErrCodeMalformedInput, "%dx%d maze exceeds the %d-byte container limit", w, h, MaxDecodedSize)
	}
	raw := make([]byte, size)
	copy(raw, hdr)
	if _, err := io.ReadFull(dec, raw[hs:]); err != nil {
		return nil, errs.Wrap(errs.ErrCodeMalformedInput, err, "decompress payload")
	}
	return maze.Decode(raw, format)
}

// Write encodes g to w. Write does not close w.
func Write(w io.Writer, g *maze.Grid, opts Options) error {
	data, err := Marshal(g, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "write maze")
	}
	return nil
}

// Read decodes a maze from r. Read does not close r.
func Read(r io.Reader, opts Options) (*maze.Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "read maze")
	}
	return Unmarshal(data, opts)
}

// Load reads the maze file at path.
func Load(path string, opts Options) (*maze.Grid, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "maze file %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "open %s", path)
	}
	g, err := Unmarshal(data, opts)
	if err != nil {
		return nil, errs.Wrap(errs.GetCode(err), err, "load %s", path)
	}
	return g, nil
}

// Save writes g to path, replacing any existing file.
func Save(path string, g *maze.Grid, opts Options) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	data, err := Marshal(g, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "create %s", path)
	}
	return nil
}
