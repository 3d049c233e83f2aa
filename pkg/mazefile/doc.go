// Package mazefile reads and writes maze files.
//
// # Raw Files
//
// A raw file is exactly the output of [maze.Grid.Encode]: a width/height
// header followed by the packed cell nibbles. Raw files carry no format tag,
// so the reader must be told which header width to expect:
//
//	g, err := mazefile.Load("maze.bin", mazefile.Options{Format: maze.FormatLegacy})
//
// # Compressed Files
//
// With [Options.Compress] the encoded maze is wrapped in a small container:
//
//	"MZGZ" | version (1 byte) | format (1 byte) | zstd(encoded maze)
//
// The container records the header format, so [Read] and [Load] detect it
// and ignore [Options.Format].
//
// # JSON
//
// [WriteJSON] and [ReadJSON] exchange a grid as a JSON object with the cell
// nibbles in row-major order. This is what the HTTP API serves.
package mazefile
