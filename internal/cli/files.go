package cli

import (
	"os"
	"path/filepath"
	"strings"

	errs "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/mazefile"
)

// isJSON reports whether path names a JSON maze document.
func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// checkOutput rejects output paths that exist but are not regular files.
func checkOutput(path string) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err == nil && !info.Mode().IsRegular() {
		return errs.New(errs.ErrCodeInvalidPath, "invalid path: %q is not a regular file", path)
	}
	return nil
}

// loadMaze reads a binary maze file, or a JSON document when the name ends
// in .json. Compressed containers are detected automatically.
func loadMaze(path string, f maze.Format) (*maze.Grid, error) {
	if !isJSON(path) {
		return mazefile.Load(path, mazefile.Options{Format: f})
	}
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "maze file %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "open %s", path)
	}
	defer file.Close()
	return mazefile.ReadJSON(file)
}

// saveMaze writes g to path in the format implied by its extension.
func saveMaze(path string, g *maze.Grid, opts mazefile.Options) error {
	if err := checkOutput(path); err != nil {
		return err
	}
	if !isJSON(path) {
		return mazefile.Save(path, g, opts)
	}
	file, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "create %s", path)
	}
	if err := mazefile.WriteJSON(file, g); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}
