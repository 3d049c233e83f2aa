// Package store persists generated mazes so they can be fetched again by ID.
//
// Two backends are provided:
//   - [FileStore]: one JSON file per record, for the CLI and single-node servers
//   - [MongoStore]: a MongoDB collection, for shared deployments
//
// Records hold the encoded maze bytes, not the grid, so any reader can decode
// them with [maze.Decode] and the recorded format.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mazegen/pkg/maze"
)

// Record is one stored maze.
type Record struct {
	ID        string    `json:"id"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Seed      uint64    `json:"seed"`
	Format    string    `json:"format"`
	Complete  bool      `json:"complete"`
	Data      []byte    `json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord captures data, encoded from g in format f, under a fresh ID.
func NewRecord(g *maze.Grid, data []byte, f maze.Format, seed uint64, complete bool) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Width:     g.Width(),
		Height:    g.Height(),
		Seed:      seed,
		Format:    f.String(),
		Complete:  complete,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
}

// Grid decodes the stored bytes.
func (r *Record) Grid() (*maze.Grid, error) {
	f, err := maze.ParseFormat(r.Format)
	if err != nil {
		return nil, err
	}
	return maze.Decode(r.Data, f)
}

// Store is the persistence interface. Get and Delete return a NOT_FOUND error
// for unknown IDs. List returns the newest records first, without Data.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, limit int) ([]*Record, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50
