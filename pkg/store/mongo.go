package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/matzehuels/mazegen/pkg/errors"
)

const mongoTimeout = 5 * time.Second

// MongoStore keeps records in a MongoDB collection keyed by _id.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	owned      bool
}

// NewMongoStore connects to uri and uses database.collection. Close
// disconnects the client.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	cctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect to mongo")
	}
	if err := client.Ping(cctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "ping mongo")
	}
	s := NewMongoStoreFromClient(client, database, collection)
	s.owned = true
	return s, nil
}

// NewMongoStoreFromClient uses an existing client, which Close leaves
// connected.
func NewMongoStoreFromClient(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

// Save inserts or replaces the record.
func (s *MongoStore) Save(ctx context.Context, rec *Record) error {
	if err := errs.ValidateID(rec.ID); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	filter := bson.M{"_id": rec.ID}
	update := bson.M{
		"$set": bson.M{
			"width":     rec.Width,
			"height":    rec.Height,
			"seed":      int64(rec.Seed),
			"format":    rec.Format,
			"complete":  rec.Complete,
			"data":      rec.Data,
			"createdAt": rec.CreatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errs.Wrap(errs.ErrCodeNetwork, err, "save maze %s", rec.ID)
	}
	return nil
}

// mongoRecord mirrors Record with a signed seed, since BSON has no uint64.
type mongoRecord struct {
	ID        string    `bson:"_id"`
	Width     int       `bson:"width"`
	Height    int       `bson:"height"`
	Seed      int64     `bson:"seed"`
	Format    string    `bson:"format"`
	Complete  bool      `bson:"complete"`
	Data      []byte    `bson:"data"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (m mongoRecord) record() *Record {
	return &Record{
		ID:        m.ID,
		Width:     m.Width,
		Height:    m.Height,
		Seed:      uint64(m.Seed),
		Format:    m.Format,
		Complete:  m.Complete,
		Data:      m.Data,
		CreatedAt: m.CreatedAt,
	}
}

// Get retrieves a record by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var m mongoRecord
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.New(errs.ErrCodeNotFound, "maze %q not found", id)
		}
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "get maze %s", id)
	}
	return m.record(), nil
}

// List returns the newest records first, without their data.
func (s *MongoStore) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"data": 0})
	cur, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "list mazes")
	}
	defer cur.Close(ctx)

	var out []*Record
	for cur.Next(ctx) {
		var m mongoRecord
		if err := cur.Decode(&m); err != nil {
			return nil, errs.Wrap(errs.ErrCodeMalformedInput, err, "decode maze record")
		}
		out = append(out, m.record())
	}
	if err := cur.Err(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "list mazes")
	}
	return out, nil
}

// Delete removes a record.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errs.Wrap(errs.ErrCodeNetwork, err, "delete maze %s", id)
	}
	if res.DeletedCount == 0 {
		return errs.New(errs.ErrCodeNotFound, "maze %q not found", id)
	}
	return nil
}

// Close disconnects the client if the store created it.
func (s *MongoStore) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
