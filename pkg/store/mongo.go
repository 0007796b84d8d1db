package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/autogrid/pkg/board"
	"github.com/matzehuels/autogrid/pkg/cache"
	"github.com/matzehuels/autogrid/pkg/errors"
)

// Mongo defaults.
const (
	DefaultDatabase   = "autogrid"
	DefaultCollection = "boards"
)

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore keeps records in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and pings the primary, retrying transient
// failures.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongodb")
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	var r Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeNotFound, "board %q not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "find board %q", id)
	}
	return &r, nil
}

func (s *MongoStore) Put(ctx context.Context, b *board.Board) (*Record, error) {
	b = cloneBoard(b)
	if b.ID == "" {
		b.ID = board.NewID()
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set":         bson.M{"board": b, "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": b.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "save board %q", b.ID)
	}
	return s.Get(ctx, b.ID)
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "delete board %q", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeNotFound, "board %q not found", id)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]*Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(listLimit(limit)))
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list boards")
	}
	var out []*Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode boards: %w", err)
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
