package mongostore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glidewing/flight-log-etl/internal/domain"
)

// Connect opens and pings a MongoDB client for the given URI.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongodb connection URI is empty")
	}

	clientOptions := options.Client().ApplyURI(uri).
		SetMaxPoolSize(20).
		SetMinPoolSize(2).
		SetConnectTimeout(timeout).
		SetSocketTimeout(2 * timeout)

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, timeout)
	defer cancelPing()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// Collection adapts one MongoDB collection to the sync engine's store
// port. Records are persisted with their BSON field names, matching the
// schema the legacy submission pipeline established.
type Collection[T domain.Keyed] struct {
	db     *mongo.Database
	name   string
	logger *slog.Logger
}

// NewCollection creates a store over db's collection of the given name.
func NewCollection[T domain.Keyed](db *mongo.Database, name string, logger *slog.Logger) *Collection[T] {
	return &Collection[T]{db: db, name: name, logger: logger}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// Backup snapshots the collection into "{name}_{suffix}" using a
// $match/$out aggregation. An existing snapshot of that name is dropped
// first, so same-day re-runs keep exactly one snapshot.
func (c *Collection[T]) Backup(ctx context.Context, suffix string) error {
	backupName := c.name + "_" + suffix

	names, err := c.db.ListCollectionNames(ctx, bson.M{"name": backupName})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	if len(names) > 0 {
		if err := c.db.Collection(backupName).Drop(ctx); err != nil {
			return fmt.Errorf("drop stale backup %s: %w", backupName, err)
		}
	}

	cursor, err := c.db.Collection(c.name).Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{}}},
		{{Key: "$out", Value: backupName}},
	})
	if err != nil {
		return fmt.Errorf("snapshot to %s: %w", backupName, err)
	}
	defer cursor.Close(ctx)

	c.logger.Debug("collection backed up", "collection", c.name, "backup", backupName)
	return nil
}

// DeleteKeys bulk-deletes every stored record matching any of the given
// composite keys.
func (c *Collection[T]) DeleteKeys(ctx context.Context, keys []domain.RecordKey) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(keys))
	for _, k := range keys {
		models = append(models, mongo.NewDeleteManyModel().SetFilter(bson.D{
			{Key: "Date", Value: k.Date},
			{Key: "Aircraft", Value: k.Aircraft},
		}))
	}

	result, err := c.db.Collection(c.name).BulkWrite(ctx, models,
		options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("bulk delete %d keys: %w", len(keys), err)
	}
	return result.DeletedCount, nil
}

// Insert bulk-inserts the given records.
func (c *Collection[T]) Insert(ctx context.Context, records []T) error {
	documents := make([]interface{}, len(records))
	for i, r := range records {
		documents[i] = r
	}
	if _, err := c.db.Collection(c.name).InsertMany(ctx, documents); err != nil {
		return fmt.Errorf("insert %d records: %w", len(records), err)
	}
	return nil
}
