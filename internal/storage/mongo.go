package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"menuscrape/internal/types"
)

// MongoWriter inserts records into a MongoDB collection, one document per
// (product, size) pair.
type MongoWriter struct {
	client     *mongo.Client
	collection *mongo.Collection
	mu         sync.Mutex
	count      int
	logger     *slog.Logger
}

// NewMongoWriter connects to MongoDB and prepares the target collection.
func NewMongoWriter(uri, database, collection string, logger *slog.Logger) (*MongoWriter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoWriter{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_writer"),
	}, nil
}

func (w *MongoWriter) Name() string { return "mongodb" }

func (w *MongoWriter) Append(rec types.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc := rec.Fields()
	doc["_scraped_at"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := w.collection.InsertOne(ctx, doc); err != nil {
		return &types.StorageError{Backend: "mongodb", Err: err}
	}
	w.count++
	return nil
}

func (w *MongoWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.logger.Info("records inserted", "collection", w.collection.Name(), "records", w.count)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return w.client.Disconnect(ctx)
}
