package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const documentsCollection = "documents"

// MongoStore persists documents in a MongoDB collection, one document per
// artifact, keyed by container+name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *slog.Logger
	now    func() time.Time
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, uri, database string, logger *slog.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	logger.Info("connected to mongodb", "database", database)

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(documentsCollection),
		logger: logger.With("component", "mongo_store"),
		now:    time.Now,
	}, nil
}

func (m *MongoStore) Name() string { return "mongodb" }

// Put inserts a document, suffixing the name with underscores until no
// existing document in the container carries it.
func (m *MongoStore) Put(ctx context.Context, container, name string, content []byte, kind string) (*Document, error) {
	for {
		exists, err := m.nameExists(ctx, container, name)
		if err != nil {
			return nil, fmt.Errorf("checking name %q: %w", name, err)
		}
		if !exists {
			break
		}
		name += "_"
	}

	doc := Document{
		ID:        uuid.NewString(),
		Container: container,
		Name:      name,
		Kind:      kind,
		Size:      int64(len(content)),
		Content:   content,
		CreatedAt: m.now(),
	}

	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("inserting document %q: %w", name, err)
	}

	m.logger.Debug("document stored", "container", container, "name", name, "size", doc.Size)
	return &doc, nil
}

// List returns the container's documents in insertion order.
func (m *MongoStore) List(ctx context.Context, container string) ([]Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := m.coll.Find(ctx, bson.M{"container": container}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing container %q: %w", container, err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding documents: %w", err)
	}
	return docs, nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoStore) nameExists(ctx context.Context, container, name string) (bool, error) {
	err := m.coll.FindOne(ctx, bson.M{"container": container, "name": name}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
