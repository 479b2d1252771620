package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps snapshots in a MongoDB collection, for deployments where
// multiple hosts share one snapshot history.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the "snapshots"
// collection of the given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection("snapshots"),
	}, nil
}

// Save persists a snapshot.
func (s *MongoStore) Save(ctx context.Context, snap Snapshot) error {
	_, err := s.collection.InsertOne(ctx, snap)
	return err
}

// Latest returns the most recent snapshot for a workspace.
func (s *MongoStore) Latest(ctx context.Context, workspace string) (Snapshot, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var snap Snapshot
	err := s.collection.FindOne(ctx, bson.M{"workspace": workspace}, opts).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Snapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// List returns every snapshot for a workspace, newest first.
func (s *MongoStore) List(ctx context.Context, workspace string) ([]Snapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection.Find(ctx, bson.M{"workspace": workspace}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var snaps []Snapshot
	if err := cursor.All(ctx, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}

// Delete removes a snapshot by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
