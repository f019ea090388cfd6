package datalist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/flowcanvas/pkg/errors"
)

// MongoStore persists data lists in a MongoDB collection, one document
// per list. It is the backend for multi-user deployments where the file
// store's single-writer model falls short.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "flowcanvas"
	Collection string // defaults to "data_lists"
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "flowcanvas"
	}
	if cfg.Collection == "" {
		cfg.Collection = "data_lists"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "pinging mongodb at %s", cfg.URI)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Create adds a new empty list. List names must be unique.
func (s *MongoStore) Create(ctx context.Context, name, description string) (*List, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "list %q already exists", name)
	}

	now := time.Now().UTC()
	l := &List{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Items:       []Item{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.coll.InsertOne(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Get returns the list with the given id.
func (s *MongoStore) Get(ctx context.Context, id string) (*List, error) {
	var l List
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeListNotFound, "list %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// All returns every list in creation order.
func (s *MongoStore) All(ctx context.Context) ([]*List, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lists []*List
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// AddItem appends an item to the list with the given id.
func (s *MongoStore) AddItem(ctx context.Context, listID string, data map[string]any) (*Item, error) {
	item := Item{ID: uuid.NewString(), Data: data, AddedAt: time.Now().UTC()}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": listID},
		bson.M{
			"$push": bson.M{"items": item},
			"$set":  bson.M{"updated_at": item.AddedAt},
		})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, errors.New(errors.ErrCodeListNotFound, "list %s not found", listID)
	}
	return &item, nil
}

// Delete removes the list with the given id.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeListNotFound, "list %s not found", id)
	}
	return nil
}

// Search returns items whose payload values contain the query. Matching
// happens client-side with the same semantics as the file store.
func (s *MongoStore) Search(ctx context.Context, query string) ([]Match, error) {
	lists, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return searchLists(lists, query), nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
