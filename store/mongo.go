package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maxbrain0/blogger/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// namespaceExists is the server error code returned when creating a
// collection that is already there
const namespaceExists = 48

// Mongo stores posts in a MongoDB collection. The *mongo.Database handle is
// owned by the caller and shared by every request.
type Mongo struct {
	DB         *mongo.Database
	Collection *mongo.Collection
}

// NewMongo returns a store over the blogposts collection of db
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		DB:         db,
		Collection: db.Collection(CollectionName),
	}
}

// ConnectMongo opens a client to host:port and pings it so a bad address
// fails here rather than on the first request.
func ConnectMongo(ctx context.Context, host string, port int, dbName string) (*Mongo, error) {
	uri := fmt.Sprintf("mongodb://%s:%d", host, port)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", uri, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping %s: %w", uri, err)
	}

	return NewMongo(client.Database(dbName)), nil
}

// Name returns the database name
func (m *Mongo) Name() string {
	return m.DB.Name()
}

// Close disconnects the underlying client
func (m *Mongo) Close(ctx context.Context) error {
	return m.DB.Client().Disconnect(ctx)
}

// List returns every post in the order the server hands them back
func (m *Mongo) List(ctx context.Context) ([]model.Post, error) {
	cursor, err := m.Collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]model.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, fromBSON(doc))
	}
	return posts, nil
}

// Get looks a post up by id. A missing post is not an error: both return
// values are nil.
func (m *Mongo) Get(ctx context.Context, id string) (model.Post, error) {
	var doc bson.M
	err := m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return fromBSON(doc), nil
}

// Insert stores doc, generating an id when it has none, and returns the
// stored post including its id.
func (m *Mongo) Insert(ctx context.Context, doc model.Post) (model.Post, error) {
	post := withID(doc)

	res, err := m.Collection.InsertOne(ctx, toBSON(post))
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	var inserted int64
	if res != nil && res.InsertedID != nil {
		inserted = 1
	}
	if err := expectOne("insert", inserted); err != nil {
		return nil, err
	}
	return post, nil
}

// Update merges the top-level fields of patch into the post at id and
// returns the merged post. The server has to report exactly one modified
// document, so a patch that changes nothing fails.
func (m *Mongo) Update(ctx context.Context, id string, patch model.Post) (model.Post, error) {
	fields := patchFields(patch)
	if len(fields) == 0 {
		return nil, expectOne("update", 0)
	}

	res, err := m.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	if err := expectOne("update", res.ModifiedCount); err != nil {
		return nil, err
	}

	post, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, expectOne("update", 0)
	}
	post.SetID(id)
	return post, nil
}

// Delete removes the post at id
func (m *Mongo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := m.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete post %s: %w", id, err)
	}
	if err := expectOne("delete", res.DeletedCount); err != nil {
		return false, err
	}
	return true, nil
}

// CreateDatabase checks the database answers. MongoDB creates databases
// implicitly on first write so there is nothing to create.
func (m *Mongo) CreateDatabase(ctx context.Context) error {
	return m.DB.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// CreateCollection creates the blogposts collection, reporting false if it
// was already there.
func (m *Mongo) CreateCollection(ctx context.Context) (bool, error) {
	err := m.DB.CreateCollection(ctx, CollectionName)
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == namespaceExists {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create collection %s: %w", CollectionName, err)
	}
	return true, nil
}

// InsertMany bulk inserts docs and returns how many were stored
func (m *Mongo) InsertMany(ctx context.Context, docs []model.Post) (int, error) {
	batch := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		batch = append(batch, toBSON(withID(doc)))
	}

	res, err := m.Collection.InsertMany(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("insert posts: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// toBSON maps the API id field onto the MongoDB primary key
func toBSON(p model.Post) bson.M {
	doc := bson.M{}
	for k, v := range p {
		if k == "_id" {
			continue
		}
		if k == model.FieldID {
			doc["_id"] = v
			continue
		}
		doc[k] = v
	}
	return doc
}

func fromBSON(doc bson.M) model.Post {
	p := model.Post{}
	for k, v := range doc {
		if k == "_id" {
			p[model.FieldID] = v
			continue
		}
		p[k] = v
	}
	return p
}
