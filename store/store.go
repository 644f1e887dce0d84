// Package store holds the blog post repository adapters and the database
// bootstrap that runs when the process starts.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maxbrain0/blogger/model"
	"github.com/google/uuid"
)

// CollectionName is the single collection every post lives in
const CollectionName = "blogposts"

// ErrUnexpectedCount is matched by every *CountError
var ErrUnexpectedCount = errors.New("unexpected affected count")

// CountError reports a write that went through without a driver error but
// touched a number of documents other than the one expected.
type CountError struct {
	Op   string
	Want int64
	Got  int64
}

func (e *CountError) Error() string {
	return fmt.Sprintf("%s: expected %d document(s) affected, got %d", e.Op, e.Want, e.Got)
}

// Is lets errors.Is(err, ErrUnexpectedCount) match
func (e *CountError) Is(target error) bool {
	return target == ErrUnexpectedCount
}

func expectOne(op string, got int64) error {
	if got != 1 {
		return &CountError{Op: op, Want: 1, Got: got}
	}
	return nil
}

// Store is the full surface of a post store: the five request-time
// operations plus the calls used once at startup.
type Store interface {
	List(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, id string) (model.Post, error)
	Insert(ctx context.Context, doc model.Post) (model.Post, error)
	Update(ctx context.Context, id string, patch model.Post) (model.Post, error)
	Delete(ctx context.Context, id string) (bool, error)

	CreateDatabase(ctx context.Context) error
	CreateCollection(ctx context.Context) (bool, error)
	InsertMany(ctx context.Context, docs []model.Post) (int, error)

	Name() string
	Close(ctx context.Context) error
}

// newID generates a primary key in the same shape the posts API has always
// handed out: a random UUID string.
func newID() string {
	return uuid.NewString()
}

// withID returns a copy of doc that carries an id, generating one if needed
func withID(doc model.Post) model.Post {
	out := doc.Clone()
	if _, ok := out.ID(); !ok {
		out.SetID(newID())
	}
	return out
}

// patchFields strips the id from a patch; ids are never rewritten
func patchFields(patch model.Post) model.Post {
	out := patch.Clone()
	delete(out, model.FieldID)
	delete(out, "_id")
	return out
}

var (
	_ Store = (*Mongo)(nil)
	_ Store = (*Badger)(nil)
)
