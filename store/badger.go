package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Maxbrain0/blogger/model"
	"github.com/dgraph-io/badger/v4"
)

const (
	postKeyPrefix     = CollectionName + ":"
	databaseKeyPrefix = "meta:db:"
	collectionKey     = "meta:collection:" + CollectionName
)

// Badger stores posts as JSON documents in an embedded badger database.
// It follows the same count rules as Mongo so the API behaves the same
// whichever one is configured.
type Badger struct {
	db   *badger.DB
	name string
}

// OpenBadger opens a badger database at path, or an in-memory one when path
// is empty.
func OpenBadger(path, name string) (*Badger, error) {
	opts := badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return &Badger{db: db, name: name}, nil
}

// Name returns the logical database name
func (b *Badger) Name() string {
	return b.name
}

// Close closes the badger database
func (b *Badger) Close(_ context.Context) error {
	return b.db.Close()
}

// List returns every post in key order
func (b *Badger) List(_ context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(postKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post model.Post
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &post)
			}); err != nil {
				return err
			}
			posts = append(posts, post)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Get looks a post up by id; a missing post yields nil, nil
func (b *Badger) Get(_ context.Context, id string) (model.Post, error) {
	var post model.Post
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		post, err = getPost(txn, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return post, nil
}

// Insert stores doc under its id, generating one if needed. Inserting over
// an existing id fails the way a duplicate primary key does.
func (b *Badger) Insert(_ context.Context, doc model.Post) (model.Post, error) {
	post := withID(doc)
	var inserted int64
	err := b.db.Update(func(txn *badger.Txn) error {
		n, err := putNew(txn, post)
		inserted = n
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	if err := expectOne("insert", inserted); err != nil {
		return nil, err
	}
	return post, nil
}

// Update merges patch into the post at id. A missing post or a patch that
// leaves the post unchanged counts as zero modified documents.
func (b *Badger) Update(_ context.Context, id string, patch model.Post) (model.Post, error) {
	fields := patchFields(patch)
	var merged model.Post
	var modified int64

	err := b.db.Update(func(txn *badger.Txn) error {
		existing, err := getPost(txn, id)
		if err != nil || existing == nil {
			return err
		}

		before, err := json.Marshal(existing)
		if err != nil {
			return err
		}
		merged = existing.Clone()
		for k, v := range fields {
			merged[k] = v
		}
		after, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		if bytes.Equal(before, after) {
			return nil
		}

		modified = 1
		return txn.Set(postKey(id), after)
	})
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	if err := expectOne("update", modified); err != nil {
		return nil, err
	}
	merged.SetID(id)
	return merged, nil
}

// Delete removes the post at id
func (b *Badger) Delete(_ context.Context, id string) (bool, error) {
	var deleted int64
	err := b.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(postKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		deleted = 1
		return txn.Delete(postKey(id))
	})
	if err != nil {
		return false, fmt.Errorf("delete post %s: %w", id, err)
	}
	if err := expectOne("delete", deleted); err != nil {
		return false, err
	}
	return true, nil
}

// CreateDatabase records the database name. It fails if it already exists,
// which callers are expected to ignore.
func (b *Badger) CreateDatabase(_ context.Context) error {
	key := []byte(databaseKeyPrefix + b.name)
	return b.db.Update(func(txn *badger.Txn) error {
		created, err := setIfAbsent(txn, key)
		if err != nil {
			return err
		}
		if !created {
			return fmt.Errorf("database %q already exists", b.name)
		}
		return nil
	})
}

// CreateCollection marks the posts collection as created, reporting false
// when it already was.
func (b *Badger) CreateCollection(_ context.Context) (bool, error) {
	var created bool
	err := b.db.Update(func(txn *badger.Txn) error {
		var err error
		created, err = setIfAbsent(txn, []byte(collectionKey))
		return err
	})
	if err != nil {
		return false, fmt.Errorf("create collection %s: %w", CollectionName, err)
	}
	return created, nil
}

// InsertMany stores all docs in one transaction
func (b *Badger) InsertMany(_ context.Context, docs []model.Post) (int, error) {
	var inserted int
	err := b.db.Update(func(txn *badger.Txn) error {
		for _, doc := range docs {
			n, err := putNew(txn, withID(doc))
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("insert posts: %w", err)
	}
	return inserted, nil
}

func postKey(id interface{}) []byte {
	return []byte(fmt.Sprintf("%s%v", postKeyPrefix, id))
}

func getPost(txn *badger.Txn, id string) (model.Post, error) {
	item, err := txn.Get(postKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var post model.Post
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &post)
	})
	return post, err
}

// putNew writes post unless its key is taken and reports how many documents
// it wrote.
func putNew(txn *badger.Txn, post model.Post) (int64, error) {
	id, _ := post.ID()
	key := postKey(id)

	_, err := txn.Get(key)
	if err == nil {
		return 0, fmt.Errorf("duplicate primary key %v", id)
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return 0, err
	}

	data, err := json.Marshal(post)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal post: %v", err)
	}
	if err := txn.Set(key, data); err != nil {
		return 0, err
	}
	return 1, nil
}

func setIfAbsent(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return false, err
	}
	return true, txn.Set(key, []byte{1})
}
