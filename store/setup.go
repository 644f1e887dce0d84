package store

import (
	"context"

	"github.com/Maxbrain0/blogger/model"
)

// Logger is the part of echo.Logger the bootstrap writes to
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Setup makes sure the database and the blogposts collection exist. When the
// collection is created by this call it is filled with the sample posts.
//
// Setup never fails: anything that goes wrong is logged and dropped, and the
// per-request operations report their own errors if the collection is
// really missing. It is safe to run on every start.
func Setup(ctx context.Context, s Store, logger Logger) {
	if err := s.CreateDatabase(ctx); err != nil {
		logger.Debugf("create database %q: %v", s.Name(), err)
	}

	created, err := s.CreateCollection(ctx)
	if err != nil {
		logger.Warnf("create collection %q in db %q: %v", CollectionName, s.Name(), err)
		return
	}
	if !created {
		return
	}

	n, err := s.InsertMany(ctx, model.SeedPosts())
	if err != nil {
		logger.Warnf("insert sample blog posts: %v", err)
		return
	}
	logger.Infof("Inserted %d sample blog posts into collection '%s' in db '%s'", n, CollectionName, s.Name())
}
