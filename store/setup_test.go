package store

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *log.Logger {
	l := log.New("test")
	l.SetOutput(buf)
	l.SetLevel(log.DEBUG)
	return l
}

func TestSetupSeedsOnlyOnce(t *testing.T) {
	ctx := context.Background()
	b := newTestBadger(t)
	buf := &bytes.Buffer{}
	logger := newTestLogger(buf)

	Setup(ctx, b, logger)

	posts, err := b.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Contains(t, buf.String(), "Inserted 2 sample blog posts")

	Setup(ctx, b, logger)

	posts, err = b.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestSetupDoesNotSeedExistingCollection(t *testing.T) {
	ctx := context.Background()
	b := newTestBadger(t)

	created, err := b.CreateCollection(ctx)
	require.NoError(t, err)
	require.True(t, created)

	Setup(ctx, b, newTestLogger(&bytes.Buffer{}))

	posts, err := b.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

type brokenStore struct {
	*Badger
}

func (brokenStore) CreateCollection(context.Context) (bool, error) {
	return false, errors.New("no route to host")
}

func TestSetupSwallowsErrors(t *testing.T) {
	buf := &bytes.Buffer{}
	s := brokenStore{newTestBadger(t)}

	assert.NotPanics(t, func() {
		Setup(context.Background(), s, newTestLogger(buf))
	})
	assert.Contains(t, buf.String(), "no route to host")
}
