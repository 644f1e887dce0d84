package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/Maxbrain0/blogger/model"
	"github.com/Maxbrain0/blogger/store"
	"github.com/Maxbrain0/blogger/util"
	"github.com/labstack/echo/v4"
)

// PostStore is what the posts endpoints need from storage
type PostStore interface {
	List(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, id string) (model.Post, error)
	Insert(ctx context.Context, doc model.Post) (model.Post, error)
	Update(ctx context.Context, id string, patch model.Post) (model.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Posts holds the post store shared by every request and is the receiver of
// the JSON API endpoints.
//
// The read endpoints never answer with an error status: a storage failure is
// a 200 with the body false. The write endpoints answer 500 with an error
// message.
type Posts struct {
	Store PostStore
}

// errorResponse is the body of every failed write
type errorResponse struct {
	Error string `json:"error"`
}

// ListPosts returns every post
func (posts *Posts) ListPosts(c echo.Context) error {
	list, err := posts.Store.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("[ERROR] listPosts: %v", err)
		return c.JSON(http.StatusOK, false)
	}
	return c.JSON(http.StatusOK, list)
}

// GetPost returns the post at :id, or null when there is none
func (posts *Posts) GetPost(c echo.Context) error {
	id := c.Param("id")
	c.Logger().Debugf("singlePost: %s", id)

	post, err := posts.Store.Get(c.Request().Context(), id)
	if err != nil {
		c.Logger().Errorf("[ERROR] findById: %v", err)
		return c.JSON(http.StatusOK, false)
	}
	return c.JSON(http.StatusOK, post)
}

// CreatePost stores the request body as a new post and echoes it back with
// its generated id
func (posts *Posts) CreatePost(c echo.Context) error {
	blogpost, err := util.BindPost(c)
	if err != nil {
		return err
	}

	created, err := posts.Store.Insert(c.Request().Context(), blogpost)
	if errors.Is(err, store.ErrUnexpectedCount) {
		c.Logger().Errorf("[ERROR] Failed to create new blog post: %v (%v)", blogpost, err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "An error occurred when adding the new blogpost",
		})
	}
	if err != nil {
		c.Logger().Errorf("[ERROR] addPost: %v", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "An error occurred when adding the new post (" + err.Error() + ")",
		})
	}
	return c.JSON(http.StatusOK, created)
}

// UpdatePost merges the request body into the post at :id. The id in the
// response is always the one from the path.
func (posts *Posts) UpdatePost(c echo.Context) error {
	id := c.Param("id")
	blogpost, err := util.BindPost(c)
	if err != nil {
		return err
	}
	blogpost.SetID(id)
	c.Logger().Debugf("Updating blogpost: %v", blogpost)

	updated, err := posts.Store.Update(c.Request().Context(), id, blogpost)
	if err != nil {
		c.Logger().Errorf("[ERROR] editPost (%s): %v", id, err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "An error occurred when updating the blogpost with id: " + id,
		})
	}
	updated.SetID(id)
	return c.JSON(http.StatusOK, updated)
}

// DeletePost removes the post at :id
func (posts *Posts) DeletePost(c echo.Context) error {
	id := c.Param("id")
	c.Logger().Debugf("Deleting blogpost: %s", id)

	ok, err := posts.Store.Delete(c.Request().Context(), id)
	if err != nil || !ok {
		c.Logger().Errorf("[ERROR] deletePost (%s): %v", id, err)
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error: "An error occurred when deleting the blogpost with id:" + id,
		})
	}
	return c.JSON(http.StatusOK, true)
}
