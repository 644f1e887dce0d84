package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/Maxbrain0/blogger/view"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages(t *testing.T) {
	r, err := view.NewFromFS(fstest.MapFS{
		"index.html":        {Data: []byte(`<html>shell</html>`)},
		"partials/one.html": {Data: []byte(`<p>one</p>`)},
	})
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = r
	pages := &Pages{Views: r}
	e.GET("/", pages.Index)
	e.GET("/partials/:name", pages.Partial)
	e.GET("/*", pages.Index)

	for _, target := range []string{"/", "/readPost/abc", "/some/deep/link"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, "<html>shell</html>", rec.Body.String(), target)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/partials/one", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>one</p>", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/partials/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
