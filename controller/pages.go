package controller

import (
	"net/http"

	"github.com/Maxbrain0/blogger/view"
	"github.com/labstack/echo/v4"
)

// Pages serves the HTML shell and the partial templates the client-side
// router loads.
type Pages struct {
	Views *view.Renderer
}

// Index renders the application shell. It is also the handler for every
// path nothing else matched, so deep links work with HTML5 history routing.
func (pages *Pages) Index(c echo.Context) error {
	return c.Render(http.StatusOK, view.Index, nil)
}

// Partial renders partials/:name, or 404 when there is no such partial
func (pages *Pages) Partial(c echo.Context) error {
	name := "partials/" + c.Param("name")
	if !pages.Views.Has(name) {
		return echo.ErrNotFound
	}
	return c.Render(http.StatusOK, name, nil)
}
