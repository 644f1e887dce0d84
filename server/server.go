// Package server builds the echo instance: middleware, static files and the
// routes for the JSON API and the page shell.
package server

import (
	"github.com/Maxbrain0/blogger/controller"
	"github.com/Maxbrain0/blogger/util"
	"github.com/Maxbrain0/blogger/view"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Address is the fixed listen address
const Address = ":3000"

// Options configures New
type Options struct {
	Store     controller.PostStore
	Renderer  *view.Renderer
	PublicDir string
}

// New returns an echo instance with every route registered
func New(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = opts.Renderer

	// PUT and DELETE may arrive as a POST carrying an override
	e.Pre(middleware.MethodOverrideWithConfig(middleware.MethodOverrideConfig{
		Getter: util.MethodOverride,
	}))

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if opts.PublicDir != "" {
		e.Use(middleware.Static(opts.PublicDir))
	}

	setupRoutes(e, &controller.Posts{Store: opts.Store}, &controller.Pages{Views: opts.Renderer})
	return e
}

func setupRoutes(e *echo.Echo, postsController *controller.Posts, pagesController *controller.Pages) {
	e.GET("/", pagesController.Index)
	e.GET("/partials/:name", pagesController.Partial)

	api := e.Group("/api")
	api.GET("/posts", postsController.ListPosts)
	api.GET("/post/:id", postsController.GetPost)
	api.POST("/post", postsController.CreatePost)
	api.PUT("/post/:id", postsController.UpdatePost)
	api.DELETE("/post/:id", postsController.DeletePost)

	// everything else gets the shell so the client-side router can take over
	e.GET("/*", pagesController.Index)
}
