// Package router wires the HTTP handlers onto the Echo instance. Content
// routes are public and sit behind the redis response cache and the rate
// limiter; account routes are never cached.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/pawnsgambit/club-api/internal/handler"
)

// RegisterRoutes registers the endpoints that carry no middleware. Currently
// that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// ContentHandlers bundles the public content handlers so RegisterContent
// stays a readable list of routes rather than a parade of arguments.
type ContentHandlers struct {
	Events     *handler.EventsHandler
	Podcasts   *handler.PodcastsHandler
	Community  *handler.CommunityHandler
	News       *handler.NewsHandler
	About      *handler.AboutHandler
	Volunteers *handler.VolunteersHandler
}

// RegisterContent registers the public content endpoints under /v1. The
// given middleware (response cache, rate limiter) applies to the whole
// group.
func RegisterContent(e *echo.Echo, h ContentHandlers, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)

	// Club events. Fixed sub-collections are registered before the :id
	// route so "upcoming" is not parsed as an id.
	g.GET("/events", h.Events.List)
	g.GET("/events/upcoming", h.Events.Upcoming)
	g.GET("/events/featured", h.Events.Featured)
	g.GET("/events/past", h.Events.Past)
	g.GET("/events/:id", h.Events.ByID)
	g.POST("/events/:id/register", h.Events.Register)

	// Podcast episodes.
	g.GET("/podcasts", h.Podcasts.List)
	g.GET("/podcasts/featured", h.Podcasts.Featured)
	g.GET("/podcasts/search", h.Podcasts.Search)
	g.GET("/podcasts/:id", h.Podcasts.ByID)
	g.POST("/podcasts/:id/listens", h.Podcasts.IncrementListens)

	// Community members, achievements and stats.
	g.GET("/community/members", h.Community.Members)
	g.GET("/community/members/:id", h.Community.Profile)
	g.GET("/community/search", h.Community.Search)
	g.GET("/community/top", h.Community.Top)
	g.GET("/community/achievements", h.Community.Achievements)
	g.GET("/community/stats", h.Community.Stats)
	g.GET("/community/overview", h.Community.Overview)

	// News articles.
	g.GET("/news", h.News.List)
	g.GET("/news/featured", h.News.Featured)
	g.GET("/news/recent", h.News.Recent)
	g.GET("/news/:id", h.News.ByID)

	// About page sections.
	g.GET("/about", h.About.All)
	g.GET("/about/team", h.About.Team)
	g.GET("/about/partners", h.About.Partners)
	g.GET("/about/press", h.About.Press)
	g.GET("/about/timeline", h.About.Timeline)

	// Volunteer applications.
	g.POST("/volunteers", h.Volunteers.Submit)
}

// RegisterAuth registers the account endpoints. These proxy to the CMS and
// must never be cached or rate limited away from legitimate users, so they
// carry no group middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)
	g.POST("/change-password", a.ChangePassword)
	g.POST("/forgot-password", a.ForgotPassword)
	g.POST("/reset-password", a.ResetPassword)

	e.GET("/v1/me", a.Me)
}
