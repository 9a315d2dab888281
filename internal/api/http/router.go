package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agencyhub/community-service/internal/api/http/handlers"
	"github.com/agencyhub/community-service/internal/auth"
	"github.com/agencyhub/community-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Chat           *handlers.ChatHandler
	Conversations  *handlers.ConversationsHandler
	Tickets        *handlers.TicketsHandler
	Events         *handlers.EventsHandler
	Content        *handlers.ContentHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	// Public: session bootstrap and pre-login site content.
	api.Post("/auth/register", cfg.Auth.Register)
	api.Post("/auth/login", cfg.Auth.Login)
	api.Get("/settings/branding", cfg.Content.Branding)
	api.Get("/settings/music-url", cfg.Content.MusicURL)
	api.Get("/settings/featured-members", cfg.Content.FeaturedMembers)
	api.Get("/announcements/active", cfg.Content.ActiveAnnouncement)

	// Everything below requires a session.
	authed := api.Group("", cfg.AuthMiddleware.Handle)

	authed.Post("/auth/logout", cfg.Auth.Logout)
	authed.Get("/auth/me", cfg.Auth.Me)
	authed.Patch("/user/profile", cfg.Auth.UpdateProfile)

	authed.Get("/users", cfg.Users.List)

	chat := authed.Group("/chat")
	chat.Get("/groups", cfg.Chat.ListGroups)
	chat.Post("/groups", cfg.Chat.CreateGroup)
	chat.Post("/groups/private", cfg.Chat.StartPrivateGroup)
	chat.Delete("/groups/:id", cfg.Chat.DeleteGroup)
	chat.Get("/groups/:id/messages", cfg.Chat.ListMessages)
	chat.Post("/groups/:id/messages", cfg.Chat.SendMessage)
	chat.Delete("/groups/:id/messages", cfg.Chat.ClearMessages)
	chat.Patch("/messages/:id", cfg.Chat.EditMessage)
	chat.Delete("/messages/:id", cfg.Chat.DeleteMessage)

	conversations := authed.Group("/conversations")
	conversations.Post("/", cfg.Conversations.Resolve)
	conversations.Get("/", cfg.Conversations.List)
	conversations.Get("/:id/messages", cfg.Conversations.ListMessages)
	conversations.Post("/:id/messages", cfg.Conversations.SendMessage)
	conversations.Patch("/messages/:id", cfg.Conversations.EditMessage)
	conversations.Delete("/messages/:id", cfg.Conversations.DeleteMessage)

	tickets := authed.Group("/tickets")
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Delete("/:id", cfg.Tickets.Delete)

	authed.Get("/events", cfg.Events.List)
	authed.Get("/events/:id", cfg.Events.Get)
	authed.Post("/events", auth.RequireModerator(), cfg.Events.Create)

	authed.Get("/banners", cfg.Content.ActiveBanners)
	authed.Get("/sites", cfg.Content.ActiveEmbeddedSites)
	authed.Get("/settings/film-url", cfg.Content.FilmURL)

	authed.Get("/vip/apps", auth.RequireRole(domain.RoleVIP), cfg.Content.ListVipApps)

	admin := authed.Group("/admin", auth.RequireAdmin())
	admin.Get("/stats", cfg.Content.Stats)
	admin.Get("/tickets/recent", cfg.Tickets.Recent)

	admin.Post("/users", cfg.Users.AdminCreate)
	admin.Patch("/users/:id", cfg.Users.AdminUpdate)
	admin.Delete("/users/:id", cfg.Users.AdminDelete)

	admin.Get("/announcements", cfg.Content.ListAnnouncements)
	admin.Post("/announcements", cfg.Content.PublishAnnouncement)
	admin.Delete("/announcements/:id", cfg.Content.DeleteAnnouncement)

	admin.Get("/banners", cfg.Content.ListBanners)
	admin.Post("/banners", cfg.Content.CreateBanner)
	admin.Patch("/banners/:id", cfg.Content.UpdateBanner)
	admin.Delete("/banners/:id", cfg.Content.DeleteBanner)

	admin.Put("/settings/film-url", cfg.Content.SetFilmURL)
	admin.Put("/settings/music-url", cfg.Content.SetMusicURL)
	admin.Put("/settings/branding", cfg.Content.SetBranding)
	admin.Put("/settings/featured-members", cfg.Content.SetFeaturedMembers)

	admin.Get("/vip/apps", cfg.Content.ListVipApps)
	admin.Post("/vip/apps", cfg.Content.CreateVipApp)
	admin.Delete("/vip/apps/:id", cfg.Content.DeleteVipApp)

	admin.Get("/sites", cfg.Content.ListEmbeddedSites)
	admin.Post("/sites", cfg.Content.CreateEmbeddedSite)
	admin.Patch("/sites/:id", cfg.Content.UpdateEmbeddedSite)
	admin.Delete("/sites/:id", cfg.Content.DeleteEmbeddedSite)
}
