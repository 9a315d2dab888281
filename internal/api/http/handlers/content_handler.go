package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agencyhub/community-service/internal/api/dto"
	"github.com/agencyhub/community-service/internal/auth"
	"github.com/agencyhub/community-service/internal/domain"
	"github.com/agencyhub/community-service/internal/service"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

// ContentHandler exposes curated content: announcements, banners, site
// settings, VIP apps, and embedded sites.
type ContentHandler struct {
	content *service.ContentService
	stats   *service.StatsService
}

// NewContentHandler constructs handler.
func NewContentHandler(contentService *service.ContentService, statsService *service.StatsService) *ContentHandler {
	return &ContentHandler{content: contentService, stats: statsService}
}

// --- Announcements ---

// ActiveAnnouncement handles GET /api/announcements/active. Returns null
// data when no announcement is set.
func (h *ContentHandler) ActiveAnnouncement(c *fiber.Ctx) error {
	announcement, err := h.content.ActiveAnnouncement(c.Context())
	if err != nil {
		return err
	}
	if announcement == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.NewAnnouncementResponse(announcement)})
}

// ListAnnouncements handles GET /api/admin/announcements.
func (h *ContentHandler) ListAnnouncements(c *fiber.Ctx) error {
	announcements, err := h.content.ListAnnouncements(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		items = append(items, dto.NewAnnouncementResponse(&announcements[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// PublishAnnouncement handles POST /api/admin/announcements.
func (h *ContentHandler) PublishAnnouncement(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PublishAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	announcement, err := h.content.PublishAnnouncement(c.Context(), requester, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAnnouncementResponse(announcement)})
}

// DeleteAnnouncement handles DELETE /api/admin/announcements/:id.
func (h *ContentHandler) DeleteAnnouncement(c *fiber.Ctx) error {
	if err := h.content.DeleteAnnouncement(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// --- Banners ---

// ActiveBanners handles GET /api/banners.
func (h *ContentHandler) ActiveBanners(c *fiber.Ctx) error {
	banners, err := h.content.ActiveBanners(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bannerResponses(banners)})
}

// ListBanners handles GET /api/admin/banners.
func (h *ContentHandler) ListBanners(c *fiber.Ctx) error {
	banners, err := h.content.ListBanners(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bannerResponses(banners)})
}

// CreateBanner handles POST /api/admin/banners.
func (h *ContentHandler) CreateBanner(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.BannerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	banner, err := h.content.CreateBanner(c.Context(), requester, bannerInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBannerResponse(banner)})
}

// UpdateBanner handles PATCH /api/admin/banners/:id.
func (h *ContentHandler) UpdateBanner(c *fiber.Ctx) error {
	var req dto.BannerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	banner, err := h.content.UpdateBanner(c.Context(), c.Params("id"), bannerInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBannerResponse(banner)})
}

// DeleteBanner handles DELETE /api/admin/banners/:id.
func (h *ContentHandler) DeleteBanner(c *fiber.Ctx) error {
	if err := h.content.DeleteBanner(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// --- Settings ---

// FilmURL handles GET /api/settings/film-url.
func (h *ContentHandler) FilmURL(c *fiber.Ctx) error {
	url, err := h.content.FilmURL(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"url": url}})
}

// SetFilmURL handles PUT /api/admin/settings/film-url.
func (h *ContentHandler) SetFilmURL(c *fiber.Ctx) error {
	var req dto.SettingURLRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.content.SetFilmURL(c.Context(), req.URL); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"url": req.URL}})
}

// MusicURL handles GET /api/settings/music-url.
func (h *ContentHandler) MusicURL(c *fiber.Ctx) error {
	url, err := h.content.MusicURL(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"url": url}})
}

// SetMusicURL handles PUT /api/admin/settings/music-url.
func (h *ContentHandler) SetMusicURL(c *fiber.Ctx) error {
	var req dto.SettingURLRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.content.SetMusicURL(c.Context(), req.URL); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"url": req.URL}})
}

// Branding handles GET /api/settings/branding.
func (h *ContentHandler) Branding(c *fiber.Ctx) error {
	branding, err := h.content.Branding(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"site_name": branding.SiteName,
		"show_flag": branding.ShowFlag,
	}})
}

// SetBranding handles PUT /api/admin/settings/branding.
func (h *ContentHandler) SetBranding(c *fiber.Ctx) error {
	var req dto.BrandingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	branding := domain.Branding{SiteName: req.SiteName, ShowFlag: req.ShowFlag}
	if err := h.content.SetBranding(c.Context(), branding); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"site_name": branding.SiteName,
		"show_flag": branding.ShowFlag,
	}})
}

// FeaturedMembers handles GET /api/settings/featured-members.
func (h *ContentHandler) FeaturedMembers(c *fiber.Ctx) error {
	members, err := h.content.FeaturedMembers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": members})
}

// SetFeaturedMembers handles PUT /api/admin/settings/featured-members.
func (h *ContentHandler) SetFeaturedMembers(c *fiber.Ctx) error {
	var req dto.FeaturedMembersRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	members := domain.FeaturedMembers{Member1: req.Member1, Member2: req.Member2, Member3: req.Member3}
	if err := h.content.SetFeaturedMembers(c.Context(), members); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": members})
}

// --- VIP apps ---

// ListVipApps handles GET /api/vip/apps. VIP role and above.
func (h *ContentHandler) ListVipApps(c *fiber.Ctx) error {
	apps, err := h.content.ListVipApps(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.VipAppResponse, 0, len(apps))
	for i := range apps {
		items = append(items, dto.NewVipAppResponse(&apps[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateVipApp handles POST /api/admin/vip/apps.
func (h *ContentHandler) CreateVipApp(c *fiber.Ctx) error {
	var req dto.VipAppRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	app, err := h.content.CreateVipApp(c.Context(), service.VipAppInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		DownloadURL: req.DownloadURL,
		Version:     req.Version,
		Size:        req.Size,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewVipAppResponse(app)})
}

// DeleteVipApp handles DELETE /api/admin/vip/apps/:id.
func (h *ContentHandler) DeleteVipApp(c *fiber.Ctx) error {
	if err := h.content.DeleteVipApp(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// --- Embedded sites ---

// ActiveEmbeddedSites handles GET /api/sites.
func (h *ContentHandler) ActiveEmbeddedSites(c *fiber.Ctx) error {
	sites, err := h.content.ActiveEmbeddedSites(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": siteResponses(sites)})
}

// ListEmbeddedSites handles GET /api/admin/sites.
func (h *ContentHandler) ListEmbeddedSites(c *fiber.Ctx) error {
	sites, err := h.content.ListEmbeddedSites(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": siteResponses(sites)})
}

// CreateEmbeddedSite handles POST /api/admin/sites.
func (h *ContentHandler) CreateEmbeddedSite(c *fiber.Ctx) error {
	requester, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.EmbeddedSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	site, err := h.content.CreateEmbeddedSite(c.Context(), requester, siteInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEmbeddedSiteResponse(site)})
}

// UpdateEmbeddedSite handles PATCH /api/admin/sites/:id.
func (h *ContentHandler) UpdateEmbeddedSite(c *fiber.Ctx) error {
	var req dto.EmbeddedSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	site, err := h.content.UpdateEmbeddedSite(c.Context(), c.Params("id"), siteInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmbeddedSiteResponse(site)})
}

// DeleteEmbeddedSite handles DELETE /api/admin/sites/:id.
func (h *ContentHandler) DeleteEmbeddedSite(c *fiber.Ctx) error {
	if err := h.content.DeleteEmbeddedSite(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// --- Stats ---

// Stats handles GET /api/admin/stats.
func (h *ContentHandler) Stats(c *fiber.Ctx) error {
	totals, err := h.stats.Totals(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": totals})
}

func bannerResponses(banners []domain.Banner) []dto.BannerResponse {
	items := make([]dto.BannerResponse, 0, len(banners))
	for i := range banners {
		items = append(items, dto.NewBannerResponse(&banners[i]))
	}
	return items
}

func siteResponses(sites []domain.EmbeddedSite) []dto.EmbeddedSiteResponse {
	items := make([]dto.EmbeddedSiteResponse, 0, len(sites))
	for i := range sites {
		items = append(items, dto.NewEmbeddedSiteResponse(&sites[i]))
	}
	return items
}

func bannerInput(req dto.BannerRequest) service.BannerInput {
	return service.BannerInput{
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		CTALabel:      req.CTALabel,
		CTAURL:        req.CTAURL,
		AnimationType: req.AnimationType,
		IsActive:      req.IsActive,
		DisplayOrder:  req.DisplayOrder,
	}
}

func siteInput(req dto.EmbeddedSiteRequest) service.EmbeddedSiteInput {
	return service.EmbeddedSiteInput{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		URL:          req.URL,
		ImageURL:     req.ImageURL,
		IsActive:     req.IsActive,
		DisplayOrder: req.DisplayOrder,
	}
}
