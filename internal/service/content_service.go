package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/agencyhub/community-service/internal/domain"
	"github.com/agencyhub/community-service/internal/events"
	"github.com/agencyhub/community-service/internal/repository"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

// ContentService manages admin-curated content: announcements, banners,
// site settings, VIP apps, and embedded sites.
type ContentService struct {
	announcements repository.AnnouncementRepository
	banners       repository.BannerRepository
	settings      repository.SettingRepository
	vipApps       repository.VipAppRepository
	sites         repository.EmbeddedSiteRepository
	dispatcher    events.Dispatcher
}

// ContentDependencies bundles collaborators for the content service.
type ContentDependencies struct {
	AnnouncementRepo repository.AnnouncementRepository
	BannerRepo       repository.BannerRepository
	SettingRepo      repository.SettingRepository
	VipAppRepo       repository.VipAppRepository
	SiteRepo         repository.EmbeddedSiteRepository
	Dispatcher       events.Dispatcher
}

func NewContentService(deps ContentDependencies) *ContentService {
	return &ContentService{
		announcements: deps.AnnouncementRepo,
		banners:       deps.BannerRepo,
		settings:      deps.SettingRepo,
		vipApps:       deps.VipAppRepo,
		sites:         deps.SiteRepo,
		dispatcher:    deps.Dispatcher,
	}
}

// --- Announcements ---

// ActiveAnnouncement returns the current announcement, or nil when none is set.
func (s *ContentService) ActiveAnnouncement(ctx context.Context) (*domain.Announcement, error) {
	announcement, err := s.announcements.GetActive(ctx)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return announcement, nil
}

func (s *ContentService) ListAnnouncements(ctx context.Context) ([]domain.Announcement, error) {
	return s.announcements.List(ctx)
}

// PublishAnnouncement creates a new active announcement, deactivating any
// previous one first.
func (s *ContentService) PublishAnnouncement(ctx context.Context, requester *domain.User, content string) (*domain.Announcement, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content is required", nil)
	}

	if err := s.announcements.DeactivateAll(ctx); err != nil {
		return nil, err
	}
	announcement := &domain.Announcement{
		Content:   content,
		IsActive:  true,
		CreatedBy: requester.ID,
	}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventAnnouncementPublished,
			ActorID: requester.ID,
			Payload: events.AnnouncementPublishedPayload{
				AnnouncementID: announcement.ID,
				Preview:        stringPreview(announcement.Content, 80),
			},
		})
	}
	return announcement, nil
}

func (s *ContentService) DeleteAnnouncement(ctx context.Context, id string) error {
	if err := s.announcements.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("announcement", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// --- Banners ---

// BannerInput carries banner fields for create and update.
type BannerInput struct {
	Title         *string
	Description   *string
	ImageURL      *string
	CTALabel      *string
	CTAURL        *string
	AnimationType *string
	IsActive      *bool
	DisplayOrder  *int
}

// ActiveBanners returns the banners shown on the home carousel, in order.
func (s *ContentService) ActiveBanners(ctx context.Context) ([]domain.Banner, error) {
	return s.banners.ListActive(ctx)
}

func (s *ContentService) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	return s.banners.List(ctx)
}

// CreateBanner adds a carousel entry. Unset display order appends at the end.
func (s *ContentService) CreateBanner(ctx context.Context, requester *domain.User, input BannerInput) (*domain.Banner, error) {
	banner := &domain.Banner{
		Title:         trimmedOrNil(input.Title),
		Description:   trimmedOrNil(input.Description),
		ImageURL:      input.ImageURL,
		CTALabel:      trimmedOrNil(input.CTALabel),
		CTAURL:        input.CTAURL,
		AnimationType: domain.BannerAnimationFade,
		IsActive:      true,
		CreatedBy:     requester.ID,
	}
	if input.AnimationType != nil {
		if !domain.ValidBannerAnimation(*input.AnimationType) {
			return nil, apperrors.NewValidationError("invalid animation type", map[string]any{"animationType": *input.AnimationType})
		}
		banner.AnimationType = domain.BannerAnimation(*input.AnimationType)
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	if input.DisplayOrder != nil {
		banner.DisplayOrder = *input.DisplayOrder
	} else {
		max, err := s.banners.MaxDisplayOrder(ctx)
		if err != nil {
			return nil, err
		}
		banner.DisplayOrder = max + 1
	}

	if err := s.banners.Create(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *ContentService) UpdateBanner(ctx context.Context, id string, input BannerInput) (*domain.Banner, error) {
	banner, err := s.banners.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("banner", map[string]any{"id": id})
		}
		return nil, err
	}

	if input.Title != nil {
		banner.Title = trimmedOrNil(input.Title)
	}
	if input.Description != nil {
		banner.Description = trimmedOrNil(input.Description)
	}
	if input.ImageURL != nil {
		banner.ImageURL = input.ImageURL
	}
	if input.CTALabel != nil {
		banner.CTALabel = trimmedOrNil(input.CTALabel)
	}
	if input.CTAURL != nil {
		banner.CTAURL = input.CTAURL
	}
	if input.AnimationType != nil {
		if !domain.ValidBannerAnimation(*input.AnimationType) {
			return nil, apperrors.NewValidationError("invalid animation type", map[string]any{"animationType": *input.AnimationType})
		}
		banner.AnimationType = domain.BannerAnimation(*input.AnimationType)
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	if input.DisplayOrder != nil {
		banner.DisplayOrder = *input.DisplayOrder
	}

	if err := s.banners.Update(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *ContentService) DeleteBanner(ctx context.Context, id string) error {
	if err := s.banners.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("banner", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// --- Settings ---

// FilmURL returns the configured film page URL, empty when unset.
func (s *ContentService) FilmURL(ctx context.Context) (string, error) {
	return s.settingString(ctx, domain.SettingFilmURL)
}

func (s *ContentService) SetFilmURL(ctx context.Context, url string) error {
	return s.settings.Set(ctx, domain.SettingFilmURL, strings.TrimSpace(url))
}

// MusicURL returns the configured music page URL, empty when unset.
func (s *ContentService) MusicURL(ctx context.Context) (string, error) {
	return s.settingString(ctx, domain.SettingMusicURL)
}

func (s *ContentService) SetMusicURL(ctx context.Context, url string) error {
	return s.settings.Set(ctx, domain.SettingMusicURL, strings.TrimSpace(url))
}

// Branding returns the stored site identity, falling back to the default
// when unset or unreadable.
func (s *ContentService) Branding(ctx context.Context) (domain.Branding, error) {
	raw, ok, err := s.settings.Get(ctx, domain.SettingBranding)
	if err != nil {
		return domain.Branding{}, err
	}
	if !ok {
		return domain.DefaultBranding(), nil
	}
	var branding domain.Branding
	if err := json.Unmarshal([]byte(raw), &branding); err != nil {
		return domain.DefaultBranding(), nil
	}
	if branding.SiteName == "" {
		branding.SiteName = domain.DefaultBranding().SiteName
	}
	return branding, nil
}

func (s *ContentService) SetBranding(ctx context.Context, branding domain.Branding) error {
	branding.SiteName = strings.TrimSpace(branding.SiteName)
	if branding.SiteName == "" {
		return apperrors.NewValidationError("site name is required", nil)
	}
	raw, err := json.Marshal(branding)
	if err != nil {
		return err
	}
	return s.settings.Set(ctx, domain.SettingBranding, string(raw))
}

// FeaturedMembers returns the member-of-the-month slots, empty when unset
// or unreadable.
func (s *ContentService) FeaturedMembers(ctx context.Context) (domain.FeaturedMembers, error) {
	raw, ok, err := s.settings.Get(ctx, domain.SettingFeaturedMembers)
	if err != nil {
		return domain.FeaturedMembers{}, err
	}
	if !ok {
		return domain.FeaturedMembers{}, nil
	}
	var members domain.FeaturedMembers
	if err := json.Unmarshal([]byte(raw), &members); err != nil {
		return domain.FeaturedMembers{}, nil
	}
	return members, nil
}

func (s *ContentService) SetFeaturedMembers(ctx context.Context, members domain.FeaturedMembers) error {
	raw, err := json.Marshal(members)
	if err != nil {
		return err
	}
	return s.settings.Set(ctx, domain.SettingFeaturedMembers, string(raw))
}

func (s *ContentService) settingString(ctx context.Context, key string) (string, error) {
	value, ok, err := s.settings.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return value, nil
}

// --- VIP apps ---

// VipAppInput describes a downloadable VIP application.
type VipAppInput struct {
	Name        string
	Description string
	ImageURL    string
	DownloadURL string
	Version     string
	Size        string
}

func (s *ContentService) ListVipApps(ctx context.Context) ([]domain.VipApp, error) {
	return s.vipApps.List(ctx)
}

func (s *ContentService) CreateVipApp(ctx context.Context, input VipAppInput) (*domain.VipApp, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.DownloadURL = strings.TrimSpace(input.DownloadURL)
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	if input.DownloadURL == "" {
		return nil, apperrors.NewValidationError("download URL is required", nil)
	}

	app := &domain.VipApp{
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		ImageURL:    input.ImageURL,
		DownloadURL: input.DownloadURL,
		Version:     strings.TrimSpace(input.Version),
		Size:        strings.TrimSpace(input.Size),
	}
	if err := s.vipApps.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ContentService) DeleteVipApp(ctx context.Context, id string) error {
	if err := s.vipApps.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("vip app", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// --- Embedded sites ---

// EmbeddedSiteInput carries embedded site fields for create and update.
type EmbeddedSiteInput struct {
	Name         *string
	Description  *string
	Category     *string
	URL          *string
	ImageURL     *string
	IsActive     *bool
	DisplayOrder *int
}

func (s *ContentService) ActiveEmbeddedSites(ctx context.Context) ([]domain.EmbeddedSite, error) {
	return s.sites.ListActive(ctx)
}

func (s *ContentService) ListEmbeddedSites(ctx context.Context) ([]domain.EmbeddedSite, error) {
	return s.sites.List(ctx)
}

func (s *ContentService) CreateEmbeddedSite(ctx context.Context, requester *domain.User, input EmbeddedSiteInput) (*domain.EmbeddedSite, error) {
	site := &domain.EmbeddedSite{
		IsActive:  true,
		CreatedBy: requester.ID,
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	if input.Category == nil || strings.TrimSpace(*input.Category) == "" {
		return nil, apperrors.NewValidationError("category is required", nil)
	}
	if input.URL == nil || strings.TrimSpace(*input.URL) == "" {
		return nil, apperrors.NewValidationError("url is required", nil)
	}
	site.Name = strings.TrimSpace(*input.Name)
	site.Category = strings.TrimSpace(*input.Category)
	site.URL = strings.TrimSpace(*input.URL)
	site.Description = trimmedOrNil(input.Description)
	site.ImageURL = input.ImageURL
	if input.IsActive != nil {
		site.IsActive = *input.IsActive
	}
	if input.DisplayOrder != nil {
		site.DisplayOrder = *input.DisplayOrder
	}

	if err := s.sites.Create(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *ContentService) UpdateEmbeddedSite(ctx context.Context, id string, input EmbeddedSiteInput) (*domain.EmbeddedSite, error) {
	site, err := s.sites.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("embedded site", map[string]any{"id": id})
		}
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		site.Name = name
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, apperrors.NewValidationError("category cannot be empty", nil)
		}
		site.Category = category
	}
	if input.URL != nil {
		url := strings.TrimSpace(*input.URL)
		if url == "" {
			return nil, apperrors.NewValidationError("url cannot be empty", nil)
		}
		site.URL = url
	}
	if input.Description != nil {
		site.Description = trimmedOrNil(input.Description)
	}
	if input.ImageURL != nil {
		site.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		site.IsActive = *input.IsActive
	}
	if input.DisplayOrder != nil {
		site.DisplayOrder = *input.DisplayOrder
	}

	if err := s.sites.Update(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *ContentService) DeleteEmbeddedSite(ctx context.Context, id string) error {
	if err := s.sites.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("embedded site", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
