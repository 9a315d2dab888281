package dto

import (
	"time"

	"github.com/agencyhub/community-service/internal/domain"
)

// PublishAnnouncementRequest payload.
type PublishAnnouncementRequest struct {
	Content string `json:"content"`
}

// AnnouncementResponse response.
type AnnouncementResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"is_active"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAnnouncementResponse maps an announcement.
func NewAnnouncementResponse(announcement *domain.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        announcement.ID,
		Content:   announcement.Content,
		IsActive:  announcement.IsActive,
		CreatedBy: announcement.CreatedBy,
		CreatedAt: announcement.CreatedAt,
	}
}

// BannerRequest payload for create and update. Absent fields keep their
// current value on update.
type BannerRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	ImageURL      *string `json:"image_url"`
	CTALabel      *string `json:"cta_label"`
	CTAURL        *string `json:"cta_url"`
	AnimationType *string `json:"animation_type"`
	IsActive      *bool   `json:"is_active"`
	DisplayOrder  *int    `json:"display_order"`
}

// BannerResponse response.
type BannerResponse struct {
	ID            string                 `json:"id"`
	Title         *string                `json:"title"`
	Description   *string                `json:"description"`
	ImageURL      *string                `json:"image_url"`
	CTALabel      *string                `json:"cta_label"`
	CTAURL        *string                `json:"cta_url"`
	AnimationType domain.BannerAnimation `json:"animation_type"`
	IsActive      bool                   `json:"is_active"`
	DisplayOrder  int                    `json:"display_order"`
	CreatedAt     time.Time              `json:"created_at"`
}

// NewBannerResponse maps a banner.
func NewBannerResponse(banner *domain.Banner) BannerResponse {
	return BannerResponse{
		ID:            banner.ID,
		Title:         banner.Title,
		Description:   banner.Description,
		ImageURL:      banner.ImageURL,
		CTALabel:      banner.CTALabel,
		CTAURL:        banner.CTAURL,
		AnimationType: banner.AnimationType,
		IsActive:      banner.IsActive,
		DisplayOrder:  banner.DisplayOrder,
		CreatedAt:     banner.CreatedAt,
	}
}

// SettingURLRequest payload for the film and music page URLs.
type SettingURLRequest struct {
	URL string `json:"url"`
}

// BrandingRequest payload.
type BrandingRequest struct {
	SiteName string `json:"site_name"`
	ShowFlag bool   `json:"show_flag"`
}

// FeaturedMembersRequest payload. Slots may be null to clear them.
type FeaturedMembersRequest struct {
	Member1 *string `json:"member1"`
	Member2 *string `json:"member2"`
	Member3 *string `json:"member3"`
}

// VipAppRequest payload.
type VipAppRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	DownloadURL string `json:"download_url"`
	Version     string `json:"version"`
	Size        string `json:"size"`
}

// VipAppResponse response.
type VipAppResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	DownloadURL string    `json:"download_url"`
	Version     string    `json:"version"`
	Size        string    `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewVipAppResponse maps a VIP app.
func NewVipAppResponse(app *domain.VipApp) VipAppResponse {
	return VipAppResponse{
		ID:          app.ID,
		Name:        app.Name,
		Description: app.Description,
		ImageURL:    app.ImageURL,
		DownloadURL: app.DownloadURL,
		Version:     app.Version,
		Size:        app.Size,
		CreatedAt:   app.CreatedAt,
	}
}

// EmbeddedSiteRequest payload for create and update.
type EmbeddedSiteRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	URL          *string `json:"url"`
	ImageURL     *string `json:"image_url"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}

// EmbeddedSiteResponse response.
type EmbeddedSiteResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Category     string    `json:"category"`
	URL          string    `json:"url"`
	ImageURL     *string   `json:"image_url"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewEmbeddedSiteResponse maps an embedded site.
func NewEmbeddedSiteResponse(site *domain.EmbeddedSite) EmbeddedSiteResponse {
	return EmbeddedSiteResponse{
		ID:           site.ID,
		Name:         site.Name,
		Description:  site.Description,
		Category:     site.Category,
		URL:          site.URL,
		ImageURL:     site.ImageURL,
		IsActive:     site.IsActive,
		DisplayOrder: site.DisplayOrder,
		CreatedAt:    site.CreatedAt,
	}
}
