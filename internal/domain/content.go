package domain

import "time"

// Announcement is a site-wide notice. At most one announcement is active
// at a time; publishing a new one deactivates all previous ones.
type Announcement struct {
	ID        string
	Content   string
	IsActive  bool
	CreatedBy string
	CreatedAt time.Time
}

// BannerAnimation enumerates banner carousel transition styles.
type BannerAnimation string

const (
	BannerAnimationNone  BannerAnimation = "none"
	BannerAnimationFade  BannerAnimation = "fade"
	BannerAnimationSlide BannerAnimation = "slide"
	BannerAnimationZoom  BannerAnimation = "zoom"
)

// ValidBannerAnimation reports whether s is a defined animation type.
func ValidBannerAnimation(s string) bool {
	switch BannerAnimation(s) {
	case BannerAnimationNone, BannerAnimationFade, BannerAnimationSlide, BannerAnimationZoom:
		return true
	}
	return false
}

// Banner is a home-page carousel entry managed by admins.
type Banner struct {
	ID            string
	Title         *string
	Description   *string
	ImageURL      *string
	CTALabel      *string
	CTAURL        *string
	AnimationType BannerAnimation
	IsActive      bool
	DisplayOrder  int
	CreatedBy     string
	CreatedAt     time.Time
}

// VipApp is a downloadable application offered to VIP members and above.
type VipApp struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	DownloadURL string
	Version     string
	Size        string
	CreatedAt   time.Time
}

// EmbeddedSite is a third-party site surfaced inside the platform.
type EmbeddedSite struct {
	ID           string
	Name         string
	Description  *string
	Category     string
	URL          string
	ImageURL     *string
	IsActive     bool
	DisplayOrder int
	CreatedBy    string
	CreatedAt    time.Time
}

// Branding holds the site identity blob stored under the branding setting.
type Branding struct {
	SiteName string `json:"siteName"`
	ShowFlag bool   `json:"showFlag"`
}

// DefaultBranding is returned when no branding has been configured or the
// stored blob cannot be parsed.
func DefaultBranding() Branding {
	return Branding{SiteName: "JOY", ShowFlag: true}
}

// FeaturedMembers holds up to three member-of-the-month slots.
type FeaturedMembers struct {
	Member1 *string `json:"member1"`
	Member2 *string `json:"member2"`
	Member3 *string `json:"member3"`
}

// Stats aggregates platform-wide totals for the dashboard.
type Stats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalEvents   int64 `json:"totalEvents"`
	TotalMessages int64 `json:"totalMessages"`
	TotalTickets  int64 `json:"totalTickets"`
}

// Setting keys for the generic key/value settings table.
const (
	SettingFilmURL         = "filmUrl"
	SettingMusicURL        = "musicUrl"
	SettingBranding        = "branding"
	SettingFeaturedMembers = "featuredMembers"
)
