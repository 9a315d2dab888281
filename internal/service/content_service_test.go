package service

import (
	"context"
	"testing"

	"github.com/agencyhub/community-service/internal/domain"
)

func newContentFixture() (*ContentService, *fakeUserRepo, *fakeAnnouncementRepo, *fakeBannerRepo, *fakeSettingRepo) {
	users := newFakeUserRepo()
	announcements := newFakeAnnouncementRepo()
	banners := newFakeBannerRepo()
	settings := newFakeSettingRepo()
	svc := NewContentService(ContentDependencies{
		AnnouncementRepo: announcements,
		BannerRepo:       banners,
		SettingRepo:      settings,
	})
	return svc, users, announcements, banners, settings
}

func TestPublishAnnouncementDeactivatesPrevious(t *testing.T) {
	svc, users, _, _, _ := newContentFixture()
	ctx := context.Background()
	admin := member(users, "admin", domain.RoleAdmin)

	first, err := svc.PublishAnnouncement(ctx, admin, "first")
	if err != nil {
		t.Fatalf("PublishAnnouncement: %v", err)
	}
	second, err := svc.PublishAnnouncement(ctx, admin, "second")
	if err != nil {
		t.Fatalf("PublishAnnouncement: %v", err)
	}

	active, err := svc.ActiveAnnouncement(ctx)
	if err != nil {
		t.Fatalf("ActiveAnnouncement: %v", err)
	}
	if active == nil || active.ID != second.ID {
		t.Error("only the newest announcement stays active")
	}

	all, err := svc.ListAnnouncements(ctx)
	if err != nil {
		t.Fatalf("ListAnnouncements: %v", err)
	}
	for _, a := range all {
		if a.ID == first.ID && a.IsActive {
			t.Error("previous announcement should be deactivated")
		}
	}
}

func TestActiveAnnouncementEmpty(t *testing.T) {
	svc, _, _, _, _ := newContentFixture()

	active, err := svc.ActiveAnnouncement(context.Background())
	if err != nil {
		t.Fatalf("ActiveAnnouncement: %v", err)
	}
	if active != nil {
		t.Error("no announcement means nil, not an error")
	}
}

func TestCreateBannerAppendsDisplayOrder(t *testing.T) {
	svc, users, _, _, _ := newContentFixture()
	ctx := context.Background()
	admin := member(users, "admin", domain.RoleAdmin)

	first, err := svc.CreateBanner(ctx, admin, BannerInput{})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}
	if first.DisplayOrder != 1 {
		t.Errorf("first banner should get order 1, got %d", first.DisplayOrder)
	}

	second, err := svc.CreateBanner(ctx, admin, BannerInput{})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}
	if second.DisplayOrder != 2 {
		t.Errorf("second banner should append, got %d", second.DisplayOrder)
	}

	explicit := 7
	third, err := svc.CreateBanner(ctx, admin, BannerInput{DisplayOrder: &explicit})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}
	if third.DisplayOrder != 7 {
		t.Errorf("explicit order wins, got %d", third.DisplayOrder)
	}
}

func TestCreateBannerRejectsUnknownAnimation(t *testing.T) {
	svc, users, _, _, _ := newContentFixture()
	admin := member(users, "admin", domain.RoleAdmin)

	bad := "wobble"
	_, err := svc.CreateBanner(context.Background(), admin, BannerInput{AnimationType: &bad})
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("unknown animation should fail validation, got %s", code)
	}
}

func TestBrandingFallsBackToDefault(t *testing.T) {
	svc, _, _, _, settings := newContentFixture()
	ctx := context.Background()

	branding, err := svc.Branding(ctx)
	if err != nil {
		t.Fatalf("Branding: %v", err)
	}
	if branding.SiteName != "JOY" || !branding.ShowFlag {
		t.Errorf("unset branding should default, got %+v", branding)
	}

	settings.values[domain.SettingBranding] = "{not json"
	branding, err = svc.Branding(ctx)
	if err != nil {
		t.Fatalf("Branding: %v", err)
	}
	if branding.SiteName != "JOY" {
		t.Errorf("corrupt branding should default, got %+v", branding)
	}

	if err := svc.SetBranding(ctx, domain.Branding{SiteName: "AURA", ShowFlag: false}); err != nil {
		t.Fatalf("SetBranding: %v", err)
	}
	branding, err = svc.Branding(ctx)
	if err != nil {
		t.Fatalf("Branding: %v", err)
	}
	if branding.SiteName != "AURA" || branding.ShowFlag {
		t.Errorf("stored branding should round-trip, got %+v", branding)
	}
}

func TestSetBrandingRequiresName(t *testing.T) {
	svc, _, _, _, _ := newContentFixture()

	err := svc.SetBranding(context.Background(), domain.Branding{SiteName: "   "})
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("blank site name should fail, got %s", code)
	}
}

func TestFeaturedMembersFallback(t *testing.T) {
	svc, _, _, _, settings := newContentFixture()
	ctx := context.Background()

	members, err := svc.FeaturedMembers(ctx)
	if err != nil {
		t.Fatalf("FeaturedMembers: %v", err)
	}
	if members.Member1 != nil || members.Member2 != nil || members.Member3 != nil {
		t.Error("unset slots should be empty")
	}

	settings.values[domain.SettingFeaturedMembers] = "broken"
	members, err = svc.FeaturedMembers(ctx)
	if err != nil {
		t.Fatalf("FeaturedMembers: %v", err)
	}
	if members.Member1 != nil {
		t.Error("corrupt blob should yield empty slots")
	}

	name := "user-1"
	if err := svc.SetFeaturedMembers(ctx, domain.FeaturedMembers{Member1: &name}); err != nil {
		t.Fatalf("SetFeaturedMembers: %v", err)
	}
	members, err = svc.FeaturedMembers(ctx)
	if err != nil {
		t.Fatalf("FeaturedMembers: %v", err)
	}
	if members.Member1 == nil || *members.Member1 != "user-1" {
		t.Error("slots should round-trip")
	}
}

func TestFilmAndMusicURLs(t *testing.T) {
	svc, _, _, _, _ := newContentFixture()
	ctx := context.Background()

	url, err := svc.FilmURL(ctx)
	if err != nil {
		t.Fatalf("FilmURL: %v", err)
	}
	if url != "" {
		t.Errorf("unset film url should be empty, got %q", url)
	}

	if err := svc.SetFilmURL(ctx, "  https://example.com/film  "); err != nil {
		t.Fatalf("SetFilmURL: %v", err)
	}
	url, err = svc.FilmURL(ctx)
	if err != nil {
		t.Fatalf("FilmURL: %v", err)
	}
	if url != "https://example.com/film" {
		t.Errorf("film url should be trimmed and stored, got %q", url)
	}

	if err := svc.SetMusicURL(ctx, "https://example.com/music"); err != nil {
		t.Fatalf("SetMusicURL: %v", err)
	}
	url, err = svc.MusicURL(ctx)
	if err != nil {
		t.Fatalf("MusicURL: %v", err)
	}
	if url != "https://example.com/music" {
		t.Errorf("music url mismatch: %q", url)
	}
}
