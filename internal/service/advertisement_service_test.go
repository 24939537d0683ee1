package service

import (
	"errors"
	"testing"

	"github.com/khoborpatra/khoborpatra/internal/constants"
)

func TestAdvertisementCreateValidatesPosition(t *testing.T) {
	deps := newServiceDeps(t)
	svc := NewAdvertisementService(deps.ads)

	_, err := svc.Create(AdvertisementInput{Title: "Promo", ClickURL: "https://example.com", Position: "popup"})
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0].Field != "position" {
		t.Fatalf("want position violation, got %+v", ve.Fields)
	}

	ad, err := svc.Create(AdvertisementInput{Title: "Promo", ClickURL: "https://example.com", Position: constants.AdPositionHeader})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !ad.IsActive {
		t.Fatalf("new placements default to active")
	}
}

func TestAdvertisementActiveCountsImpressions(t *testing.T) {
	deps := newServiceDeps(t)
	svc := NewAdvertisementService(deps.ads)

	ad, err := svc.Create(AdvertisementInput{Title: "Sidebar Promo", ClickURL: "https://example.com", Position: constants.AdPositionSidebar})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	inactive := false
	if _, err := svc.Create(AdvertisementInput{Title: "Paused", ClickURL: "https://example.com", Position: constants.AdPositionSidebar, IsActive: &inactive}); err != nil {
		t.Fatalf("create paused failed: %v", err)
	}

	ads, err := svc.Active(constants.AdPositionSidebar)
	if err != nil {
		t.Fatalf("active failed: %v", err)
	}
	if len(ads) != 1 || ads[0].ID != ad.ID {
		t.Fatalf("active list = %+v", ads)
	}

	refreshed, err := deps.ads.GetByID(ad.ID)
	if err != nil || refreshed == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if refreshed.Impressions != 1 {
		t.Fatalf("impressions = %d, want 1", refreshed.Impressions)
	}
}

func TestAdvertisementClick(t *testing.T) {
	deps := newServiceDeps(t)
	svc := NewAdvertisementService(deps.ads)

	ad, err := svc.Create(AdvertisementInput{Title: "CTA", ClickURL: "https://example.com", Position: constants.AdPositionInline})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Click(ad.ID); err != nil {
		t.Fatalf("click failed: %v", err)
	}
	refreshed, _ := deps.ads.GetByID(ad.ID)
	if refreshed.Clicks != 1 {
		t.Fatalf("clicks = %d, want 1", refreshed.Clicks)
	}

	if err := svc.Click(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAdvertisementDeleteMissing(t *testing.T) {
	deps := newServiceDeps(t)
	svc := NewAdvertisementService(deps.ads)

	if err := svc.Delete(123); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
