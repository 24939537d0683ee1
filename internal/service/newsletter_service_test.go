package service

import (
	"errors"
	"testing"
)

func TestNewsletterSubscribeNormalizesEmail(t *testing.T) {
	deps := newServiceDeps(t)
	svc := NewNewsletterService(deps.newsletter)

	sub, err := svc.Subscribe(SubscribeInput{Email: "  Reader@Example.COM ", Name: "Reader"})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if sub.Email != "reader@example.com" {
		t.Fatalf("email = %q", sub.Email)
	}
	if !sub.IsActive {
		t.Fatalf("new subscription should be active")
	}
}

func TestNewsletterSubscribeTwiceReactivates(t *testing.T) {
	deps := newServiceDeps(t)
	svc := NewNewsletterService(deps.newsletter)

	first, err := svc.Subscribe(SubscribeInput{Email: "loyal@example.com"})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := svc.Unsubscribe("loyal@example.com"); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}

	lapsed, err := deps.newsletter.GetByEmail("loyal@example.com")
	if err != nil || lapsed == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if lapsed.IsActive || lapsed.UnsubscribedAt == nil {
		t.Fatalf("unsubscribe did not stick: %+v", lapsed)
	}

	again, err := svc.Subscribe(SubscribeInput{Email: "LOYAL@example.com", Name: "Back Again"})
	if err != nil {
		t.Fatalf("re-subscribe failed: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("re-subscribe should reuse the row, got id %d vs %d", again.ID, first.ID)
	}
	if !again.IsActive || again.UnsubscribedAt != nil {
		t.Fatalf("re-subscribe should reactivate: %+v", again)
	}
	if again.Name != "Back Again" {
		t.Fatalf("name not refreshed: %q", again.Name)
	}
}

func TestNewsletterSubscribeInvalidEmail(t *testing.T) {
	deps := newServiceDeps(t)
	svc := NewNewsletterService(deps.newsletter)

	for _, email := range []string{"", "   ", "not-an-email"} {
		if _, err := svc.Subscribe(SubscribeInput{Email: email}); err == nil {
			t.Fatalf("email %q should be rejected", email)
		} else if _, ok := AsValidationError(err); !ok {
			t.Fatalf("want ValidationError for %q, got %v", email, err)
		}
	}
}

func TestNewsletterUnsubscribeUnknownEmail(t *testing.T) {
	deps := newServiceDeps(t)
	svc := NewNewsletterService(deps.newsletter)

	if err := svc.Unsubscribe("ghost@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
