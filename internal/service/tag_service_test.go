package service

import (
	"errors"
	"testing"

	"github.com/khoborpatra/khoborpatra/internal/models"
)

func (d *serviceDeps) tagService() *TagService {
	return NewTagService(d.tags, d.articles)
}

func TestTagCreateDerivesSlug(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.tagService()

	tag, err := svc.Create(TagInput{Name: "T20 World Cup", NameBn: "টি২০ বিশ্বকাপ"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if tag.Slug != "t20-world-cup" {
		t.Fatalf("slug = %q", tag.Slug)
	}
	if !tag.IsActive {
		t.Fatalf("new tags default to active")
	}

	if _, err := svc.Create(TagInput{Name: "Duplicate", Slug: "t20-world-cup"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("want ErrSlugExists, got %v", err)
	}
}

func TestTagCreateValidatesColor(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.tagService()

	_, err := svc.Create(TagInput{Name: "Tinted", Color: "blue"})
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0].Field != "color" {
		t.Fatalf("want color violation, got %+v", ve.Fields)
	}

	tag, err := svc.Create(TagInput{Name: "Tinted", Color: "#3B82F6"})
	if err != nil {
		t.Fatalf("create with hex color failed: %v", err)
	}
	if tag.Color != "#3B82F6" {
		t.Fatalf("color = %q", tag.Color)
	}
}

func TestTagUpdateSlugConflict(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.tagService()

	if _, err := svc.Create(TagInput{Name: "First", Slug: "first"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := svc.Create(TagInput{Name: "Second", Slug: "second"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(second.ID, TagInput{Slug: "first"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("want ErrSlugExists, got %v", err)
	}
	// keeping its own slug is never a conflict
	if _, err := svc.Update(second.ID, TagInput{Slug: "second", Name: "Renamed"}); err != nil {
		t.Fatalf("self-slug update failed: %v", err)
	}
}

func TestTagDeleteRefusedWhileInUse(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.tagService()

	tag, err := svc.Create(TagInput{Name: "Attached"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	article := models.Article{Title: "Host", Slug: "host", Content: "x"}
	if err := deps.articles.Create(&article); err != nil {
		t.Fatalf("seed article failed: %v", err)
	}
	if err := deps.articles.ReplaceTags(article.ID, []uint{tag.ID}); err != nil {
		t.Fatalf("attach tag failed: %v", err)
	}

	if err := svc.Delete(tag.ID); !errors.Is(err, ErrTagInUse) {
		t.Fatalf("want ErrTagInUse, got %v", err)
	}

	if err := deps.articles.ReplaceTags(article.ID, nil); err != nil {
		t.Fatalf("detach failed: %v", err)
	}
	if err := svc.Delete(tag.ID); err != nil {
		t.Fatalf("delete detached tag failed: %v", err)
	}
}

func TestTagGetBySlugNotFound(t *testing.T) {
	deps := newServiceDeps(t)
	svc := deps.tagService()

	if _, err := svc.GetBySlug("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
