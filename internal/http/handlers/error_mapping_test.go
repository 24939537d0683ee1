package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestConstraintErrorStatus(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantKey    string
		wantOK     bool
	}{
		{gorm.ErrDuplicatedKey, http.StatusConflict, "error.duplicate_entry", true},
		{fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), http.StatusConflict, "error.duplicate_entry", true},
		{gorm.ErrForeignKeyViolated, http.StatusBadRequest, "error.invalid_reference", true},
		{errors.New("UNIQUE constraint failed: articles.slug"), http.StatusConflict, "error.duplicate_entry", true},
		{errors.New(`duplicate key value violates unique constraint "idx_articles_slug"`), http.StatusConflict, "error.duplicate_entry", true},
		{errors.New("FOREIGN KEY constraint failed"), http.StatusBadRequest, "error.invalid_reference", true},
		{errors.New(`insert or update on table "articles" violates foreign key constraint "fk_articles_category"`), http.StatusBadRequest, "error.invalid_reference", true},
		{errors.New("connection refused"), 0, "", false},
		{nil, 0, "", false},
	}
	for _, tc := range cases {
		status, key, ok := constraintErrorStatus(tc.err)
		if ok != tc.wantOK || status != tc.wantStatus || key != tc.wantKey {
			t.Errorf("constraintErrorStatus(%v) = (%d, %q, %v), want (%d, %q, %v)",
				tc.err, status, key, ok, tc.wantStatus, tc.wantKey, tc.wantOK)
		}
	}
}

func TestMappedErrorFallbackRemapsConstraintViolations(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err        error
		wantStatus int
	}{
		{errors.New("UNIQUE constraint failed: articles.slug"), http.StatusConflict},
		{errors.New(`insert or update on table "comments" violates foreign key constraint "fk_comments_article"`), http.StatusBadRequest},
		{errors.New("disk I/O error"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/articles", nil)

		respondWithMappedError(c, tc.err, articleErrorRules, "error.internal")

		if w.Code != tc.wantStatus {
			t.Errorf("error %q answered %d, want %d", tc.err, w.Code, tc.wantStatus)
			continue
		}
		var env envelope
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("response is not an envelope: %v", err)
		}
		if env.Success {
			t.Errorf("error %q reported success", tc.err)
		}
	}
}
