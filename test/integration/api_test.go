// Package integration exercises the HTTP API end to end against an
// in-memory database.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kakeibo-scan/backend/internal/application/usecase/category"
	"github.com/kakeibo-scan/backend/internal/application/usecase/entry"
	"github.com/kakeibo-scan/backend/internal/application/usecase/report"
	"github.com/kakeibo-scan/backend/internal/application/usecase/scan"
	"github.com/kakeibo-scan/backend/internal/domain/entity"
	"github.com/kakeibo-scan/backend/internal/infra/server/router"
	"github.com/kakeibo-scan/backend/internal/integration/entrypoint/controller"
	"github.com/kakeibo-scan/backend/internal/integration/entrypoint/middleware"
	"github.com/kakeibo-scan/backend/internal/integration/persistence"
	"github.com/kakeibo-scan/backend/internal/integration/persistence/model"
	"github.com/kakeibo-scan/backend/internal/integration/tracker"
)

// stubVisionService returns a canned page analysis.
type stubVisionService struct {
	analysis *entity.PageAnalysis
	err      error
}

func (s *stubVisionService) AnalyzePage(ctx context.Context, image []byte, mimeType string) (*entity.PageAnalysis, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.analysis, nil
}

func (s *stubVisionService) IsAvailable() bool { return true }

// testServer wires the full HTTP stack over in-memory storage.
type testServer struct {
	engine *gin.Engine
	vision *stubVisionService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	if err := db.AutoMigrate(&model.CategoryModel{}, &model.EntryModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	categoryRepo := persistence.NewCategoryRepository(db)
	entryRepo := persistence.NewEntryRepository(db)
	scanTracker := tracker.NewMemoryTracker()
	vision := &stubVisionService{}

	seedUseCase := category.NewSeedDefaultCategoriesUseCase(categoryRepo)
	if _, err := seedUseCase.Execute(context.Background()); err != nil {
		t.Fatalf("failed to seed categories: %v", err)
	}

	categoryController := controller.NewCategoryController(
		category.NewListCategoriesUseCase(categoryRepo),
		category.NewCreateCategoryUseCase(categoryRepo),
		category.NewUpdateCategoryUseCase(categoryRepo),
		category.NewDeleteCategoryUseCase(categoryRepo),
	)

	entryController := controller.NewEntryController(
		entry.NewListEntriesUseCase(entryRepo),
		entry.NewCreateEntryUseCase(entryRepo, categoryRepo),
		entry.NewUpdateEntryUseCase(entryRepo, categoryRepo),
		entry.NewDeleteEntryUseCase(entryRepo),
		entry.NewClearEntriesUseCase(entryRepo, scanTracker),
	)

	scanController := controller.NewScanController(
		scan.NewAnalyzePageUseCase(entryRepo, categoryRepo, vision, scanTracker, 1024*1024, time.Minute),
		scan.NewGetStatusUseCase(scanTracker),
	)

	reportController := controller.NewReportController(
		report.NewGetMonthlySummaryUseCase(entryRepo, categoryRepo),
		report.NewGetTrendUseCase(entryRepo),
		report.NewExportCSVUseCase(entryRepo, categoryRepo),
	)

	healthController := controller.NewHealthController(func() bool { return true })
	rateLimiter := middleware.NewRateLimiterWithConfig(1000, time.Minute)

	r := router.NewRouter(
		healthController,
		categoryController,
		entryController,
		scanController,
		reportController,
		rateLimiter,
	)

	return &testServer{engine: r.Setup("test"), vision: vision}
}

func (s *testServer) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := srv.request(t, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestCategoryEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("list returns seeded defaults", func(t *testing.T) {
		w := srv.request(t, http.MethodGet, "/api/v1/categories", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Categories []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"categories"`
		}
		decodeBody(t, w, &resp)
		if len(resp.Categories) != 9 {
			t.Errorf("expected 9 seeded categories, got %d", len(resp.Categories))
		}
	})

	t.Run("create update delete", func(t *testing.T) {
		w := srv.request(t, http.MethodPost, "/api/v1/categories", map[string]any{
			"name":  "ペット",
			"color": "#123456",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var created struct {
			ID string `json:"id"`
		}
		decodeBody(t, w, &created)

		// Duplicate name conflicts.
		w = srv.request(t, http.MethodPost, "/api/v1/categories", map[string]any{"name": "ペット"})
		if w.Code != http.StatusConflict {
			t.Errorf("expected 409 for duplicate, got %d", w.Code)
		}

		w = srv.request(t, http.MethodPatch, "/api/v1/categories/"+created.ID, map[string]any{
			"color": "#654321",
		})
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		w = srv.request(t, http.MethodDelete, "/api/v1/categories/"+created.ID, nil)
		if w.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", w.Code)
		}
	})

	t.Run("catch-all category is protected", func(t *testing.T) {
		w := srv.request(t, http.MethodGet, "/api/v1/categories", nil)
		var resp struct {
			Categories []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"categories"`
		}
		decodeBody(t, w, &resp)

		var fallbackID string
		for _, c := range resp.Categories {
			if c.Name == entity.CategoryNameFallback {
				fallbackID = c.ID
			}
		}
		if fallbackID == "" {
			t.Fatal("catch-all category missing from listing")
		}

		w = srv.request(t, http.MethodDelete, "/api/v1/categories/"+fallbackID, nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403 deleting catch-all, got %d", w.Code)
		}

		w = srv.request(t, http.MethodPatch, "/api/v1/categories/"+fallbackID, map[string]any{
			"name": "別名",
		})
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403 renaming catch-all, got %d", w.Code)
		}
	})

	t.Run("invalid color rejected", func(t *testing.T) {
		w := srv.request(t, http.MethodPost, "/api/v1/categories", map[string]any{
			"name":  "変な色",
			"color": "red",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func categoryIDByName(t *testing.T, srv *testServer, name string) string {
	t.Helper()
	w := srv.request(t, http.MethodGet, "/api/v1/categories", nil)
	var resp struct {
		Categories []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"categories"`
	}
	decodeBody(t, w, &resp)
	for _, c := range resp.Categories {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %q not found", name)
	return ""
}

func TestEntryEndpoints(t *testing.T) {
	srv := newTestServer(t)
	foodID := categoryIDByName(t, srv, entity.CategoryNameFood)

	t.Run("create and list", func(t *testing.T) {
		w := srv.request(t, http.MethodPost, "/api/v1/entries", map[string]any{
			"date":        "2026-03-10",
			"label":       "パン",
			"amount":      150,
			"category_id": foodID,
			"note":        "朝食",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var created struct {
			ID     string `json:"id"`
			Date   string `json:"date"`
			Amount int64  `json:"amount"`
		}
		decodeBody(t, w, &created)
		if created.Date != "2026-03-10" || created.Amount != 150 {
			t.Errorf("unexpected entry: %+v", created)
		}

		w = srv.request(t, http.MethodGet, "/api/v1/entries", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var list struct {
			Entries []json.RawMessage `json:"entries"`
			Total   int               `json:"total"`
		}
		decodeBody(t, w, &list)
		if list.Total != 1 {
			t.Errorf("expected 1 entry, got %d", list.Total)
		}
	})

	t.Run("month filter", func(t *testing.T) {
		srv.request(t, http.MethodPost, "/api/v1/entries", map[string]any{
			"date":        "2026-04-02",
			"label":       "四月の買い物",
			"amount":      500,
			"category_id": foodID,
		})

		w := srv.request(t, http.MethodGet, "/api/v1/entries?year=2026&month=3", nil)
		var list struct {
			Total int `json:"total"`
		}
		decodeBody(t, w, &list)
		if list.Total != 1 {
			t.Errorf("expected 1 march entry, got %d", list.Total)
		}

		w = srv.request(t, http.MethodGet, "/api/v1/entries?year=2026&month=13", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for invalid month, got %d", w.Code)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		w := srv.request(t, http.MethodPost, "/api/v1/entries", map[string]any{
			"date":        "2026-03-10",
			"label":       "x",
			"amount":      -100,
			"category_id": foodID,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for negative amount, got %d", w.Code)
		}

		w = srv.request(t, http.MethodPost, "/api/v1/entries", map[string]any{
			"date":        "10/03/2026",
			"label":       "x",
			"amount":      100,
			"category_id": foodID,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for bad date, got %d", w.Code)
		}

		w = srv.request(t, http.MethodPost, "/api/v1/entries", map[string]any{
			"date":        "2026-03-10",
			"label":       "x",
			"amount":      100,
			"category_id": "4d2c5f3a-0000-0000-0000-000000000000",
		})
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 for unknown category, got %d", w.Code)
		}
	})

	t.Run("update and delete", func(t *testing.T) {
		w := srv.request(t, http.MethodPost, "/api/v1/entries", map[string]any{
			"date":        "2026-03-12",
			"label":       "昼食",
			"amount":      800,
			"category_id": foodID,
		})
		var created struct {
			ID string `json:"id"`
		}
		decodeBody(t, w, &created)

		w = srv.request(t, http.MethodPatch, "/api/v1/entries/"+created.ID, map[string]any{
			"amount": 900,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var updated struct {
			Amount int64 `json:"amount"`
		}
		decodeBody(t, w, &updated)
		if updated.Amount != 900 {
			t.Errorf("expected amount 900, got %d", updated.Amount)
		}

		w = srv.request(t, http.MethodDelete, "/api/v1/entries/"+created.ID, nil)
		if w.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", w.Code)
		}
		w = srv.request(t, http.MethodDelete, "/api/v1/entries/"+created.ID, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 for repeated delete, got %d", w.Code)
		}
	})

	t.Run("clear wipes everything", func(t *testing.T) {
		w := srv.request(t, http.MethodDelete, "/api/v1/entries", nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}

		w = srv.request(t, http.MethodGet, "/api/v1/entries", nil)
		var list struct {
			Total int `json:"total"`
		}
		decodeBody(t, w, &list)
		if list.Total != 0 {
			t.Errorf("expected empty collection, got %d", list.Total)
		}
	})
}

func TestScanEndpoints(t *testing.T) {
	srv := newTestServer(t)
	image := base64.StdEncoding.EncodeToString([]byte("page photo"))

	t.Run("successful scan creates entries", func(t *testing.T) {
		srv.vision.analysis = &entity.PageAnalysis{
			Confidence: 0.9,
			Items: []entity.PageLineItem{
				{Date: "2026-03-10", ItemName: "パン", Amount: 150, SuggestedCategory: "スーパー"},
				{Date: "2026-03-10", ItemName: "電車", Amount: 400, SuggestedCategory: "交通費"},
			},
		}
		srv.vision.err = nil

		w := srv.request(t, http.MethodPost, "/api/v1/scan", map[string]any{"image": image})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			CreatedCount int     `json:"created_count"`
			Confidence   float64 `json:"confidence"`
		}
		decodeBody(t, w, &resp)
		if resp.CreatedCount != 2 {
			t.Errorf("expected 2 created, got %d", resp.CreatedCount)
		}

		// Entries are queryable afterwards.
		w = srv.request(t, http.MethodGet, "/api/v1/entries?year=2026&month=3", nil)
		var list struct {
			Total int `json:"total"`
		}
		decodeBody(t, w, &list)
		if list.Total != 2 {
			t.Errorf("expected 2 entries, got %d", list.Total)
		}

		// Status shows the success.
		w = srv.request(t, http.MethodGet, "/api/v1/scan/status", nil)
		var status struct {
			IsScanning bool    `json:"is_scanning"`
			LastScanAt *string `json:"last_scan_at"`
			ErrorCode  string  `json:"error_code"`
		}
		decodeBody(t, w, &status)
		if status.IsScanning {
			t.Error("expected not scanning")
		}
		if status.LastScanAt == nil {
			t.Error("expected last scan time")
		}
		if status.ErrorCode != "" {
			t.Errorf("expected no error code, got %q", status.ErrorCode)
		}
	})

	t.Run("empty page is 422 and recorded", func(t *testing.T) {
		srv.vision.analysis = &entity.PageAnalysis{Items: nil}
		srv.vision.err = nil

		w := srv.request(t, http.MethodPost, "/api/v1/scan", map[string]any{"image": image})
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
		}

		w = srv.request(t, http.MethodGet, "/api/v1/scan/status", nil)
		var status struct {
			ErrorCode string `json:"error_code"`
		}
		decodeBody(t, w, &status)
		if status.ErrorCode == "" {
			t.Error("expected recorded error code")
		}
	})

	t.Run("vision failure maps to an upstream status", func(t *testing.T) {
		srv.vision.err = fmt.Errorf("rate limit exceeded")

		w := srv.request(t, http.MethodPost, "/api/v1/scan", map[string]any{"image": image})
		if w.Code != http.StatusTooManyRequests {
			t.Errorf("expected 429, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects garbage image", func(t *testing.T) {
		w := srv.request(t, http.MethodPost, "/api/v1/scan", map[string]any{"image": "%%%"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestReportEndpoints(t *testing.T) {
	srv := newTestServer(t)
	foodID := categoryIDByName(t, srv, entity.CategoryNameFood)
	transportID := categoryIDByName(t, srv, entity.CategoryNameTransport)

	seed := []map[string]any{
		{"date": "2026-03-05", "label": "スーパー", "amount": 3000, "category_id": foodID},
		{"date": "2026-03-12", "label": "定期券", "amount": 1000, "category_id": transportID},
		{"date": "2026-02-20", "label": "先月の買い物", "amount": 2000, "category_id": foodID},
	}
	for _, body := range seed {
		w := srv.request(t, http.MethodPost, "/api/v1/entries", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("seed failed: %d %s", w.Code, w.Body.String())
		}
	}

	t.Run("monthly summary", func(t *testing.T) {
		w := srv.request(t, http.MethodGet, "/api/v1/reports/monthly/2026/3", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Total      int64 `json:"total"`
			EntryCount int   `json:"entry_count"`
			Breakdown  []struct {
				CategoryName string  `json:"category_name"`
				Amount       int64   `json:"amount"`
				Percentage   float64 `json:"percentage"`
			} `json:"breakdown"`
		}
		decodeBody(t, w, &resp)

		if resp.Total != 4000 || resp.EntryCount != 2 {
			t.Errorf("expected total 4000 over 2 entries, got %d over %d", resp.Total, resp.EntryCount)
		}
		if len(resp.Breakdown) != 2 || resp.Breakdown[0].CategoryName != entity.CategoryNameFood {
			t.Errorf("unexpected breakdown: %+v", resp.Breakdown)
		}
		if resp.Breakdown[0].Percentage != 75 {
			t.Errorf("expected 75%%, got %v", resp.Breakdown[0].Percentage)
		}
	})

	t.Run("invalid month is 400", func(t *testing.T) {
		w := srv.request(t, http.MethodGet, "/api/v1/reports/monthly/2026/13", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("trend", func(t *testing.T) {
		w := srv.request(t, http.MethodGet, "/api/v1/reports/trend/2026/3?months=2", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Points []struct {
				Year   int   `json:"year"`
				Month  int   `json:"month"`
				Amount int64 `json:"amount"`
			} `json:"points"`
		}
		decodeBody(t, w, &resp)

		if len(resp.Points) != 2 {
			t.Fatalf("expected 2 points, got %d", len(resp.Points))
		}
		if resp.Points[0].Month != 2 || resp.Points[0].Amount != 2000 {
			t.Errorf("unexpected february point: %+v", resp.Points[0])
		}
		if resp.Points[1].Month != 3 || resp.Points[1].Amount != 4000 {
			t.Errorf("unexpected march point: %+v", resp.Points[1])
		}
	})

	t.Run("csv export", func(t *testing.T) {
		w := srv.request(t, http.MethodGet, "/api/v1/export/csv", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
			t.Errorf("expected text/csv content type, got %q", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
			t.Errorf("expected attachment disposition, got %q", cd)
		}

		lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
		}
		if lines[0] != report.CSVHeader {
			t.Errorf("unexpected header: %q", lines[0])
		}
		// Newest first.
		if !strings.HasPrefix(lines[1], "2026-03-12") {
			t.Errorf("expected newest row first, got %q", lines[1])
		}
	})
}
