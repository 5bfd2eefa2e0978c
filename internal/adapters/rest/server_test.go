package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	token_adapter "brokerage-service/internal/adapters/jwt"
	"brokerage-service/internal/adapters/media"
	"brokerage-service/internal/adapters/memstore"
	"brokerage-service/internal/adapters/metrics"
	"brokerage-service/internal/adapters/storage"
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/usecase"
)

type testEnv struct {
	router  http.Handler
	store   *storage.CollectionStore
	uploads string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	store, err := storage.NewCollectionStore(ctx, memstore.NewDocumentBackend(), storage.Options{SeedSampleProperties: true})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	tokens, err := token_adapter.NewTokenService("test-signing-key")
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	uploads := t.TempDir()
	mediaStorage, err := media.NewFSStorage(uploads, "/uploads")
	if err != nil {
		t.Fatalf("media storage: %v", err)
	}
	if _, err := usecase.NewCreateUserUseCase(store).Execute(ctx, "admin", "correct-horse"); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	handlers := Handlers{
		Properties: NewPropertyHandlers(
			usecase.NewListPropertiesUseCase(store),
			usecase.NewGetPropertyUseCase(store),
			usecase.NewCreatePropertyUseCase(store),
			usecase.NewUpdatePropertyUseCase(store),
			usecase.NewDeletePropertyUseCase(store),
		),
		Leads: NewLeadHandlers(
			usecase.NewCreateContactUseCase(store, nil),
			usecase.NewListContactsUseCase(store),
			usecase.NewCreateInquiryUseCase(store, store, nil, true),
			usecase.NewListInquiriesUseCase(store),
		),
		Auth: NewAuthHandlers(
			usecase.NewLoginUserUseCase(store, tokens, time.Hour),
			usecase.NewCreateUserUseCase(store),
			usecase.NewGetUserUseCase(store),
		),
		Content: NewContentHandlers(
			usecase.NewGenerateDescriptionUseCase(nil),
			usecase.NewUploadMediaUseCase(mediaStorage),
			1<<20,
		),
	}
	cfg := ServerConfig{
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		UploadsDir:         uploads,
		UploadsPrefix:      "/uploads",
	}
	auth := NewAuthMiddleware(usecase.NewValidateTokenUseCase(tokens))
	router := NewRouter(cfg, handlers, auth, metrics.NewPrometheusMetrics("test"), contextkeys.NoopLogger())
	return &testEnv{router: router, store: store, uploads: uploads}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Username: "admin", Password: "correct-horse"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", rec.Code, rec.Body.String())
	}
	var resp AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if resp.Token == "" || resp.User.Username != "admin" {
		t.Fatalf("unexpected login response %+v", resp)
	}
	return resp.Token
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) PaginatedPropertiesResponse {
	t.Helper()
	var resp PaginatedPropertiesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v (%s)", err, rec.Body.String())
	}
	return resp
}

func TestListPropertiesFilters(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantTotal int
	}{
		{"no filters", "", http.StatusOK, 3},
		{"legacy sentinels", "?type=all&location=All+Locations&status=", http.StatusOK, 3},
		{"all types sentinel", "?type=All+Types", http.StatusOK, 3},
		{"type filter", "?type=luxury_home", http.StatusOK, 1},
		{"location substring", "?location=lekki", http.StatusOK, 2},
		{"price range", "?minPrice=5000000&maxPrice=50000000", http.StatusOK, 2},
		{"featured", "?featured=true", http.StatusOK, 2},
		{"min bedrooms", "?minBedrooms=3", http.StatusOK, 1},
		{"bad price", "?minPrice=cheap", http.StatusBadRequest, 0},
		{"NaN price bound", "?maxPrice=NaN", http.StatusBadRequest, 0},
		{"infinite price bound", "?minPrice=-Inf", http.StatusBadRequest, 0},
		{"bad featured", "?featured=maybe", http.StatusBadRequest, 0},
		{"bad perPage", "?perPage=0", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/properties"+tt.query, "", nil)
			if rec.Code != tt.wantCode {
				t.Fatalf("status %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			if got := decodeList(t, rec); got.Total != tt.wantTotal || len(got.Data) != tt.wantTotal {
				t.Fatalf("total %d items %d, want %d", got.Total, len(got.Data), tt.wantTotal)
			}
		})
	}
}

func TestListPropertiesPagination(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/properties?page=2&perPage=2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	got := decodeList(t, rec)
	if got.Total != 3 || got.Page != 2 || got.PerPage != 2 || len(got.Data) != 1 {
		t.Fatalf("unexpected page %+v", got)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/properties?page=5&perPage=2", "", nil)
	if got := decodeList(t, rec); len(got.Data) != 0 || got.Data == nil {
		t.Fatalf("expected empty non-nil page, got %+v", got)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/properties?page=100000000000000000&perPage=100", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("huge page: status %d", rec.Code)
	}
	if got := decodeList(t, rec); len(got.Data) != 0 || got.Total != 3 {
		t.Fatalf("huge page: unexpected page %+v", got)
	}
}

func TestGetPropertyNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/properties/missing", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
		t.Fatalf("expected JSON error body, got %s", rec.Body.String())
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic YWRtaW46cGFzcw=="},
		{"garbage token", "Bearer not-a-jwt"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/contacts", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status %d, want 401", rec.Code)
			}
		})
	}

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Username: "admin", Password: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status %d, want 401", rec.Code)
	}
}

func TestAdminPropertyLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	create := map[string]interface{}{
		"title":       "Seaside Apartment",
		"type":        "apartment",
		"price":       "42000000",
		"location":    "Victoria Island, Lagos",
		"bedrooms":    "3",
		"description": "Bright corner unit",
		"features":    []string{"Sea view"},
	}
	rec := env.do(t, http.MethodPost, "/api/v1/admin/properties", token, create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.Property
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" || created.Status != domain.StatusAvailable || created.Images == nil {
		t.Fatalf("unexpected created property %+v", created)
	}

	rec = env.do(t, http.MethodPatch, "/api/v1/admin/properties/"+created.ID, token, map[string]interface{}{"status": "sold"})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status %d: %s", rec.Code, rec.Body.String())
	}
	var updated domain.Property
	_ = json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.Status != domain.StatusSold || updated.Title != "Seaside Apartment" {
		t.Fatalf("unexpected updated property %+v", updated)
	}
	if updated.Description == nil || updated.Bedrooms == nil {
		t.Fatalf("omitted fields must stay untouched: %+v", updated)
	}

	rec = env.do(t, http.MethodPatch, "/api/v1/admin/properties/"+created.ID, token,
		`{"description": null, "bedrooms": null}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status %d: %s", rec.Code, rec.Body.String())
	}
	var cleared domain.Property
	_ = json.Unmarshal(rec.Body.Bytes(), &cleared)
	if cleared.Description != nil || cleared.Bedrooms != nil || cleared.Status != domain.StatusSold {
		t.Fatalf("explicit null must clear the field: %+v", cleared)
	}

	rec = env.do(t, http.MethodPut, "/api/v1/admin/properties/missing", token, map[string]interface{}{"featured": true})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update missing status %d, want 404", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/properties/"+created.ID, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status %d, want 204", rec.Code)
	}
	rec = env.do(t, http.MethodDelete, "/api/v1/admin/properties/"+created.ID, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status %d, want 404", rec.Code)
	}
}

func TestSchemaRejectsMalformedBodies(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	tests := []struct {
		name  string
		path  string
		token string
		body  string
	}{
		{"contact without email", "/api/v1/contacts", "", `{"fullName":"Ada","phone":"+2348000000"}`},
		{"contact invalid json", "/api/v1/contacts", "", `{"fullName":`},
		{"inquiry extra field", "/api/v1/inquiries", "", `{"propertyId":"x","fullName":"Ada","email":"a@b.co","phone":"12345","admin":true}`},
		{"property unknown type", "/api/v1/admin/properties", token, `{"title":"T","type":"castle","price":"1","location":"L"}`},
		{"empty patch", "/api/v1/admin/properties/any", token, `{}`},
		{"short password", "/api/v1/admin/users", token, `{"username":"second","password":"short"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := http.MethodPost
			if strings.HasPrefix(tt.path, "/api/v1/admin/properties/") {
				method = http.MethodPatch
			}
			rec := env.do(t, method, tt.path, tt.token, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestLeadsFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/contacts", "", map[string]string{
		"fullName": "Ada Obi",
		"email":    "ada@example.com",
		"phone":    "+2348000000",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("contact status %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/v1/inquiries", "", map[string]string{
		"propertyId": "missing",
		"fullName":   "Ada Obi",
		"email":      "ada@example.com",
		"phone":      "+2348000000",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("inquiry for unknown property status %d, want 400", rec.Code)
	}

	list := decodeList(t, env.do(t, http.MethodGet, "/api/v1/properties?type=luxury_home", "", nil))
	propertyID := list.Data[0].ID
	rec = env.do(t, http.MethodPost, "/api/v1/inquiries", "", map[string]string{
		"propertyId": propertyID,
		"fullName":   "Ada Obi",
		"email":      "ada@example.com",
		"phone":      "+2348000000",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("inquiry status %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/v1/admin/contacts", token, nil)
	var contacts []domain.Contact
	if err := json.Unmarshal(rec.Body.Bytes(), &contacts); err != nil || len(contacts) != 1 {
		t.Fatalf("unexpected contacts %s", rec.Body.String())
	}
	if contacts[0].Status != domain.ContactNew {
		t.Fatalf("contact status %q", contacts[0].Status)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/admin/inquiries?propertyId="+propertyID, token, nil)
	var inquiries []domain.PropertyInquiry
	if err := json.Unmarshal(rec.Body.Bytes(), &inquiries); err != nil || len(inquiries) != 1 {
		t.Fatalf("unexpected inquiries %s", rec.Body.String())
	}
	rec = env.do(t, http.MethodGet, "/api/v1/admin/inquiries?propertyId=other", token, nil)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestUsersEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/users", token, CreateUserRequest{Username: "second", Password: "long-enough"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user status %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password leaked in response: %s", rec.Body.String())
	}
	var user UserResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &user)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/users", token, CreateUserRequest{Username: "second", Password: "long-enough"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate user status %d, want 409", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/admin/users/"+user.ID, token, nil)
	if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("get user status %d body %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodGet, "/api/v1/admin/users/missing", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing user status %d, want 404", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/admin/me", token, nil)
	var me UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil || me.Username != "admin" {
		t.Fatalf("unexpected me response %s", rec.Body.String())
	}
}

func TestGenerateDescriptionUnavailable(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/properties/generate-description", token, map[string]string{
		"title":    "Luxury 4BR Duplex",
		"location": "Lekki Phase 1, Lagos",
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d, want 503", rec.Code)
	}
}

func TestUploadMedia(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	upload := func(filename, contentType string, data []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
		if contentType != "" {
			header["Content-Type"] = []string{contentType}
		}
		part, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		_, _ = part.Write(data)
		_ = mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/media", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		return rec
	}

	png := []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 32))
	rec := upload("front.png", "", png)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status %d: %s", rec.Code, rec.Body.String())
	}
	var resp MediaUploadResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.HasPrefix(resp.URL, "/uploads/properties/") || !strings.HasSuffix(resp.URL, ".png") {
		t.Fatalf("unexpected url %q", resp.URL)
	}
	stored := filepath.Join(env.uploads, filepath.FromSlash(strings.TrimPrefix(resp.URL, "/uploads/")))
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}

	get := httptest.NewRequest(http.MethodGet, resp.URL, nil)
	getRec := httptest.NewRecorder()
	env.router.ServeHTTP(getRec, get)
	if getRec.Code != http.StatusOK || !bytes.Equal(getRec.Body.Bytes(), png) {
		t.Fatalf("static serve status %d", getRec.Code)
	}

	if rec := upload("notes.txt", "text/plain", []byte("hello")); rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("text upload status %d, want 415", rec.Code)
	}
	if rec := upload("huge.jpg", "image/jpeg", bytes.Repeat([]byte("a"), 2<<20)); rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized upload status %d, want 413", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("healthz %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Trace-ID") == "" {
		t.Fatalf("trace id header missing")
	}

	env.do(t, http.MethodGet, "/api/v1/properties", "", nil)
	rec = env.do(t, http.MethodGet, "/metrics", "", nil)
	if !strings.Contains(rec.Body.String(), `route="/api/v1/properties"`) {
		t.Fatalf("metrics missing route label:\n%s", rec.Body.String())
	}
}

func TestParseFilterStringSentinels(t *testing.T) {
	for _, value := range []string{"", "  ", "all", "ALL", "All Types", "All Locations"} {
		q := map[string][]string{"type": {value}}
		if got := parseFilterString(q, "type"); got != nil {
			t.Errorf("%q: expected nil, got %q", value, *got)
		}
	}
	q := map[string][]string{"location": {" Lekki "}}
	if got := parseFilterString(q, "location"); got == nil || *got != "Lekki" {
		t.Fatalf("expected trimmed value, got %v", got)
	}
}
