package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/publisher-backend/internal/domain"
	"github.com/yungbote/publisher-backend/internal/platform/apierr"
)

type fakePublications struct {
	lastFilter *types.PublicationFilter
	lastDate   time.Time
	lastID     uint
	err        error
}

func (f *fakePublications) Create(_ context.Context, mediaID, postID uint, date time.Time) (*types.Publication, error) {
	f.lastDate = date
	if f.err != nil {
		return nil, f.err
	}
	return &types.Publication{ID: 1, MediaID: mediaID, PostID: postID, Date: date}, nil
}

func (f *fakePublications) List(_ context.Context, filter types.PublicationFilter) ([]*types.Publication, error) {
	f.lastFilter = &filter
	return []*types.Publication{}, f.err
}

func (f *fakePublications) Get(_ context.Context, id uint) (*types.Publication, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &types.Publication{ID: id}, nil
}

func (f *fakePublications) Update(_ context.Context, id, mediaID, postID uint, date time.Time) (*types.Publication, error) {
	return &types.Publication{ID: id, MediaID: mediaID, PostID: postID, Date: date}, f.err
}

func (f *fakePublications) Remove(_ context.Context, id uint) (*types.Publication, error) {
	return &types.Publication{ID: id}, f.err
}

type fakePosts struct {
	row *types.Post
}

func (f *fakePosts) Create(_ context.Context, title, text string, image *string) (*types.Post, error) {
	return &types.Post{ID: 1, Title: title, Text: text, Image: image}, nil
}
func (f *fakePosts) List(context.Context) ([]*types.Post, error) { return []*types.Post{f.row}, nil }
func (f *fakePosts) Get(context.Context, uint) (*types.Post, error) {
	return f.row, nil
}
func (f *fakePosts) Update(_ context.Context, id uint, title, text string, image *string) (*types.Post, error) {
	return &types.Post{ID: id, Title: title, Text: text, Image: image}, nil
}
func (f *fakePosts) Remove(context.Context, uint) (*types.Post, error) { return f.row, nil }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var env struct {
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, rec.Body.String())
	}
	return env.Error.Code, env.Error.Message
}

func TestPublicationListQueryParsing(t *testing.T) {
	svc := &fakePublications{}
	h := NewPublicationHandler(svc)
	r := newTestRouter()
	r.GET("/publications", h.List)

	cases := []struct {
		query         string
		wantStatus    int
		wantPublished bool
		wantAfter     string
	}{
		{query: "", wantStatus: http.StatusOK},
		{query: "?published=true", wantStatus: http.StatusOK, wantPublished: true},
		{query: "?published=false", wantStatus: http.StatusOK},
		{query: "?after=2024-03-01", wantStatus: http.StatusOK, wantAfter: "2024-03-01T00:00:00Z"},
		{query: "?after=2024-03-01T10:30:00%2B02:00", wantStatus: http.StatusOK, wantAfter: "2024-03-01T08:30:00Z"},
		{query: "?published=1&after=2024-03-01", wantStatus: http.StatusOK, wantPublished: true, wantAfter: "2024-03-01T00:00:00Z"},
		{query: "?published=maybe", wantStatus: http.StatusBadRequest},
		{query: "?after=yesterday", wantStatus: http.StatusBadRequest},
	}

	for _, tc := range cases {
		svc.lastFilter = nil
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/publications"+tc.query, nil))
		if rec.Code != tc.wantStatus {
			t.Fatalf("%q: status want=%d got=%d (%s)", tc.query, tc.wantStatus, rec.Code, rec.Body.String())
		}
		if tc.wantStatus != http.StatusOK {
			if code, _ := decodeError(t, rec); code != "invalid_query" {
				t.Fatalf("%q: code want=invalid_query got=%s", tc.query, code)
			}
			if svc.lastFilter != nil {
				t.Fatalf("%q: service called despite a bad query", tc.query)
			}
			continue
		}
		if svc.lastFilter.Published != tc.wantPublished {
			t.Fatalf("%q: published want=%v got=%v", tc.query, tc.wantPublished, svc.lastFilter.Published)
		}
		gotAfter := ""
		if svc.lastFilter.After != nil {
			gotAfter = svc.lastFilter.After.Format(time.RFC3339)
		}
		if gotAfter != tc.wantAfter {
			t.Fatalf("%q: after want=%q got=%q", tc.query, tc.wantAfter, gotAfter)
		}
	}
}

func TestPublicationCreateValidation(t *testing.T) {
	svc := &fakePublications{}
	h := NewPublicationHandler(svc)
	r := newTestRouter()
	r.POST("/publications", h.Create)

	bad := []string{
		`{"postId":1,"date":"2030-01-01"}`,
		`{"mediaId":1,"date":"2030-01-01"}`,
		`{"mediaId":1,"postId":1}`,
		`{"mediaId":1,"postId":1,"date":"soon"}`,
		`not json`,
	}
	for _, body := range bad {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/publications", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status want=400 got=%d", body, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/publications", strings.NewReader(`{"mediaId":2,"postId":3,"date":"2030-01-01"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("valid create: status want=201 got=%d (%s)", rec.Code, rec.Body.String())
	}
	if !svc.lastDate.Equal(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date-only input should be UTC midnight, got %v", svc.lastDate)
	}
}

func TestInvalidPathID(t *testing.T) {
	h := NewPublicationHandler(&fakePublications{})
	r := newTestRouter()
	r.GET("/publications/:id", h.Get)

	for _, id := range []string{"abc", "1.5", "99999999999999999999"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/publications/"+id, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("id %q: status want=400 got=%d", id, rec.Code)
		}
		if code, _ := decodeError(t, rec); code != "invalid_id" {
			t.Fatalf("id %q: code want=invalid_id got=%s", id, code)
		}
	}
}

func TestNonPositivePathIDReachesService(t *testing.T) {
	svc := &fakePublications{err: apierr.NotFound("publication_not_found", "publication not found")}
	h := NewPublicationHandler(svc)
	r := newTestRouter()
	r.GET("/publications/:id", h.Get)

	for _, id := range []string{"0", "-1"} {
		svc.lastID = 42
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/publications/"+id, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("id %q: status want=404 got=%d", id, rec.Code)
		}
		if svc.lastID != 0 {
			t.Fatalf("id %q: service saw id %d, want 0", id, svc.lastID)
		}
	}
}

func TestServiceErrorMapping(t *testing.T) {
	svc := &fakePublications{}
	h := NewPublicationHandler(svc)
	r := newTestRouter()
	r.GET("/publications/:id", h.Get)

	svc.err = apierr.Forbidden("publication_elapsed", "publication %d already went out", 5)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/publications/5", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("apierr status want=403 got=%d", rec.Code)
	}
	if code, msg := decodeError(t, rec); code != "publication_elapsed" || !strings.Contains(msg, "already went out") {
		t.Fatalf("apierr envelope: code=%s message=%s", code, msg)
	}

	svc.err = errors.New("pq: connection reset by peer")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/publications/5", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("plain error status want=500 got=%d", rec.Code)
	}
	code, msg := decodeError(t, rec)
	if code != "internal_error" || strings.Contains(msg, "pq:") {
		t.Fatalf("500 envelope leaked store detail: code=%s message=%s", code, msg)
	}
}

func TestPostViewsOmitNullImage(t *testing.T) {
	h := NewPostHandler(&fakePosts{row: &types.Post{ID: 4, Title: "t", Text: "x"}})
	r := newTestRouter()
	r.GET("/posts", h.List)
	r.GET("/posts/:id", h.Get)

	for _, path := range []string{"/posts", "/posts/4"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status want=200 got=%d", path, rec.Code)
		}
		if strings.Contains(rec.Body.String(), `"image"`) {
			t.Fatalf("%s: NULL image leaked into output: %s", path, rec.Body.String())
		}
	}
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter()
	r.GET("/health", NewHealthHandler().HealthCheck)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "I’m okay!" {
		t.Fatalf("health: status=%d body=%q", rec.Code, rec.Body.String())
	}
}
