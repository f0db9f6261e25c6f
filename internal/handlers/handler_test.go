package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/cache"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/models"
	"portfolio-api/internal/portfolio"
	"portfolio-api/internal/realtime"
	"portfolio-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "supersecret"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []*models.ContactMessage
	err  error
}

func (m *recordingMailer) NotifyContact(_ context.Context, msg *models.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type recordingClient struct {
	mu   sync.Mutex
	msgs [][]byte
}

func (c *recordingClient) Send(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, message)
	return true
}

func (c *recordingClient) Close() {}

func (c *recordingClient) events(t *testing.T) []realtime.Event {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]realtime.Event, 0, len(c.msgs))
	for _, m := range c.msgs {
		var evt realtime.Event
		require.NoError(t, json.Unmarshal(m, &evt))
		out = append(out, evt)
	}
	return out
}

type testEnv struct {
	router  *gin.Engine
	svc     *portfolio.Service
	mailer  *recordingMailer
	hub     *realtime.Hub
	token   string
	visitor *recordingClient
	admin   *recordingClient
}

// newTestEnv wires the handlers the way the server does, on an in-memory database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	hub := realtime.NewHub()
	visitor, admin := &recordingClient{}, &recordingClient{}
	hub.Register(realtime.ChannelPublic, visitor)
	hub.Register(realtime.ChannelAdmin, admin)

	c := cache.New(cache.NewMemoryStore(cache.Options{ConcurrencySafe: true}), 5*time.Minute,
		cache.WithInvalidationHook(hub.NotifyInvalidation(nil)))
	svc := portfolio.NewService(db, c, nil)
	_, _, err = svc.EnsureAdmin(context.Background(), adminEmail, adminPassword, "Admin")
	require.NoError(t, err)
	// start each test with a quiet event log
	visitor.msgs, admin.msgs = nil, nil

	tokens := auth.NewTokens(auth.TokenConfig{Secret: "test-secret", Issuer: "portfolio-api", Audience: "portfolio-admin"})
	mailer := &recordingMailer{}
	h := New(Deps{Service: svc, Tokens: tokens, Hub: hub, Mailer: mailer, SiteURL: "https://example.com/"})

	r := gin.New()
	r.GET("/feed.xml", h.GetFeed)
	r.POST("/api/admin/login", h.Login)
	r.GET("/api/user/profile", h.GetProfile)
	r.GET("/api/projects", h.GetPublishedProjects)
	r.GET("/api/projects/:slug", h.GetProjectBySlug)
	r.GET("/api/skills", h.GetSkills)
	r.GET("/api/skills/:id", h.GetSkill)
	r.GET("/api/experience", h.GetExperience)
	r.GET("/api/pages/home", h.GetHomePage)
	r.GET("/api/pages/about", h.GetAboutPage)
	r.GET("/api/pages/services", h.GetServicesPage)
	r.POST("/api/contact", h.Contact)
	r.GET("/api/ws", h.PublicWebSocket)

	protected := r.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(tokens))
	protected.POST("/skills", h.CreateSkill)
	protected.DELETE("/skills/:id", h.DeleteSkill)
	protected.POST("/experience", h.CreateExperience)
	protected.PUT("/admin/profile", h.UpdateProfile)
	protected.GET("/admin/projects", h.GetAllProjects)
	protected.POST("/admin/projects", h.CreateProject)
	protected.PUT("/admin/projects/:id", h.UpdateProject)
	protected.DELETE("/admin/projects/:id", h.DeleteProject)
	protected.GET("/admin/messages", h.GetMessages)
	protected.PATCH("/admin/messages/:id/status", h.UpdateMessageStatus)
	protected.GET("/admin/stats", h.GetStats)
	protected.POST("/admin/cache", h.ClearCache)
	protected.GET("/admin/ws", h.AdminWebSocket)

	env := &testEnv{router: r, svc: svc, mailer: mailer, hub: hub, visitor: visitor, admin: admin}
	env.token = env.login(t)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/admin/login", map[string]string{"email": adminEmail, "password": adminPassword}, false)
	require.Equal(t, http.StatusOK, w.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestLogin_RejectsBadPassword(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/admin/login", map[string]string{"email": adminEmail, "password": "nope-nope"}, false)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/login", map[string]string{"email": "not-an-email"}, false)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProfile_CacheHeader(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/user/profile", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, string(cache.SourceFresh), w.Header().Get(CacheSourceHeader))
	require.Equal(t, "Admin", decode[models.Profile](t, w).Name)

	w = env.do(t, http.MethodGet, "/api/user/profile", nil, false)
	require.Equal(t, string(cache.SourceCached), w.Header().Get(CacheSourceHeader))
}

func TestHomePage_ReflectsProfileUpdate(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/pages/home", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	before := decode[HomePage](t, w)
	require.Equal(t, cache.SourceFresh, before.Sources[cache.KeyProfile])
	w = env.do(t, http.MethodGet, "/api/pages/home", nil, false)
	require.Equal(t, cache.SourceCached, decode[HomePage](t, w).Sources[cache.KeyProfile])

	hero := "https://img.example.com/hero-2.jpg"
	w = env.do(t, http.MethodPut, "/api/admin/profile", map[string]string{"heroImage": hero}, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/pages/home", nil, false)
	after := decode[HomePage](t, w)
	require.Equal(t, hero, after.Profile.HeroImage)
	require.Equal(t, cache.SourceFresh, after.Sources[cache.KeyProfile])

	evts := env.visitor.events(t)
	require.Len(t, evts, 1)
	require.Equal(t, realtime.EventCacheInvalidated, evts[0].Type)
	require.Empty(t, evts[0].Keys)
}

func TestUpdateProfile_RequiresToken(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPut, "/api/admin/profile", map[string]string{"name": "X"}, false)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProjects_Lifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/projects", map[string]any{
		"title":        "Event Pipeline",
		"description":  "Built with **Go**.",
		"published":    true,
		"featured":     true,
		"technologies": []string{"Go", "Kafka"},
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Data models.Project `json:"data"`
	}](t, w).Data
	require.Equal(t, "event-pipeline", created.Slug)

	w = env.do(t, http.MethodGet, "/api/projects/event-pipeline", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[portfolio.ProjectDetail](t, w)
	require.Contains(t, detail.DescriptionHTML, "<strong>Go</strong>")
	require.Len(t, detail.Technologies, 2)

	w = env.do(t, http.MethodGet, "/api/pages/home", nil, false)
	require.Len(t, decode[HomePage](t, w).Featured, 1)

	// duplicate explicit slug
	w = env.do(t, http.MethodPost, "/api/admin/projects", map[string]any{"title": "Other", "slug": "event-pipeline"}, true)
	require.Equal(t, http.StatusConflict, w.Code)

	// unpublish hides it from the public surface
	w = env.do(t, http.MethodPut, "/api/admin/projects/"+created.ID, map[string]any{"title": "Event Pipeline", "published": false}, true)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/projects/event-pipeline", nil, false)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(t, http.MethodGet, "/api/projects", nil, false)
	require.Empty(t, decode[[]models.Project](t, w))

	w = env.do(t, http.MethodGet, "/api/admin/projects", nil, true)
	require.Len(t, decode[[]models.Project](t, w), 1)

	w = env.do(t, http.MethodDelete, "/api/admin/projects/"+created.ID, nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodDelete, "/api/admin/projects/"+created.ID, nil, true)
	require.Equal(t, http.StatusNotFound, w.Code)

	for _, evt := range env.visitor.events(t) {
		require.Equal(t, []string{cache.KeyProjects}, evt.Keys)
	}
}

func TestCreateProject_MissingTitle(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/admin/projects", map[string]any{"slug": "x"}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAboutPage_GroupsSkills(t *testing.T) {
	env := newTestEnv(t)

	for _, sk := range []map[string]any{
		{"name": "Go", "category": "Backend", "proficiency": 90},
		{"name": "Terraform", "category": "DevOps", "proficiency": 70},
		{"name": "Postgres", "category": "Backend", "proficiency": 80},
	} {
		w := env.do(t, http.MethodPost, "/api/skills", sk, true)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := env.do(t, http.MethodPost, "/api/skills", map[string]any{"name": "Bad", "category": "X", "proficiency": 150}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/experience", map[string]any{
		"title": "Engineer", "company": "Acme", "startDate": "2020-02-01", "current": true,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/pages/about", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[AboutPage](t, w)
	require.Len(t, page.Skills, 2)
	require.Equal(t, "Backend", page.Skills[0].Category)
	require.Len(t, page.Skills[0].Skills, 2)
	require.Equal(t, "DevOps", page.Skills[1].Category)
	require.Len(t, page.Experience, 1)
	require.Equal(t, cache.SourceFresh, page.Sources[cache.KeySkills])
}

func TestSkill_NotFound(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/skills/missing", nil, false)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Skill not found", decode[map[string]string](t, w)["error"])

	w = env.do(t, http.MethodDelete, "/api/skills/missing", nil, true)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestServicesPage(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/pages/services", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[ServicesPage](t, w)
	require.Len(t, page.Services, len(Services))
	require.Equal(t, "API Development", page.Services[0].Title)
}

func TestContact(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/contact", map[string]string{
		"name": "Ana", "email": "ana@example.com", "message": "Let's talk",
	}, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[struct {
		Success bool                  `json:"success"`
		Data    models.ContactMessage `json:"data"`
	}](t, w)
	require.True(t, resp.Success)
	require.Equal(t, models.DefaultSubject, resp.Data.Subject)

	require.Len(t, env.mailer.sent, 1)
	evts := env.admin.events(t)
	require.Len(t, evts, 1)
	require.Equal(t, realtime.EventMessageReceived, evts[0].Type)
	require.Equal(t, resp.Data.ID, evts[0].ID)
	require.Empty(t, env.visitor.events(t))

	w = env.do(t, http.MethodPatch, "/api/admin/messages/"+resp.Data.ID+"/status", map[string]string{"status": "replied"}, true)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, models.MessageReplied, decode[models.ContactMessage](t, w).Status)

	w = env.do(t, http.MethodPatch, "/api/admin/messages/"+resp.Data.ID+"/status", map[string]string{"status": "lost"}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/admin/messages", nil, true)
	require.Len(t, decode[[]models.ContactMessage](t, w), 1)
}

func TestContact_MailFailureStillSucceeds(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.err = errors.New("smtp down")

	w := env.do(t, http.MethodPost, "/api/contact", map[string]string{
		"name": "Bo", "email": "bo@example.com", "subject": "Hi", "message": "Hello",
	}, false)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/admin/stats", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(1), decode[portfolio.Stats](t, w).NewMessages)
}

func TestContact_Invalid(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodPost, "/api/contact", map[string]string{"name": "Ana", "email": "nope", "message": "x"}, false)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClearCache(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/api/skills", nil, false)

	w := env.do(t, http.MethodPost, "/api/admin/cache", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		Timestamp int64  `json:"timestamp"`
	}](t, w)
	require.True(t, resp.Success)
	require.Equal(t, "Cache cleared successfully", resp.Message)
	require.NotZero(t, resp.Timestamp)

	w = env.do(t, http.MethodGet, "/api/skills", nil, false)
	require.Equal(t, string(cache.SourceFresh), w.Header().Get(CacheSourceHeader))

	require.Len(t, env.visitor.events(t), 1)
	require.Len(t, env.admin.events(t), 1)
}

func TestFeed(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.CreateProject(context.Background(), portfolio.ProjectInput{
		Title: "Search Engine", ShortDescription: "Full-text search", Published: true,
	})
	require.NoError(t, err)
	_, err = env.svc.CreateProject(context.Background(), portfolio.ProjectInput{Title: "Hidden Draft"})
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/feed.xml", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/rss+xml")
	body := w.Body.String()
	require.Contains(t, body, "<title>Search Engine</title>")
	require.Contains(t, body, "https://example.com/projects/search-engine")
	require.NotContains(t, body, "Hidden Draft")
}
