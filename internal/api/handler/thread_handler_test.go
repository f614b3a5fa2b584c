package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/openboard/forum-api/internal/api/middleware"
	"github.com/openboard/forum-api/internal/core/domain"
)

type stubThreadService struct {
	createFn func(ctx context.Context, p *domain.Principal, title, initialMessage string) (*domain.Thread, error)
	listFn   func(ctx context.Context) ([]domain.Thread, error)
	getFn    func(ctx context.Context, id string) (*domain.Thread, error)
	updateFn func(ctx context.Context, p *domain.Principal, id, title, initialMessage string) (*domain.Thread, error)
	deleteFn func(ctx context.Context, p *domain.Principal, id string) error
}

func (s *stubThreadService) Create(ctx context.Context, p *domain.Principal, title, initialMessage string) (*domain.Thread, error) {
	return s.createFn(ctx, p, title, initialMessage)
}

func (s *stubThreadService) List(ctx context.Context) ([]domain.Thread, error) {
	return s.listFn(ctx)
}

func (s *stubThreadService) Get(ctx context.Context, id string) (*domain.Thread, error) {
	return s.getFn(ctx, id)
}

func (s *stubThreadService) Update(ctx context.Context, p *domain.Principal, id, title, initialMessage string) (*domain.Thread, error) {
	return s.updateFn(ctx, p, id, title, initialMessage)
}

func (s *stubThreadService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	return s.deleteFn(ctx, p, id)
}

func TestThreadHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubThreadService{
		listFn: func(ctx context.Context) ([]domain.Thread, error) {
			return []domain.Thread{
				{ID: "t2", Title: "newer", AuthorUsername: "bob"},
				{ID: "t1", Title: "older", AuthorUsername: "alice"},
			}, nil
		},
	}
	handler := NewThreadHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/threads/all", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["threadId"] != "t2" || resp[1]["threadId"] != "t1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestThreadHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubThreadService{
		getFn: func(ctx context.Context, id string) (*domain.Thread, error) {
			return nil, domain.ErrThreadNotFound
		},
	}
	handler := NewThreadHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/threads/thread/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := handler.Get(c)
	if !errors.Is(err, domain.ErrThreadNotFound) {
		t.Fatalf("expected ErrThreadNotFound, got %v", err)
	}
}

func TestThreadHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	principal := &domain.Principal{UserID: "u1", Username: "alice", Role: domain.RoleMember}
	stub := &stubThreadService{
		createFn: func(ctx context.Context, p *domain.Principal, title, initialMessage string) (*domain.Thread, error) {
			if p != principal {
				t.Fatalf("principal not forwarded")
			}
			return &domain.Thread{ID: "t1", Title: title, InitialMessage: initialMessage, AuthorID: p.UserID, AuthorUsername: p.Username}, nil
		},
	}
	handler := NewThreadHandler(stub)

	body := strings.NewReader(`{"title":"Hello","initialMessage":"first thread"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/threads/thread/new", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyPrincipal, principal)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["threadId"] != "t1" || resp["authorUsername"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestThreadHandler_Create_TitleTooLong(t *testing.T) {
	e := newTestEcho()
	stub := &stubThreadService{
		createFn: func(ctx context.Context, p *domain.Principal, title, initialMessage string) (*domain.Thread, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewThreadHandler(stub)

	long := strings.Repeat("x", 51)
	body := strings.NewReader(`{"title":"` + long + `","initialMessage":"ok message"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/threads/thread/new", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestThreadHandler_Update_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubThreadService{
		updateFn: func(ctx context.Context, p *domain.Principal, id, title, initialMessage string) (*domain.Thread, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewThreadHandler(stub)

	body := strings.NewReader(`{"title":"New title","initialMessage":"edited"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/threads/thread/t1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	c.Set(middleware.ContextKeyPrincipal, &domain.Principal{UserID: "u2", Username: "bob", Role: domain.RoleMember})

	err := handler.Update(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestThreadHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	var deletedID string
	stub := &stubThreadService{
		deleteFn: func(ctx context.Context, p *domain.Principal, id string) error {
			deletedID = id
			return nil
		},
	}
	handler := NewThreadHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/threads/thread/t1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	c.Set(middleware.ContextKeyPrincipal, &domain.Principal{UserID: "u1", Username: "alice", Role: domain.RoleMember})

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deletedID != "t1" {
		t.Fatalf("expected t1 deleted, got %q", deletedID)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["threadId"] != "t1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
