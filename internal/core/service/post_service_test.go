package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/openboard/forum-api/internal/core/domain"
)

type postFixture struct {
	svc     *PostService
	users   *stubUserRepo
	threads *stubThreadRepo
	posts   *stubPostRepo

	alice  *domain.User
	bob    *domain.User
	admin  *domain.User
	thread *domain.Thread
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	ctx := context.Background()
	users := newStubUserRepo()
	threads := newStubThreadRepo()
	posts := newStubPostRepo()

	alice, _ := users.Create(ctx, &domain.User{Username: "alice", Role: domain.RoleMember})
	bob, _ := users.Create(ctx, &domain.User{Username: "bob", Role: domain.RoleMember})
	admin, _ := users.Create(ctx, &domain.User{Username: "root", Role: domain.RoleAdmin})
	thread, _ := threads.Insert(ctx, &domain.Thread{Title: "Topic", AuthorID: alice.ID, Published: time.Now()})

	return &postFixture{
		svc:     NewPostService(posts, threads, users, testLogger()),
		users:   users,
		threads: threads,
		posts:   posts,
		alice:   alice,
		bob:     bob,
		admin:   admin,
		thread:  thread,
	}
}

func TestPostService_Create(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Create(context.Background(), principalOf(f.bob), f.thread.ID, "Hello thread")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.ThreadID != f.thread.ID || post.AuthorID != f.bob.ID || post.AuthorUsername != "bob" {
		t.Fatalf("unexpected post: %+v", post)
	}
}

func TestPostService_Create_MissingThreadOrOwner(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, principalOf(f.bob), "t999", "Hello thread")
	if !errors.Is(err, domain.ErrThreadNotFound) {
		t.Fatalf("expected ErrThreadNotFound, got %v", err)
	}

	ghost := &domain.Principal{UserID: "u999", Username: "ghost", Role: domain.RoleMember}
	_, err = f.svc.Create(ctx, ghost, f.thread.ID, "Hello thread")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPostService_Create_Bounds(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, principalOf(f.bob), f.thread.ID, "xy"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("short message: expected ErrValidation, got %v", err)
	}
	long := strings.Repeat("x", 401)
	if _, err := f.svc.Create(ctx, principalOf(f.bob), f.thread.ID, long); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("long message: expected ErrValidation, got %v", err)
	}
}

func seedPosts(f *postFixture, n int) {
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		f.posts.Insert(context.Background(), &domain.Post{
			ThreadID:  f.thread.ID,
			AuthorID:  f.bob.ID,
			Message:   fmt.Sprintf("post %d", i),
			Published: base.Add(time.Duration(i) * time.Minute),
		})
	}
}

func TestPostService_ListByThread_Pagination(t *testing.T) {
	f := newPostFixture(t)
	seedPosts(f, 5)

	page, err := f.svc.ListByThread(context.Background(), f.thread.ID, 1, 2)
	if err != nil {
		t.Fatalf("ListByThread: %v", err)
	}
	if page.Total != 5 || page.LastPage != 3 || page.CurrentPage != 1 || page.PerPage != 2 || page.Count != 2 {
		t.Fatalf("unexpected pagination: %+v", page)
	}
	// newest first
	if page.Posts[0].Message != "post 4" || page.Posts[1].Message != "post 3" {
		t.Fatalf("not newest-first: %+v", page.Posts)
	}

	// last page holds the remainder
	page, err = f.svc.ListByThread(context.Background(), f.thread.ID, 3, 2)
	if err != nil {
		t.Fatalf("ListByThread last page: %v", err)
	}
	if page.Count != 1 || page.Posts[0].Message != "post 0" {
		t.Fatalf("unexpected last page: %+v", page)
	}
}

func TestPostService_ListByThread_PageOutOfRange(t *testing.T) {
	f := newPostFixture(t)
	seedPosts(f, 3)

	for _, page := range []int{0, -1, 3} {
		_, err := f.svc.ListByThread(context.Background(), f.thread.ID, page, 2)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("page %d: expected ErrValidation, got %v", page, err)
		}
	}
}

func TestPostService_ListByThread_EmptyThreadIsNotFound(t *testing.T) {
	f := newPostFixture(t)

	// zero posts → not-found, never an empty page
	_, err := f.svc.ListByThread(context.Background(), f.thread.ID, 1, 10)
	if !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_ListByThread_BadPerPage(t *testing.T) {
	f := newPostFixture(t)
	seedPosts(f, 1)

	_, err := f.svc.ListByThread(context.Background(), f.thread.ID, 1, 0)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPostService_Update_OwnershipRules(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, _ := f.svc.Create(ctx, principalOf(f.bob), f.thread.ID, "Original text")

	if _, err := f.svc.Update(ctx, principalOf(f.alice), post.ID, "Hijacked text"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.Update(ctx, nil, post.ID, "Anonymous edit"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	updated, err := f.svc.Update(ctx, principalOf(f.bob), post.ID, "Edited by owner")
	if err != nil {
		t.Fatalf("owner Update: %v", err)
	}
	if updated.Message != "Edited by owner" {
		t.Fatalf("message not updated: %+v", updated)
	}

	if _, err := f.svc.Update(ctx, principalOf(f.admin), post.ID, "Edited by admin"); err != nil {
		t.Fatalf("admin Update: %v", err)
	}
}

func TestPostService_Update_Gone(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, _ := f.svc.Create(ctx, principalOf(f.bob), f.thread.ID, "Original text")

	f.posts.mu.Lock()
	delete(f.posts.posts, post.ID)
	f.posts.mu.Unlock()

	_, err := f.svc.Update(ctx, principalOf(f.bob), post.ID, "Too late anyway")
	if !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Delete(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()

	post, _ := f.svc.Create(ctx, principalOf(f.bob), f.thread.ID, "Delete me soon")

	if err := f.svc.Delete(ctx, principalOf(f.alice), post.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.svc.Delete(ctx, principalOf(f.bob), post.ID); err != nil {
		t.Fatalf("owner Delete: %v", err)
	}
	if _, err := f.posts.FindByID(ctx, post.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("post still present")
	}
}
