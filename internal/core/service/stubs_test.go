package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/openboard/forum-api/internal/core/domain"
	"github.com/openboard/forum-api/internal/core/ports"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// ── user repository ───────────────────────────────────────────────────────────

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*domain.User // by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// ── thread repository ─────────────────────────────────────────────────────────

type stubThreadRepo struct {
	mu      sync.Mutex
	nextID  int
	threads map[string]*domain.Thread

	failDelete bool
}

func newStubThreadRepo() *stubThreadRepo {
	return &stubThreadRepo{threads: make(map[string]*domain.Thread)}
}

func (r *stubThreadRepo) Insert(_ context.Context, thread *domain.Thread) (*domain.Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *thread
	clone.ID = fmt.Sprintf("t%d", r.nextID)
	r.threads[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubThreadRepo) FindByID(_ context.Context, id string) (*domain.Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.threads[id]
	if !ok {
		return nil, domain.ErrThreadNotFound
	}
	out := *t
	return &out, nil
}

func (r *stubThreadRepo) FindAll(_ context.Context) ([]domain.Thread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Thread, 0, len(r.threads))
	for _, t := range r.threads {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Published.After(out[j].Published) })
	return out, nil
}

func (r *stubThreadRepo) FindIDsByAuthor(_ context.Context, authorID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id, t := range r.threads {
		if t.AuthorID == authorID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *stubThreadRepo) Update(_ context.Context, id, title, initialMessage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.threads[id]
	if !ok {
		return domain.ErrThreadNotFound
	}
	t.Title = title
	t.InitialMessage = initialMessage
	return nil
}

func (r *stubThreadRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDelete {
		return fmt.Errorf("simulated storage failure")
	}
	if _, ok := r.threads[id]; !ok {
		return domain.ErrThreadNotFound
	}
	delete(r.threads, id)
	return nil
}

func (r *stubThreadRepo) DeleteByAuthor(_ context.Context, authorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDelete {
		return fmt.Errorf("simulated storage failure")
	}
	for id, t := range r.threads {
		if t.AuthorID == authorID {
			delete(r.threads, id)
		}
	}
	return nil
}

// ── post repository ───────────────────────────────────────────────────────────

type stubPostRepo struct {
	mu     sync.Mutex
	nextID int
	posts  map[string]*domain.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Insert(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *post
	clone.ID = fmt.Sprintf("p%d", r.nextID)
	if clone.Published.IsZero() {
		clone.Published = time.Now().UTC()
	}
	r.posts[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	out := *p
	return &out, nil
}

func (r *stubPostRepo) FindByThread(_ context.Context, threadID string, offset, limit int) ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []domain.Post
	for _, p := range r.posts {
		if p.ThreadID == threadID {
			all = append(all, *p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Published.After(all[j].Published) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *stubPostRepo) CountByThread(_ context.Context, threadID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.posts {
		if p.ThreadID == threadID {
			n++
		}
	}
	return n, nil
}

func (r *stubPostRepo) Update(_ context.Context, id, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Message = message
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) DeleteByThread(_ context.Context, threadID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.posts {
		if p.ThreadID == threadID {
			delete(r.posts, id)
		}
	}
	return nil
}

func (r *stubPostRepo) DeleteByAuthorOrThreads(_ context.Context, authorID string, threadIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inThreads := make(map[string]struct{}, len(threadIDs))
	for _, id := range threadIDs {
		inThreads[id] = struct{}{}
	}
	for id, p := range r.posts {
		if p.AuthorID == authorID {
			delete(r.posts, id)
			continue
		}
		if _, ok := inThreads[p.ThreadID]; ok {
			delete(r.posts, id)
		}
	}
	return nil
}

// ── transaction runner ────────────────────────────────────────────────────────

// stubTxRunner snapshots the stub repositories before running fn and restores
// them when fn fails, mimicking rollback.
type stubTxRunner struct {
	users   *stubUserRepo
	threads *stubThreadRepo
	posts   *stubPostRepo

	calls int
}

func (tx *stubTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++

	var userSnap map[string]*domain.User
	var threadSnap map[string]*domain.Thread
	var postSnap map[string]*domain.Post
	if tx.users != nil {
		userSnap = snapshotMap(tx.users.users)
	}
	if tx.threads != nil {
		threadSnap = snapshotMap(tx.threads.threads)
	}
	if tx.posts != nil {
		postSnap = snapshotMap(tx.posts.posts)
	}

	if err := fn(ctx); err != nil {
		if tx.users != nil {
			tx.users.users = userSnap
		}
		if tx.threads != nil {
			tx.threads.threads = threadSnap
		}
		if tx.posts != nil {
			tx.posts.posts = postSnap
		}
		return err
	}
	return nil
}

func snapshotMap[V any](m map[string]*V) map[string]*V {
	out := make(map[string]*V, len(m))
	for k, v := range m {
		clone := *v
		out[k] = &clone
	}
	return out
}

// ── token service / revoker / audit ───────────────────────────────────────────

type stubTokenService struct {
	issued []domain.Principal
	fail   bool
}

func (s *stubTokenService) Issue(p domain.Principal) (string, error) {
	if s.fail {
		return "", fmt.Errorf("signing failed")
	}
	s.issued = append(s.issued, p)
	return "token-for-" + p.Username, nil
}

func (s *stubTokenService) Parse(string) (*ports.ParsedToken, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubRevoker struct {
	revoked map[string]time.Duration
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	r.revoked[tokenID] = ttl
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := r.revoked[tokenID]
	return ok, nil
}

type stubAudit struct {
	entries []domain.AuditEntry
}

func (a *stubAudit) Record(entry domain.AuditEntry) {
	a.entries = append(a.entries, entry)
}
