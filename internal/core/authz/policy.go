// Package authz holds the single authorization decision for the whole API.
// Every mutation path — thread, post, or admin — goes through Authorize so
// the ownership and role rules cannot drift between entity types.
package authz

import (
	"github.com/openboard/forum-api/internal/core/domain"
)

// Action describes what a request is trying to do, independent of the entity
// type it targets.
type Action struct {
	Name          string
	RequiresAuth  bool
	RequiresAdmin bool
	OwnerScoped   bool
}

var (
	// AuthorContent covers creating a thread or post.
	AuthorContent = Action{Name: "author_content", RequiresAuth: true}

	// MutateOwnContent covers editing or deleting a thread or post.
	MutateOwnContent = Action{Name: "mutate_own_content", RequiresAuth: true, OwnerScoped: true}

	// Moderate covers admin-only operations (ban, force delete, user listing).
	Moderate = Action{Name: "moderate", RequiresAuth: true, RequiresAdmin: true}
)

// Authorize decides whether the principal may perform the action against a
// resource owned by resourceOwnerID. Rules are evaluated in order:
//
//  1. action requires authentication and principal is absent → ErrUnauthenticated
//  2. action requires the Admin role and principal lacks it → ErrForbidden
//  3. action is owner-scoped, the principal is not the owner and not an
//     Admin → ErrForbidden
//  4. otherwise allowed (nil)
//
// For actions that are not owner-scoped, resourceOwnerID is ignored.
func Authorize(p *domain.Principal, action Action, resourceOwnerID string) error {
	if action.RequiresAuth && p == nil {
		return domain.ErrUnauthenticated
	}
	if action.RequiresAdmin && !p.IsAdmin() {
		return domain.ErrForbidden
	}
	if action.OwnerScoped && p.UserID != resourceOwnerID && !p.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
