package service

import (
	"strings"

	"github.com/sakif/edumentor/internal/apperror"
	"github.com/sakif/edumentor/internal/model"
)

// AdminRoleName is the role allowed to moderate content it does not own.
const AdminRoleName = "admin"

// IsAdmin reports whether user holds the admin role. Role names compare
// case-insensitively.
func IsAdmin(user *model.User) bool {
	return user != nil && strings.EqualFold(strings.TrimSpace(user.Role.Name), AdminRoleName)
}

// authorize allows actor to change something owned by ownerID: admins may
// change anything, everyone else only their own.
func authorize(actor *model.User, ownerID int64, what string) error {
	if actor == nil || actor.ID == 0 {
		return apperror.Unauthorized("login required")
	}
	if IsAdmin(actor) || actor.ID == ownerID {
		return nil
	}
	return apperror.Forbidden("you do not have permission to delete this " + what)
}
