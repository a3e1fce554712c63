// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/communitycare/carehub/internal/app/system/auth"
	"github.com/communitycare/carehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a
// found flag. If no user is present in context or the user ID is malformed,
// it returns "visitor", "", NilObjectID, false — so ok=true always means a
// valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in token - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsAdmin reports whether the current user is an admin or super admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && (role == strings.ToLower(models.RoleAdmin) || role == strings.ToLower(models.RoleSuperAdmin))
}

// IsOrganizer reports whether the current user is an event organizer.
func IsOrganizer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == strings.ToLower(models.RoleOrganizer)
}

// IsVolunteer reports whether the current user is a volunteer.
func IsVolunteer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == strings.ToLower(models.RoleVolunteer)
}

// HasAnyRole reports whether the current user has any of the given roles.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}
