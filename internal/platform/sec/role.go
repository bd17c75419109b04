// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is the authorization level carried in access tokens.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"     // site settings, accounts, layout
	RoleModerator UserRole = "moderator" // catalogue, imports, comments
	RoleAuthor    UserRole = "author"
	RoleMember    UserRole = "member" // default for new registrations
)

// hierarchy is ordered from least to most privileged.
var hierarchy = []UserRole{RoleMember, RoleAuthor, RoleModerator, RoleAdmin}

// AtLeast reports whether r grants everything target grants. Unknown roles
// grant nothing.
func (r UserRole) AtLeast(target UserRole) bool {
	have, want := r.rank(), target.rank()
	return have >= 0 && have >= want
}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r.rank() >= 0
}

// RoleNames returns every role, least privileged first.
func RoleNames() []string {
	names := make([]string, len(hierarchy))
	for i, role := range hierarchy {
		names[i] = string(role)
	}
	return names
}

func (r UserRole) rank() int {
	for i, role := range hierarchy {
		if role == r {
			return i
		}
	}
	return -1
}
