package permission

// Role is the closed set of user roles. Tokens embed the role at mint
// time, so evaluators only ever see one of these three values (or an
// empty string for anonymous callers).
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// ParseRole maps a stored role string onto the closed set. Unknown
// values fall back to the plain user role.
func ParseRole(s string) Role {
	r := Role(s)
	if !r.Valid() {
		return RoleUser
	}
	return r
}

// CanWriteCatalog gates Category/Genre/Title mutations.
// Reads are open to everyone, including anonymous callers.
func CanWriteCatalog(r Role) bool {
	return r == RoleAdmin
}

// CanCreateContent gates Review/Comment creation: any authenticated
// caller may create.
func CanCreateContent(r Role) bool {
	return r.Valid()
}

// CanModifyContent gates Review/Comment update and delete: the
// content's author, or a moderator, or an admin.
func CanModifyContent(r Role, isAuthor bool) bool {
	if isAuthor {
		return r.Valid()
	}
	return r == RoleModerator || r == RoleAdmin
}

// CanAdminUsers gates the administrative /users endpoints.
// The "me" accessor is open to any authenticated caller and is not
// decided here.
func CanAdminUsers(r Role) bool {
	return r == RoleAdmin
}
