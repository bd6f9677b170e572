package constants

// Role names as carried in JWT claims.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleParent  = "parent"
)

// Forbidden-message templates used by the role middleware callers.
const (
	ErrOnlyTeachersCanAccess = "Only teachers or admins may access this resource."
	ErrOnlyStudentsCanAccess = "Only students may access this resource."
	ErrOnlyParentsCanAccess  = "Only parents may access this resource."
	ErrOnlyAdminsCanAccess   = "Only admins may access this resource."
)

var (
	TeacherAndAbove = []string{RoleTeacher, RoleAdmin}
	AllRoles        = []string{RoleAdmin, RoleTeacher, RoleStudent, RoleParent}
)
