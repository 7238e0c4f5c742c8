package constant

const (
	BcryptCost = 10

	MinNameLength             = 3
	MinRegisterPasswordLength = 6
	MinUpdatePasswordLength   = 8

	DefaultPage  = 1
	DefaultLimit = 10

	MinStudentAgeYears = 10

	PasswordSymbols = "@$!%*?&"
)

// Subjects a student may enrol in.
var AllowedSubjects = []string{"Maths", "Physics", "Chemistry", "Biology", "English"}
