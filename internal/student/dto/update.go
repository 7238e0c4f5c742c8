package dto

// UpdateProfileInput carries the optional profile fields; empty values are
// left untouched. Password changes are gated by the strong policy.
type UpdateProfileInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	DOB      string `json:"dob"`
	Password string `json:"password"`
}
