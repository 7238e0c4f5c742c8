package dto

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// LoginResponse carries the freshly issued token pair at the top level of the
// envelope, matching the shape clients already parse.
type LoginResponse struct {
	Success      bool   `json:"success"`
	Code         int    `json:"code"`
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	Success     bool   `json:"success"`
	Code        int    `json:"code"`
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}
