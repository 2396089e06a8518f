package models

// UserSummary is the read-only roster projection returned by the backend
// user listing. AssignedAssetCount is computed server-side.
type UserSummary struct {
	ID                 int64  `json:"id"`
	Username           string `json:"username"`
	Role               string `json:"role"`
	AssignedAssetCount int    `json:"assignedAssetCount"`
}

// LoginRequest is the credential payload for the backend login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token issued by the backend.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is the payload for the backend registration endpoint.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
