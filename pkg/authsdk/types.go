package authsdk

// Error messages returned by the token service. The client uses them to
// classify failures, so the server and client must agree on them.
const (
	MsgIDRequired           = "id is required"
	MsgNoToken              = "No token provided"
	MsgNoRefreshToken       = "No refresh token provided"
	MsgTokenExpired         = "Token expired"
	MsgInvalidToken         = "Invalid token"
	MsgRefreshTokenExpired  = "Refresh token expired"
	MsgInvalidRefreshToken  = "Invalid refresh token"
	MsgRefreshTokenRequired = "Refresh token required"
	MsgInvalidServiceKey    = "Invalid service key"
	MsgInvalidBody          = "Invalid request body"
)

// ServiceKeyHeader carries the shared key between Folio services.
const ServiceKeyHeader = "X-Service-Key"

// IssueAccessRequest is the body of POST /token/access.
type IssueAccessRequest struct {
	ID       string `json:"id" example:"01J9Z6Q4M8T3E5W2R7Y0U1I9O8"`
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
}

// IssueRefreshRequest is the body of POST /token/refresh.
type IssueRefreshRequest struct {
	ID string `json:"id" example:"01J9Z6Q4M8T3E5W2R7Y0U1I9O8"`
}

// AccessTokenResponse is returned when an access token is minted.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn" example:"900"`
}

// RefreshTokenResponse is returned when a refresh token is minted.
type RefreshTokenResponse struct {
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn" example:"604800"`
}

// VerifyResponse is the result of POST /token/verify.
type VerifyResponse struct {
	Valid    bool   `json:"valid"`
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	JTI      string `json:"jti,omitempty"`
	Exp      int64  `json:"exp,omitempty" example:"1735689600"`
	Error    string `json:"error,omitempty"`
}

// VerifyRefreshRequest is the optional body of POST /token/verify-refresh.
type VerifyRefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// VerifyRefreshResponse is the result of POST /token/verify-refresh.
type VerifyRefreshResponse struct {
	Valid bool   `json:"valid"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// RefreshAccessRequest is the body of POST /token/refresh-access.
type RefreshAccessRequest struct {
	RefreshToken string `json:"refreshToken"`
	Username     string `json:"username" example:"alice"`
	Email        string `json:"email" example:"alice@example.com"`
}

// ErrorResponse is the body of a failed token service request.
type ErrorResponse struct {
	Valid *bool  `json:"valid,omitempty"`
	Error string `json:"error"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes Checks).
type HealthResponse struct {
	// Status indicates the overall health status ("ok" or "degraded")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks maps a dependency name to "ok" or an error description
	Checks map[string]string `json:"checks,omitempty"`
}
