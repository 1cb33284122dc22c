package authsdk

import (
	"context"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
)

// IssueAccess mints an access token for p.
func (c *Client) IssueAccess(ctx context.Context, p jwtx.Principal) (*AccessTokenResponse, error) {
	var out AccessTokenResponse
	req := IssueAccessRequest{ID: p.ID, Username: p.Username, Email: p.Email}
	if err := c.postJSON(ctx, "/token/access", req, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IssueRefresh mints a refresh token for the principal id.
func (c *Client) IssueRefresh(ctx context.Context, id string) (*RefreshTokenResponse, error) {
	var out RefreshTokenResponse
	if err := c.postJSON(ctx, "/token/refresh", IssueRefreshRequest{ID: id}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify checks an access token. Rejected tokens return an error that
// unwraps to jwtx.ErrExpired or jwtx.ErrInvalid.
func (c *Client) Verify(ctx context.Context, accessToken string) (*VerifyResponse, error) {
	var out VerifyResponse
	headers := map[string]string{"Authorization": "Bearer " + accessToken}
	if err := c.postJSON(ctx, "/token/verify", nil, headers, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyRefresh checks a refresh token and returns the principal id it
// was issued for.
func (c *Client) VerifyRefresh(ctx context.Context, refreshToken string) (*VerifyRefreshResponse, error) {
	var out VerifyRefreshResponse
	req := VerifyRefreshRequest{RefreshToken: refreshToken}
	if err := c.postJSON(ctx, "/token/verify-refresh", req, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshAccess exchanges a refresh token for a new access token carrying
// the supplied username and email.
func (c *Client) RefreshAccess(ctx context.Context, refreshToken, username, email string) (*AccessTokenResponse, error) {
	var out AccessTokenResponse
	req := RefreshAccessRequest{RefreshToken: refreshToken, Username: username, Email: email}
	if err := c.postJSON(ctx, "/token/refresh-access", req, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
