/*
Package authsdk is the Go client for the Folio token service.

The token service mints and verifies the two token classes used by Folio:
short-lived access tokens (15 minutes) and long-lived refresh tokens (7 days).
It holds the signing secrets; other services only talk to it over HTTP.

# Client

	client := authsdk.NewClient("http://token:4000",
		authsdk.WithTimeout(5*time.Second),
		authsdk.WithAPIKey(os.Getenv("TOKEN_SERVICE_API_KEY")),
	)

	access, err := client.IssueAccess(ctx, jwtx.Principal{ID: id, Username: u, Email: e})
	refresh, err := client.IssueRefresh(ctx, id)

	// Exchange a refresh token for a new access token carrying the
	// current username and email.
	access, err = client.RefreshAccess(ctx, refresh.RefreshToken, u, e)

Every call carries the caller's context and is bounded by the client
timeout.

# Errors

Failures reported by the service come back as *Error, which unwraps to a
sentinel so callers can classify them with errors.Is:

  - jwtx.ErrExpired: the token was genuine but has expired
  - jwtx.ErrInvalid: any other rejected token
  - ErrBadRequest: the request was missing a required field
  - ErrServiceKey: the X-Service-Key header was missing or wrong
  - ErrUnavailable: 5xx answers

Transport failures, timeouts and answers that are not JSON wrap
ErrUnavailable directly.

# Remote verification

RemoteVerifier adapts a Client to httpx.TokenVerifier so a service without
the access secret can still protect its routes:

	mw := httpx.AuthnMiddleware(authsdk.NewRemoteVerifier(client))

An unreachable token service is never treated as a valid token.
*/
package authsdk
