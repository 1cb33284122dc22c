package http_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	backendhttp "github.com/aussiebroadwan/folio/internal/backend/http"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, request{method: http.MethodGet, path: "/livez"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "test", decode[backendhttp.HealthResponse](t, rec).Version)

	rec = h.do(t, request{method: http.MethodGet, path: "/readyz"})
	require.Equal(t, http.StatusOK, rec.Code)
	ready := decode[backendhttp.HealthResponse](t, rec)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks["store"])

	t.Run("failing dependency", func(t *testing.T) {
		h := newHarness(t, func(r *backendhttp.Router) {
			r.Checks["redis"] = func(context.Context) error { return errors.New("dial tcp: refused") }
		})

		rec := h.do(t, request{method: http.MethodGet, path: "/readyz"})
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		ready := decode[backendhttp.HealthResponse](t, rec)
		require.Equal(t, "degraded", ready.Status)
		require.Equal(t, "ok", ready.Checks["store"])
		require.Contains(t, ready.Checks["redis"], "error")
	})
}
