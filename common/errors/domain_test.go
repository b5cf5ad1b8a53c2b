package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	apierrors "github.com/clinova/odonto-api/common/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindPredicates(t *testing.T) {
	assert.True(t, apierrors.IsNotFound(apierrors.NotFound("no existe")))
	assert.True(t, apierrors.IsConflict(apierrors.Conflict("duplicado")))
	assert.True(t, apierrors.IsInternal(apierrors.Internal("interno", nil)))

	assert.False(t, apierrors.IsNotFound(apierrors.Conflict("duplicado")))
	assert.False(t, apierrors.IsNotFound(fmt.Errorf("plain error")))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", apierrors.NotFound("no existe"))
	assert.True(t, apierrors.IsNotFound(wrapped))
}

func TestInternalWithholdsCauseFromClient(t *testing.T) {
	cause := fmt.Errorf("pq: connection refused")
	err := apierrors.Internal("Error interno del servidor", cause)

	pd := err.ToProblemDetails("/api/v1/dentistas")
	assert.Equal(t, http.StatusInternalServerError, pd.Status)
	assert.NotContains(t, pd.Detail, "connection refused")
	// the cause stays reachable for logging
	assert.Contains(t, err.Error(), "connection refused")
}

func TestToProblemDetailsStatuses(t *testing.T) {
	cases := []struct {
		err    *apierrors.Error
		status int
	}{
		{apierrors.NotFound("x"), http.StatusNotFound},
		{apierrors.Conflict("x"), http.StatusConflict},
		{apierrors.Unauthorized("x"), http.StatusUnauthorized},
		{apierrors.Forbidden("x"), http.StatusForbidden},
		{apierrors.Validation("x"), http.StatusBadRequest},
		{apierrors.Internal("x", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		pd := tc.err.ToProblemDetails("/instance")
		assert.Equal(t, tc.status, pd.Status)
		assert.Equal(t, "/instance", pd.Instance)
	}
}
