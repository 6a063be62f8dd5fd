package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

func TestEntryHandler_List(t *testing.T) {
	srv := newTestServer(t, "", fixture()...)

	w := srv.do(t, http.MethodGet, "/api/v1/entries", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.SessionEntry](t, w), 6)

	w = srv.do(t, http.MethodGet, "/api/v1/entries?day=06-01-25", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.SessionEntry](t, w), 2)

	w = srv.do(t, http.MethodGet, "/api/v1/entries?day=01-01-20", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestEntryHandler_Create(t *testing.T) {
	t.Run("Success: Creates and saves", func(t *testing.T) {
		srv := newTestServer(t, testSecret)

		w := srv.do(t, http.MethodPost, "/api/v1/entries", map[string]any{
			"title":    "Deep work",
			"duration": 50,
			"hardness": 42,
			"date":     "2025-01-06",
			"clock":    "10:15",
		}, srv.token(t))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		got := decode[domain.SessionEntry](t, w)
		assert.Equal(t, "06-01-25", got.Date)
		assert.Equal(t, "10:15", got.Clock)
		assert.Equal(t, domain.DefaultHardness, got.Hardness, "out of range hardness falls back to the default")
		assert.Equal(t, 1, srv.repo.Saves())
	})

	t.Run("Fail: Requires a token when a secret is configured", func(t *testing.T) {
		srv := newTestServer(t, testSecret)

		w := srv.do(t, http.MethodPost, "/api/v1/entries", map[string]any{"title": "A", "duration": 5}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, srv.repo.Saves())
	})

	t.Run("Fail: Validation", func(t *testing.T) {
		srv := newTestServer(t, "")

		tests := []struct {
			name string
			body map[string]any
			want string
		}{
			{"missing title", map[string]any{"title": "  ", "duration": 10}, domain.ErrTitleRequired.Error()},
			{"missing duration", map[string]any{"title": "A"}, domain.ErrDurationRequired.Error()},
			{"bad date", map[string]any{"title": "A", "duration": 10, "date": "soon"}, domain.ErrInvalidDate.Error()},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := srv.do(t, http.MethodPost, "/api/v1/entries", tt.body, "")
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), tt.want)
			})
		}
		assert.Zero(t, srv.repo.Saves())
	})
}

func TestEntryHandler_Delete(t *testing.T) {
	srv := newTestServer(t, "", fixture()...)
	target := fixture()[2]

	w := srv.do(t, http.MethodDelete, "/api/v1/entries", target, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, target, decode[domain.SessionEntry](t, w))

	w = srv.do(t, http.MethodDelete, "/api/v1/entries", target, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, srv.repo.Saves())
}
