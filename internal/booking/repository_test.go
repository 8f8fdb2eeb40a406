package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"localmart/internal/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, r chi.Router) Repository {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL)
	require.NoError(t, err)
	return NewRepository(client)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r := chi.NewRouter()
		r.Post("/bookings", func(w http.ResponseWriter, req *http.Request) {
			var in map[string]any
			require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
			assert.Equal(t, "plumbing", in["serviceType"])
			assert.Equal(t, "10:30", in["timeSlot"])
			_, hasFlag := in["allowDuplicate"]
			assert.False(t, hasFlag)

			loc := in["location"].(map[string]any)
			assert.Equal(t, "560038", loc["pincode"])

			writeJSON(w, http.StatusCreated, `{"data":{"id":"b-1","trackingId":"LM-77","serviceType":"plumbing","date":"2026-03-12","timeSlot":"10:30","status":"requested"}}`)
		})
		repo := newTestRepo(t, r)

		b, err := repo.Create(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, "LM-77", b.Tracking())
		assert.Equal(t, StatusRequested, b.Status)
	})

	t.Run("Duplicate", func(t *testing.T) {
		r := chi.NewRouter()
		r.Post("/bookings", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusConflict, `{"message":"Already booked for this date"}`)
		})
		repo := newTestRepo(t, r)

		_, err := repo.Create(context.Background(), validRequest())
		assert.ErrorIs(t, err, api.ErrConflict)
		assert.Equal(t, "Already booked for this date", api.Message(err))
	})

	t.Run("AllowDuplicateSent", func(t *testing.T) {
		r := chi.NewRouter()
		r.Post("/bookings", func(w http.ResponseWriter, req *http.Request) {
			var in map[string]any
			require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
			assert.Equal(t, true, in["allowDuplicate"])
			writeJSON(w, http.StatusCreated, `{"data":{"id":"b-2"}}`)
		})
		repo := newTestRepo(t, r)

		req := validRequest()
		req.AllowDuplicate = true
		_, err := repo.Create(context.Background(), req)
		require.NoError(t, err)
	})

	t.Run("MissingID", func(t *testing.T) {
		r := chi.NewRouter()
		r.Post("/bookings", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusCreated, `{"data":{"status":"requested"}}`)
		})
		repo := newTestRepo(t, r)

		_, err := repo.Create(context.Background(), validRequest())
		assert.ErrorIs(t, err, api.ErrInvalidResponse)
	})
}

func TestRepository_ListMine(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/bookings/me", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "2", req.URL.Query().Get("page"))
		assert.Equal(t, "10", req.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, `{"data":[{"id":"b-1"},{"id":"b-2"}],"total":12}`)
	})
	repo := newTestRepo(t, r)

	l, err := repo.ListMine(context.Background(), ListQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, l.Items, 2)
	assert.Equal(t, 12, l.Total)
}

func TestRepository_Cancel(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/bookings/{id}/cancel", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "id") != "b-1" {
			writeJSON(w, http.StatusNotFound, `{"message":"not found"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"data":{"id":"b-1","status":"cancelled"}}`)
	})
	repo := newTestRepo(t, r)
	ctx := context.Background()

	b, err := repo.Cancel(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, b.Status)

	_, err = repo.Cancel(ctx, "b-9")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
