package admin

import (
	"context"
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

func TestRepository_Stats(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/admin/stats", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"totalOrders":10,"pendingOrders":2,"totalRevenue":4520.75,"totalUsers":7,"totalBookings":3,"unreadMessages":1}}`)
	})
	repo := newTestRepo(t, r)

	s, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, s.Orders)
	assert.Equal(t, "4520.75", s.Revenue.String())
	assert.Equal(t, 1, s.UnreadMessages)
}

func TestRepository_Messages(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/admin/messages", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "2", req.URL.Query().Get("page"))
		writeJSON(w, http.StatusOK, `{"data":[{"id":"m1","name":"Kiran","email":"k@example.com","message":"hi","read":false}],"total":21}`)
	})
	r.Patch("/admin/messages/{id}/read", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "id") == "gone" {
			writeJSON(w, http.StatusNotFound, `{}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	r.Delete("/admin/messages/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	repo := newTestRepo(t, r)
	ctx := context.Background()

	l, err := repo.ListMessages(ctx, MessageQuery{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 21, l.Total)
	assert.Equal(t, "hi", l.Items[0].Body)

	assert.NoError(t, repo.MarkRead(ctx, "m1"))
	assert.ErrorIs(t, repo.MarkRead(ctx, "gone"), ErrMessageNotFound)
	assert.NoError(t, repo.DeleteMessage(ctx, "m1"))
}
