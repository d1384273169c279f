// internal/handlers/review_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewTestRouter(store *fakeStore) *gin.Engine {
	h := NewReviewHandler(store)

	r := gin.New()
	r.GET("/api/factories/:id/reviews", h.List)
	r.POST("/api/factories/:id/reviews", func(c *gin.Context) {
		// Stand-in for the auth middleware
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("user_id", id)
		}
		h.Create(c)
	})
	return r
}

func TestListReviews(t *testing.T) {
	store := newFakeStore()
	factory := seedFactory(t, store, "Numidia Olive Oil", "Algiers", "food")
	r := reviewTestRouter(store)

	t.Run("no reviews yields an empty array", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/factories/"+factory.ID+"/reviews", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})
}

func TestCreateReview(t *testing.T) {
	t.Run("stores the review and folds in the rating", func(t *testing.T) {
		store := newFakeStore()
		factory := seedFactory(t, store, "Numidia Olive Oil", "Algiers", "food")
		r := reviewTestRouter(store)

		post := func(rating int) *httptest.ResponseRecorder {
			body, _ := json.Marshal(map[string]interface{}{
				"rating":  rating,
				"comment": "Solid products",
			})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/factories/"+factory.ID+"/reviews", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Test-User", "user-1")
			r.ServeHTTP(w, req)
			return w
		}

		w := post(4)
		require.Equal(t, http.StatusCreated, w.Code)

		updated, err := store.GetFactory(context.Background(), factory.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated.ReviewsCount)
		assert.Equal(t, 4.0, updated.Rating)

		w = post(2)
		require.Equal(t, http.StatusCreated, w.Code)

		updated, err = store.GetFactory(context.Background(), factory.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated.ReviewsCount)
		assert.Equal(t, 3.0, updated.Rating)

		reviews, err := store.ListReviews(context.Background(), factory.ID)
		require.NoError(t, err)
		assert.Len(t, reviews, 2)
	})

	t.Run("rating outside 1..5 is rejected", func(t *testing.T) {
		store := newFakeStore()
		factory := seedFactory(t, store, "Numidia Olive Oil", "Algiers", "food")
		r := reviewTestRouter(store)

		for _, rating := range []int{0, 6, -1} {
			body, _ := json.Marshal(map[string]interface{}{"rating": rating})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/factories/"+factory.ID+"/reviews", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Test-User", "user-1")
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d", rating)
		}
	})

	t.Run("unknown factory is 404", func(t *testing.T) {
		store := newFakeStore()
		r := reviewTestRouter(store)

		body, _ := json.Marshal(map[string]interface{}{"rating": 5})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/factories/missing/reviews", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-User", "user-1")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("no identity is 401", func(t *testing.T) {
		store := newFakeStore()
		factory := seedFactory(t, store, "Numidia Olive Oil", "Algiers", "food")
		r := reviewTestRouter(store)

		body, _ := json.Marshal(map[string]interface{}{"rating": 5})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/factories/"+factory.ID+"/reviews", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		reviews, err := store.ListReviews(context.Background(), factory.ID)
		require.NoError(t, err)
		assert.Empty(t, reviews)
	})
}
