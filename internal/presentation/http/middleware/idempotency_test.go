package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minimart/pos-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (m *memoryIdempotencyRepo) Create(_ context.Context, key *entity.IdempotencyKey) error {
	m.keys[key.Key] = key
	return nil
}

func (m *memoryIdempotencyRepo) GetByKey(_ context.Context, key string) (*entity.IdempotencyKey, error) {
	return m.keys[key], nil
}

func (m *memoryIdempotencyRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func newIdempotencyRouter(repo *memoryIdempotencyRepo) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)

	calls := 0
	router := gin.New()
	router.POST("/sales",
		func(c *gin.Context) { c.Set("user_id", uuid.New()) },
		IdempotencyRequired(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"bill_no": "001"})
		})
	return router, &calls
}

func TestIdempotencyRequired_RejectsMissingKey(t *testing.T) {
	router, calls := newIdempotencyRouter(newMemoryIdempotencyRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/sales", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, *calls)
}

func TestIdempotencyRequired_ReplaysDuplicateSubmission(t *testing.T) {
	router, calls := newIdempotencyRouter(newMemoryIdempotencyRepo())

	first := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/sales", nil)
	req.Header.Set(IdempotencyKeyHeader, "till-1-checkout-42")
	router.ServeHTTP(first, req)

	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, 1, *calls)

	second := httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/sales", nil)
	req.Header.Set(IdempotencyKeyHeader, "till-1-checkout-42")
	router.ServeHTTP(second, req)

	// Same response, handler not invoked again
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestIdempotencyRequired_DistinctKeysBothRecord(t *testing.T) {
	router, calls := newIdempotencyRouter(newMemoryIdempotencyRepo())

	for _, key := range []string{"key-a", "key-b"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/sales", nil)
		req.Header.Set(IdempotencyKeyHeader, key)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	assert.Equal(t, 2, *calls)
}
