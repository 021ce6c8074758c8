package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func performRequest(t *testing.T, engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_MountsGroupsUnderVersionedRoot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	r := NewRouter(engine)

	prefixed := NewDomainGroup("marketplace", "/marketplace")
	prefixed.GET("/orders", okHandler)

	r.Register(prefixed)
	r.Setup()

	w := performRequest(t, engine, http.MethodGet, "/api/v1/marketplace/orders")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_EmptyPrefixMountsDirectlyUnderRoot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	r := NewRouter(engine)

	// the catalog resources live directly under /api/v1
	catalog := NewDomainGroup("catalog", "")
	catalog.GET("/hs-codes", okHandler)
	catalog.GET("/seasons", okHandler)

	r.Register(catalog)
	r.Setup()

	assert.Equal(t, http.StatusOK, performRequest(t, engine, http.MethodGet, "/api/v1/hs-codes").Code)
	assert.Equal(t, http.StatusOK, performRequest(t, engine, http.MethodGet, "/api/v1/seasons").Code)
	assert.Equal(t, http.StatusNotFound, performRequest(t, engine, http.MethodGet, "/api/v1/catalog/hs-codes").Code)
}
