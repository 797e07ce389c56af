package httpctrl

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dm "github.com/Bakuzaci/payattention-sol/internal/domain/tokens"
)

func TestCategories_ListInConfiguredOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fq := &fakeQueryRepo{stats: map[dm.Category]dm.CategoryStats{
		dm.CategoryAIMeme:     {Count: 2, TotalMarketCap: 3000, TotalVolume24h: 100},
		dm.CategoryPumpFun:    {Count: 1, TotalMarketCap: 1000, TotalVolume24h: 500},
		dm.CategorySolanaMeme: {}, // empty category still reported
	}}
	r := gin.New()
	NewCategoriesController(fq).Register(r)

	w := serve(t, r, http.MethodGet, "/api/categories")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 3)

	assert.Equal(t, "ai-meme-coins", got[0]["id"])
	assert.Equal(t, "AI Agents", got[0]["name"])
	assert.Equal(t, 2.0, got[0]["token_count"])
	assert.Equal(t, 3000.0, got[0]["total_market_cap"])

	assert.Equal(t, "pump-fun", got[1]["id"])
	assert.Equal(t, 500.0, got[1]["total_volume_24h"])

	assert.Equal(t, "solana-meme-coins", got[2]["id"])
	assert.Equal(t, 0.0, got[2]["token_count"])
}

func TestCategories_RepoError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fq := &fakeQueryRepo{errStats: errors.New("db down")}
	r := gin.New()
	NewCategoriesController(fq).Register(r)

	w := serve(t, r, http.MethodGet, "/api/categories")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
