package httpctrl

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncuc "github.com/Bakuzaci/payattention-sol/internal/usecase/sync"
)

type fakeRunner struct {
	calls int
	sum   syncuc.Summary
}

func (f *fakeRunner) Run(context.Context) syncuc.Summary {
	f.calls++
	return f.sum
}

func TestSync_TriggerRunsAndReports(t *testing.T) {
	gin.SetMode(gin.TestMode)
	run := &fakeRunner{sum: syncuc.Summary{Added: 5}}
	r := gin.New()
	NewSyncController(run).Register(r)

	w := serve(t, r, http.MethodPost, "/api/sync")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, run.calls)
	assert.JSONEq(t, `{"status":"ok","message":"Sync complete"}`, w.Body.String())
}

func TestSync_GetIsNotRouted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	run := &fakeRunner{}
	r := gin.New()
	NewSyncController(run).Register(r)

	w := serve(t, r, http.MethodGet, "/api/sync")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, run.calls)
}

func TestRoot_Liveness(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RootController{}.Register(r)

	w := serve(t, r, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "online", got["status"])
	assert.Equal(t, "PayAttention.sol", got["app"])
}
