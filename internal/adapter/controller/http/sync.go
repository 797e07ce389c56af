package httpctrl

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	syncuc "github.com/Bakuzaci/payattention-sol/internal/usecase/sync"
)

// SyncRunner is what the manual trigger needs from the reconciler.
type SyncRunner interface {
	Run(ctx context.Context) syncuc.Summary
}

type SyncController struct {
	Runner SyncRunner
}

func NewSyncController(run SyncRunner) *SyncController { return &SyncController{Runner: run} }

func (c *SyncController) Register(r *gin.Engine) {
	r.POST("/api/sync", c.trigger)
}

// trigger runs a full reconciliation synchronously. If a scheduled run is in
// flight this blocks behind it, so the response can take a while.
func (c *SyncController) trigger(ctx *gin.Context) {
	c.Runner.Run(ctx.Request.Context())
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Sync complete"})
}
