package httpctrl

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Bakuzaci/payattention-sol/internal/config"
	"github.com/Bakuzaci/payattention-sol/internal/infra/store"
)

type HealthController struct {
	db    *sql.DB
	build config.BuildInfo
}

func NewHealthController(db *sql.DB, build config.BuildInfo) *HealthController {
	return &HealthController{db: db, build: build}
}

type healthResp struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Commit    string            `json:"commit,omitempty"`
	BuildTime string            `json:"buildTime,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Checks    map[string]string `json:"checks"`
}

func (h *HealthController) Register(r *gin.Engine) {
	r.GET("/health", h.get)
	r.HEAD("/health", h.head)
}

func (h *HealthController) get(c *gin.Context) {
	if err := store.PingCtx(h.db, 500*time.Millisecond); err != nil {
		c.JSON(http.StatusServiceUnavailable, healthResp{
			Status: "degraded",
			Checks: map[string]string{"db": "down"},
		})
		return
	}
	c.JSON(http.StatusOK, healthResp{
		Status:    "ok",
		Version:   h.build.Version,
		Commit:    h.build.Commit,
		BuildTime: h.build.BuildTime,
		Uptime:    time.Since(h.build.StartedAt).Truncate(time.Second).String(),
		Checks:    map[string]string{"db": "ok"},
	})
}

func (h *HealthController) head(c *gin.Context) {
	if err := store.PingCtx(h.db, 500*time.Millisecond); err != nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	c.Status(http.StatusOK)
}
