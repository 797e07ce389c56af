package httpctrl

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bakuzaci/payattention-sol/internal/config"
)

// RootController answers the bare liveness probe on /.
type RootController struct{}

func (RootController) Register(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "online", "app": config.AppName})
	})
}
