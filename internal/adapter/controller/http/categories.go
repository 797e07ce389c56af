package httpctrl

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bakuzaci/payattention-sol/internal/domain/tokens"
)

type CategoriesController struct {
	Q tokens.QueryRepo
}

func NewCategoriesController(q tokens.QueryRepo) *CategoriesController {
	return &CategoriesController{Q: q}
}

func (c *CategoriesController) Register(r *gin.Engine) {
	r.GET("/api/categories", c.list)
}

type categoryDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	TokenCount     int     `json:"token_count"`
	TotalMarketCap float64 `json:"total_market_cap"`
	TotalVolume24h float64 `json:"total_volume_24h"`
}

// list reports the tracked categories with their aggregates, in
// configured order.
func (c *CategoriesController) list(ctx *gin.Context) {
	out := make([]categoryDTO, 0, len(tokens.Categories()))
	for _, cat := range tokens.Categories() {
		stats, err := c.Q.StatsByCategory(ctx.Request.Context(), cat)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, categoryDTO{
			ID:             string(cat),
			Name:           cat.DisplayName(),
			TokenCount:     stats.Count,
			TotalMarketCap: stats.TotalMarketCap,
			TotalVolume24h: stats.TotalVolume24h,
		})
	}
	ctx.JSON(http.StatusOK, out)
}
