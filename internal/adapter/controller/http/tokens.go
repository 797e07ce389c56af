package httpctrl

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Bakuzaci/payattention-sol/internal/domain/tokens"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type TokensController struct {
	Q tokens.QueryRepo
}

func NewTokensController(q tokens.QueryRepo) *TokensController { return &TokensController{Q: q} }

func (c *TokensController) Register(r *gin.Engine) {
	r.GET("/api/tokens", c.list)
	r.GET("/api/tokens/:id", c.one)
}

// tokenDTO is the wire shape for one token. Optional fields serialize as
// null until the social backfill fills them.
type tokenDTO struct {
	ID             string  `json:"id"`
	Address        *string `json:"address"`
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
	Image          *string `json:"image"`
	Category       string  `json:"category"`
	MarketCap      float64 `json:"market_cap"`
	Volume24h      float64 `json:"volume_24h"`
	Price          float64 `json:"price"`
	PriceChange24h float64 `json:"price_change_24h"`
	Twitter        *string `json:"twitter"`
	Telegram       *string `json:"telegram"`
	Website        *string `json:"website"`
}

func toDTO(t tokens.Token) tokenDTO {
	return tokenDTO{
		ID:             t.ExternalID,
		Address:        t.Address,
		Name:           t.Name,
		Symbol:         t.Symbol,
		Image:          t.Image,
		Category:       string(t.Category),
		MarketCap:      t.MarketCap,
		Volume24h:      t.Volume24h,
		Price:          t.Price,
		PriceChange24h: t.PriceChange24h,
		Twitter:        t.Twitter,
		Telegram:       t.Telegram,
		Website:        t.Website,
	}
}

func (c *TokensController) list(ctx *gin.Context) {
	var f tokens.ListFilter

	if v := ctx.Query("category"); v != "" {
		cat, ok := tokens.ParseCategory(v)
		if !ok {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + v})
			return
		}
		f.Category = &cat
	}

	sort, ok := tokens.ParseSortKey(ctx.Query("sort"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "sort must be one of market_cap|volume_24h|price_change_24h"})
		return
	}
	f.Sort = sort

	limit, err := intQuery(ctx, "limit", defaultListLimit)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	f.Limit = limit

	offset, err := intQuery(ctx, "offset", 0)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "offset must be an integer"})
		return
	}
	if offset < 0 {
		offset = 0
	}
	f.Offset = offset

	list, err := c.Q.List(ctx.Request.Context(), f)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]tokenDTO, 0, len(list))
	for _, t := range list {
		out = append(out, toDTO(t))
	}
	ctx.JSON(http.StatusOK, out)
}

func (c *TokensController) one(ctx *gin.Context) {
	t, err := c.Q.Get(ctx.Request.Context(), ctx.Param("id"))
	if errors.Is(err, tokens.ErrNotFound) {
		// the frontend contract: 200 with an error payload, never a 404
		ctx.JSON(http.StatusOK, gin.H{"error": "Token not found"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, toDTO(t))
}

func intQuery(ctx *gin.Context, key string, def int) (int, error) {
	v := ctx.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
