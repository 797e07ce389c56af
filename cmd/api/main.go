package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Bakuzaci/payattention-sol/internal/app"
	"github.com/Bakuzaci/payattention-sol/internal/infra/logx"
)

func main() {
	logger := logx.New("payattention")
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	a, err := app.Build(logger)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	if err := a.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
