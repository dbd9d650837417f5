package main

import (
	"os"
	"time"

	"loveplanet/config"
	httpapi "loveplanet/site-svc/internal/api/http"
	"loveplanet/site-svc/internal/resolver"
	"loveplanet/site-svc/internal/service"
	"loveplanet/site-svc/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	repo := storage.NewPostgresRepository(db)
	cache := storage.NewSiteCache(rdb, 5*time.Minute)
	sites := service.NewSiteService(repo, cache)

	res := resolver.ForMode(config.ResolverMode(), config.BaseDomain())
	handler := httpapi.NewHandler(sites, res, service.DefaultQRGenerator{}, config.TemplatesDir())

	addr := ":8082"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	httpapi.StartServer(addr, httpapi.NewRouter(handler))
}
