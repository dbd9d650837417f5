package main

import (
	"log"
	"os"

	"loveplanet/config"
	httpapi "loveplanet/order-svc/internal/api/http"
	"loveplanet/order-svc/internal/service"
	"loveplanet/order-svc/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	templateSvc := service.NewTemplateService(repo)
	voucherSvc := service.NewVoucherService(repo)
	orderSvc := service.NewOrderService(repo, storage.NewSiteCacheInvalidator(rdb), config.BaseDomain())

	handler := httpapi.NewHandler(templateSvc, voucherSvc, orderSvc)

	addr := ":8081"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	httpapi.StartServer(addr, httpapi.NewRouter(handler))
}
