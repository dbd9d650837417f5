package main

import (
	"context"
	"os"
	"time"

	"loveplanet/config"
	httpapi "loveplanet/payment-svc/internal/api/http"
	"loveplanet/payment-svc/internal/gateway"
	"loveplanet/payment-svc/internal/service"
	"loveplanet/payment-svc/internal/storage"
	"loveplanet/payment-svc/internal/ws"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	writer := config.NewKafkaWriter("payment-events")
	defer writer.Close()

	reader := config.NewKafkaReader("payment-events", "payment-svc-consumer")
	defer reader.Close()

	orders := storage.NewPostgresRepository(db)
	sessions := storage.NewSessionStore(rdb, service.DefaultPaymentWindow)
	publisher := storage.NewKafkaPublisher(writer)

	returnURL := "https://" + config.BaseDomain() + "/payment/return"
	cancelURL := "https://" + config.BaseDomain() + "/payment/cancel"

	payos := config.PayOS()
	paypal := config.PayPal()
	gateways := map[string]gateway.Gateway{
		"PAYOS":  gateway.NewPayOSClient(payos.Endpoint, payos.ClientID, payos.APIKey, payos.ChecksumKey, returnURL, cancelURL),
		"PAYPAL": gateway.NewPayPalClient(paypal.Endpoint, paypal.ClientID, paypal.ClientSecret, returnURL, cancelURL),
	}

	coordinator := service.NewCoordinator(orders, sessions, gateways, publisher, 5*time.Minute)

	hub := ws.NewHub()
	processor := service.NewStatusProcessor(orders, hub, coordinator)
	consumer := service.NewConsumer(reader, processor)
	go consumer.Start(context.Background())

	handler := httpapi.NewHandler(coordinator, publisher, hub, config.WebhookSecret())

	addr := ":8083"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	httpapi.StartServer(addr, httpapi.NewRouter(handler))
}
