package main

import (
	"log"
	"net/http"
	"os"

	"loveplanet/api-gateway/internal/gateway"

	"github.com/rs/cors"
)

func main() {
	config := gateway.Config{
		OrderSvcURL:   getEnv("ORDER_SVC_URL", "http://localhost:8081"),
		SiteSvcURL:    getEnv("SITE_SVC_URL", "http://localhost:8082"),
		PaymentSvcURL: getEnv("PAYMENT_SVC_URL", "http://localhost:8083"),
	}

	gw := gateway.NewGateway(config, &http.Client{})

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	log.Println("API Gateway starting on port 8080")
	log.Fatal(http.ListenAndServe(":8080", handler))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
