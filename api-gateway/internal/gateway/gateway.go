package gateway

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	OrderSvcURL   string
	SiteSvcURL    string
	PaymentSvcURL string
}

// Gateway is the single public origin: API calls fan out to the backing
// services, everything else (subdomain page loads, bundle assets) goes to
// site dispatch.
type Gateway struct {
	config  Config
	client  HTTPClient
	wsProxy *httputil.ReverseProxy
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	g := &Gateway{
		config: config,
		client: client,
	}
	if target, err := url.Parse(config.PaymentSvcURL); err == nil {
		// ReverseProxy handles the websocket upgrade handshake.
		g.wsProxy = httputil.NewSingleHostReverseProxy(target)
	}
	return g
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	log.Printf("PROXY: %s %s -> %s%s", r.Method, r.URL.Path, targetURL, r.URL.Path)

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequest(r.Method, url, r.Body)
	if err != nil {
		log.Printf("ERROR: Failed to create request: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}
	// Site dispatch resolves the subdomain from the original Host header.
	req.Host = r.Host

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("ERROR: Failed to proxy to %s: %v", targetURL, err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("ERROR: Failed to copy response: %v", err)
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	log.Printf("ROUTE: %s %s", r.Method, path)

	if path == "/ws" {
		if g.wsProxy == nil {
			http.Error(w, "websocket backend unavailable", http.StatusBadGateway)
			return
		}
		g.wsProxy.ServeHTTP(w, r)
		return
	}

	if strings.HasPrefix(path, "/api/payment") {
		g.ProxyRequest(w, r, g.config.PaymentSvcURL)
		return
	}

	// QR images render in site-svc; the JSON detail lives in order-svc.
	if strings.HasPrefix(path, "/api/qrcodes/") && strings.HasSuffix(path, "/image") {
		g.ProxyRequest(w, r, g.config.SiteSvcURL)
		return
	}
	if strings.HasPrefix(path, "/api/qrcodes/") {
		g.ProxyRequest(w, r, g.config.OrderSvcURL)
		return
	}

	if path == "/api/site-data" {
		g.ProxyRequest(w, r, g.config.SiteSvcURL)
		return
	}

	if strings.HasPrefix(path, "/api/orders") ||
		strings.HasPrefix(path, "/api/templates") ||
		strings.HasPrefix(path, "/api/vouchers") {
		g.ProxyRequest(w, r, g.config.OrderSvcURL)
		return
	}

	if strings.HasPrefix(path, "/api/") {
		log.Printf("[GATEWAY] Unmatched API route: %s", path)
		http.Error(w, "API route not found", http.StatusNotFound)
		return
	}

	// Anything else is a gift site page or asset.
	g.ProxyRequest(w, r, g.config.SiteSvcURL)
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
