package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"loveplanet/site-svc/internal/resolver"
	"loveplanet/site-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Sites        service.SiteServiceInterface
	Resolver     resolver.Resolver
	QR           service.QRGenerator
	TemplatesDir string
}

func NewHandler(sites service.SiteServiceInterface, res resolver.Resolver, qr service.QRGenerator, templatesDir string) *Handler {
	return &Handler{
		Sites:        sites,
		Resolver:     res,
		QR:           qr,
		TemplatesDir: templatesDir,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/site-data", h.siteData).Methods("GET")
	r.HandleFunc("/api/qrcodes/{qrName}/image", h.qrImage).Methods("GET")

	// Everything else is host-based site dispatch.
	r.PathPrefix("/").HandlerFunc(h.dispatch)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"service":   "site-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// siteData hands template bundles their configuration without a page load:
// {template_type, template_data}, resolved the same way as dispatch.
func (h *Handler) siteData(w http.ResponseWriter, r *http.Request) {
	id := h.Resolver.Resolve(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, "no site identifier")
		return
	}

	site, err := h.Sites.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSiteNotFound) {
			writeError(w, http.StatusNotFound, "site not found")
			return
		}
		log.Printf("[site-svc] site-data %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"template_type": site.TemplateType,
		"template_data": site.Config(),
	})
}

func (h *Handler) qrImage(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(mux.Vars(r)["qrName"])
	site, err := h.Sites.Load(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrSiteNotFound) {
			writeError(w, http.StatusNotFound, "site not found")
			return
		}
		log.Printf("[site-svc] qr image %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	png, err := h.QR.Generate(site.FullURL)
	if err != nil {
		log.Printf("[site-svc] qr encode %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// dispatch resolves the request's host to a site and serves the matching
// template bundle: static assets as-is, the root page with the site's config
// injected so the bundle renders without another round trip.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) {
	id := h.Resolver.Resolve(r)
	if id == "" {
		h.notFound(w)
		return
	}

	site, err := h.Sites.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSiteNotFound) {
			h.notFound(w)
			return
		}
		log.Printf("[site-svc] dispatch %s %s: %v", id, r.URL.Path, err)
		h.errorPage(w)
		return
	}

	bundleDir := filepath.Join(h.TemplatesDir, site.TemplateType)

	if r.URL.Path != "/" {
		if assetPath, ok := h.assetPath(bundleDir, r.URL.Path); ok {
			http.ServeFile(w, r, assetPath)
			return
		}
		// Nested paths with no matching asset fall through to the page,
		// so client-side routes inside a bundle still load.
	}

	h.servePage(w, bundleDir, site.QRName, site.TemplateType, site.Config())
}

// assetPath maps a request path into the bundle directory, rejecting
// traversal out of it. Returns false when the file does not exist.
func (h *Handler) assetPath(bundleDir, reqPath string) (string, bool) {
	cleaned := filepath.Clean("/" + reqPath)
	if strings.Contains(cleaned, "..") {
		return "", false
	}
	full := filepath.Join(bundleDir, cleaned)
	rel, err := filepath.Rel(bundleDir, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}

func (h *Handler) servePage(w http.ResponseWriter, bundleDir, siteID, templateType string, config json.RawMessage) {
	page, err := os.ReadFile(filepath.Join(bundleDir, "index.html"))
	if err != nil {
		log.Printf("[site-svc] missing bundle index for %s (%s): %v", siteID, templateType, err)
		h.errorPage(w)
		return
	}

	// Textual injection: the bundles are static files authored independently
	// of this server, so the config rides in on a plain script block.
	script := fmt.Sprintf(
		"<script>window.__SITE_ID__ = %q;\nwindow.__SITE_CONFIG__ = {\"template\":%q,\"data\":%s};</script>\n",
		siteID, templateType, config)

	html := string(page)
	if strings.Contains(html, "</head>") {
		html = strings.Replace(html, "</head>", script+"</head>", 1)
	} else {
		html = script + html
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

func (h *Handler) notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`<!DOCTYPE html>
<html><head><title>Not Found</title></head>
<body><h1>404</h1><p>This gift page does not exist.</p></body></html>`))
}

func (h *Handler) errorPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(`<!DOCTYPE html>
<html><head><title>Error</title></head>
<body><h1>Something went wrong</h1><p>Please try again later.</p></body></html>`))
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": message})
}
