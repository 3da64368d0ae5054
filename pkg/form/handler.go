package form

import (
	"bytes"
	"errors"
	"html"
	"net/http"

	"go.uber.org/zap"
)

// HandlerOption customises the HTTP handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	title       string
	stylesheets []string
	logger      *zap.Logger
}

// WithPageTitle sets the document title of the rendered page.
func WithPageTitle(title string) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.title = title
	}
}

// WithStylesheets adds stylesheet links to the rendered page, after the ones
// registered for the form's field types.
func WithStylesheets(hrefs ...string) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.stylesheets = append(cfg.stylesheets, hrefs...)
	}
}

// WithHandlerLogger attaches a logger for request failures.
func WithHandlerLogger(logger *zap.Logger) HandlerOption {
	return func(cfg *handlerConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// NewHandler serves a controller over HTTP. GET and HEAD render the form; POST
// applies the submission and redirects back so the browser re-renders from the
// controller's updated values.
func NewHandler(ctrl *Controller, opts ...HandlerOption) http.Handler {
	cfg := handlerConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ctrl == nil {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			writePage(w, r, ctrl, cfg)
		case http.MethodPost:
			if err := r.ParseForm(); err != nil {
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}
			if err := ctrl.Apply(r.Context(), r.PostForm); err != nil {
				if errors.Is(err, ErrInvalidInput) {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				cfg.logger.Error("apply submission", zap.String("path", r.URL.Path), zap.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			http.Redirect(w, r, r.URL.RequestURI(), http.StatusSeeOther)
		default:
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead+", "+http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})
}

func writePage(w http.ResponseWriter, r *http.Request, ctrl *Controller, cfg handlerConfig) {
	var body bytes.Buffer
	if err := ctrl.Render(r.Context(), &body); err != nil {
		cfg.logger.Error("render form", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	title := cfg.title
	if title == "" {
		title = ctrl.Form().Title
	}
	if title != "" {
		page.WriteString("<title>")
		page.WriteString(html.EscapeString(title))
		page.WriteString("</title>")
	}
	links := append(ctrl.Stylesheets(), cfg.stylesheets...)
	for _, href := range links {
		page.WriteString(`<link rel="stylesheet" href="`)
		page.WriteString(html.EscapeString(href))
		page.WriteString(`">`)
	}
	page.WriteString("</head><body>")
	page.Write(body.Bytes())
	page.WriteString("</body></html>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(page.Bytes())
}
