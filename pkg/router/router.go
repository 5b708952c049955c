package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/RKmodz24/studio/config"
	"github.com/RKmodz24/studio/pkg/authenticator"
	"github.com/RKmodz24/studio/pkg/errorx"
	"github.com/RKmodz24/studio/pkg/logger"
	"github.com/RKmodz24/studio/pkg/xcontext"
	"github.com/gorilla/sessions"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after the handler. A returned non-nil context
// replaces the current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs at the end of a request, even when an error occurred.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc

	db           *gorm.DB
	cfg          config.Configs
	logger       logger.Logger
	tokenEngine  authenticator.TokenEngine
	sessionStore sessions.Store
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		db:           db,
		cfg:          cfg,
		logger:       logger,
		tokenEngine:  authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
		sessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
	}
}

// Branch creates a router sharing the same mux, which inherits all current
// middlewares of the parent.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

// Handle registers a raw http handler, befores run on it but afters and the
// json response do not.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := r.newContext(w, req)
		ctx, err := r.runBefores(ctx)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeResponse(ctx)
		} else {
			handler.ServeHTTP(w, req.WithContext(ctx))
		}

		for _, c := range r.closers {
			c(ctx)
		}
	})
}

func (r *Router) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   r.cfg.ApiServer.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	}).Handler(r.mux)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodPost, pattern, handler)
}

func route[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := r.newContext(w, req)
		defer func() {
			for _, c := range r.closers {
				c(ctx)
			}
		}()

		if req.Method != method {
			ctx = xcontext.WithError(ctx, errorx.New(errorx.NotFound, "Method %s is not supported", req.Method))
			writeResponse(ctx)
			return
		}

		ctx = r.serve(ctx, handler.call)
		writeResponse(ctx)
	})
}

func (r *Router) newContext(w http.ResponseWriter, req *http.Request) context.Context {
	ctx := req.Context()
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithStartTime(ctx, time.Now())
	return ctx
}

func (r *Router) runBefores(ctx context.Context) (context.Context, error) {
	for _, m := range r.befores {
		newCtx, err := m(ctx)
		if err != nil {
			return ctx, err
		}
		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx, nil
}

func (r *Router) runAfters(ctx context.Context) (context.Context, error) {
	for _, m := range r.afters {
		newCtx, err := m(ctx)
		if err != nil {
			return ctx, err
		}
		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx, nil
}

func (r *Router) serve(
	ctx context.Context, call func(context.Context) (any, error),
) context.Context {
	ctx, err := r.runBefores(ctx)
	if err != nil {
		return xcontext.WithError(ctx, err)
	}

	resp, err := call(ctx)
	if err != nil {
		return xcontext.WithError(ctx, err)
	}

	ctx = xcontext.WithResponse(ctx, resp)
	ctx, err = r.runAfters(ctx)
	if err != nil {
		return xcontext.WithError(ctx, err)
	}

	return ctx
}

func (h HandlerFunc[Request, Response]) call(ctx context.Context) (any, error) {
	req := new(Request)
	if err := parseRequest(xcontext.HTTPRequest(ctx), req); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot parse request: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid request")
	}

	resp, err := h(ctx, req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func parseRequest(req *http.Request, obj any) error {
	switch req.Method {
	case http.MethodGet:
		query := map[string]any{}
		for k, v := range req.URL.Query() {
			if len(v) == 1 {
				query[k] = v[0]
			} else {
				query[k] = v
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           obj,
		})
		if err != nil {
			return err
		}

		return decoder.Decode(query)

	case http.MethodPost:
		if req.ContentLength == 0 {
			return nil
		}
		return json.NewDecoder(req.Body).Decode(obj)
	}

	return nil
}
