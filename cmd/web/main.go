package main

import (
	"crypto/rand"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/agonglab/ssgs-web/internal/auth"
	"github.com/agonglab/ssgs-web/internal/catalog"
	"github.com/agonglab/ssgs-web/internal/config"
	"github.com/agonglab/ssgs-web/internal/market"
	mw "github.com/agonglab/ssgs-web/internal/middleware"
	"github.com/agonglab/ssgs-web/internal/report"
	"github.com/agonglab/ssgs-web/internal/session"
	"github.com/agonglab/ssgs-web/internal/wizard"
)

// seoulCity is the fixed top-level region; the service only covers Seoul.
const seoulCity = "서울특별시"

var (
	cfg      config.Config
	logger   *zap.Logger
	sessions *session.Manager
	backend  *market.Client
	regions  *catalog.Catalog
	flow     *wizard.Controller
	authSvc  *auth.Service
	reports  *report.Builder
)

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.IsProd() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	templatesDir = cfg.TemplatesDir
	publicDir = cfg.PublicDir
	devMode = !cfg.IsProd()
	if !devMode {
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	hashKey := []byte(cfg.SessionHashKey)
	if len(hashKey) == 0 {
		if cfg.IsProd() {
			logger.Fatal("SSGS_SESSION_HASH_KEY is required in prod")
		}
		hashKey = make([]byte, 32)
		if _, err := rand.Read(hashKey); err != nil {
			logger.Fatal("generate session key", zap.Error(err))
		}
		logger.Warn("using ephemeral session key; sessions reset on restart")
	}
	var blockKey []byte
	if cfg.SessionBlockKey != "" {
		blockKey = []byte(cfg.SessionBlockKey)
	}
	sessions, err = session.NewManager(session.Config{
		HashKey:      hashKey,
		BlockKey:     blockKey,
		CookieSecure: cfg.IsProd(),
	})
	if err != nil {
		logger.Fatal("session manager", zap.Error(err))
	}

	regions, err = catalog.Load(cfg.DataDir)
	if err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}

	backend = market.NewClientTimeout(cfg.BackendURL, cfg.APITimeout)
	if backend.Offline() {
		logger.Warn("no backend URL configured; serving recorded responses")
	}
	flow = wizard.NewController(wizard.NewStore(), backend, seoulCity, logger)
	authSvc = auth.NewService(backend, logger)
	reports = report.NewBuilder()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("web listening", zap.String("addr", cfg.Addr), zap.String("env", cfg.Env))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// Behind the load balancer RealIP trusts X-Forwarded-For; only trusted
	// proxies may set it in production.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session(sessions, logger))
	r.Use(mw.CSRF(cfg.IsProd()))
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", HomeHandler)
	r.Get("/login", LoginHandler)
	r.Post("/login/google", GoogleLoginHandler)
	r.Post("/login/demo", DemoLoginHandler)
	r.Post("/logout", LogoutHandler)

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireUser)

		r.Get("/idea-input", IdeaInputHandler)
		r.Post("/idea-input", IdeaSubmitHandler)
		r.Get("/idea-input/dongs", IdeaDongOptionsFrag)
		r.Get("/idea-input/zones", IdeaZoneOptionsFrag)

		r.Get("/analysis-loading", AnalysisLoadingHandler)
		r.Get("/analysis-loading/status", AnalysisStatusFrag)
		r.Post("/analysis-loading/retry", AnalysisRetryHandler)
		r.Get("/analysis-results", AnalysisResultsHandler)

		r.Get("/ai-content-loading", AIContentLoadingHandler)
		r.Get("/ai-content-loading/status", AIContentStatusFrag)
		r.Post("/ai-content-loading/retry", AIContentRetryHandler)
		r.Get("/ai-content-results", AIContentResultsHandler)
		r.Post("/ai-content-results/promotion", PromotionEditHandler)

		r.Get("/sns-test-results", SNSTestHandler)
		r.Get("/sns-test-results/status", SNSStatusFrag)

		r.Get("/final-report", FinalReportHandler)
	})

	return r
}
