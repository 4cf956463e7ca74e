package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "pet-social/docs"
	lognotify "pet-social/internal/adapters/notify/lognotify"
	mem "pet-social/internal/adapters/storage/memory"
	"pet-social/internal/domain/follows"
	"pet-social/internal/domain/matches"
	"pet-social/internal/domain/media"
	"pet-social/internal/domain/medical"
	"pet-social/internal/domain/pets"
	"pet-social/internal/domain/posts"
	"pet-social/internal/domain/recommendations"
	"pet-social/internal/domain/users"
	"pet-social/internal/middleware"
	"pet-social/internal/platform/httpx"
	"pet-social/internal/platform/metrics"
	"pet-social/internal/ports/auth"
	"pet-social/internal/ports/notify"
	"pet-social/internal/ports/storage"
	"pet-social/internal/ports/uploads"
)

const primeTimeout = 30 * time.Second

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	TokenIssuer  auth.TokenIssuer  // nil => login/register no devuelven token

	// Store nil => in-memory.
	Store storage.Store

	// Generator nil => siempre el documento de fallback.
	Generator        recommendations.Generator
	AlwaysRegenerate bool

	Notifier notify.Notifier
	Uploader uploads.Uploader
	// Files sirve los uploads locales bajo FilesPrefix (opcional).
	Files       http.Handler
	FilesPrefix string

	Logger  *zap.Logger
	Metrics *metrics.Metrics

	// RateLimitPerMinute aplica por IP a /auth y /uploads. 0 => sin límite.
	RateLimitPerMinute int
	BcryptCost         int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	store := opts.Store
	if store == nil {
		store = mem.New()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = lognotify.New(log)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(m.Middleware)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, httpx.ErrorResponse{Error: "store unavailable"})
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	usersSvc := users.NewService(store.Users())
	if opts.BcryptCost > 0 {
		usersSvc.WithCost(opts.BcryptCost)
	}
	petsSvc := pets.NewService(store.Pets(), store.Users())
	postsSvc := posts.NewService(store.Posts(), store.Pets(), notifier)
	followsSvc := follows.NewService(store.Follows(), store.Pets(), notifier)
	matchesSvc := matches.NewService(store.Matches(), store.Pets(), notifier, log)
	medicalSvc := medical.NewService(store.Medical(), store.Pets())

	gen := recommendations.WithFallback(opts.Generator, log, func(o recommendations.Outcome) {
		m.RecommendationOutcome(string(o))
	})
	recSvc := recommendations.NewService(store.Pets(), gen, recommendations.Options{
		AlwaysRegenerate: opts.AlwaysRegenerate,
		Logger:           log,
	})
	petsSvc.OnCreate(func(ctx context.Context, p pets.Pet) {
		go func() {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), primeTimeout)
			defer cancel()
			recSvc.Prime(ctx, p)
		}()
	})

	// Rutas con rate limit por IP
	r.Group(func(r chi.Router) {
		if opts.RateLimitPerMinute > 0 {
			r.Use(httprate.LimitByIP(opts.RateLimitPerMinute, time.Minute))
		}
		users.RegisterAuthRoutes(r, usersSvc, opts.TokenIssuer, log)
		if opts.Uploader != nil {
			media.RegisterRoutes(r, media.NewService(opts.Uploader), log)
		}
	})
	if opts.Files != nil && opts.FilesPrefix != "" {
		r.Handle(opts.FilesPrefix+"/*", opts.Files)
	}

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, log)
	pets.RegisterRoutes(r, petsSvc, log)
	posts.RegisterRoutes(r, postsSvc, log)
	follows.RegisterRoutes(r, followsSvc, log)
	matches.RegisterRoutes(r, matchesSvc, log)
	medical.RegisterRoutes(r, medicalSvc, log)
	recommendations.RegisterRoutes(r, recSvc, log)

	return r
}
