// Package server assembles the HTTP router: shared middleware, every module
// handler, stored images, the static shell and the health check.
package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/pharmaguide/pharmaguide-backend/internal/config"
	"github.com/pharmaguide/pharmaguide-backend/internal/database"
	"github.com/pharmaguide/pharmaguide-backend/internal/imagestore"
	"github.com/pharmaguide/pharmaguide-backend/internal/integrity"
	"github.com/pharmaguide/pharmaguide-backend/internal/logging"
	"github.com/pharmaguide/pharmaguide-backend/internal/modules/advertisement"
	"github.com/pharmaguide/pharmaguide-backend/internal/modules/inventory"
	"github.com/pharmaguide/pharmaguide-backend/internal/modules/pharmacy"
	"github.com/pharmaguide/pharmaguide-backend/internal/modules/product"
	"github.com/pharmaguide/pharmaguide-backend/internal/modules/user"
	"github.com/pharmaguide/pharmaguide-backend/internal/web"
)

// Deps is everything the router needs from the process.
type Deps struct {
	DB     *sqlx.DB
	Images *imagestore.Store
	Config config.Config
	Logger zerolog.Logger
}

// NewRouter wires repositories, services and handlers onto a chi router.
func NewRouter(d Deps) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.Middleware(d.Logger)...)
	router.Use(middleware.Recoverer)

	tx := database.NewTxManager(d.DB)
	check := integrity.NewValidator(d.DB)
	paging := web.Paging{Default: d.Config.PageLimit, Max: d.Config.PageLimitMax}
	maxUpload := d.Config.MaxUploadBytes

	// ── Users ───────────────────────────────────────────────
	userService := user.NewService(
		user.NewPostgresRepository(d.DB),
		user.NewTypePostgresRepository(d.DB),
		tx, check,
	)
	user.NewHandler(userService, paging).RegisterRoutes(router)

	// ── Pharmacies ──────────────────────────────────────────
	pharmacyService := pharmacy.NewService(
		pharmacy.NewPostgresRepository(d.DB),
		pharmacy.NewImagePostgresRepository(d.DB),
		d.Images, tx, check,
	)
	pharmacy.NewHandler(pharmacyService, paging, maxUpload).RegisterRoutes(router)

	// ── Products & categories ───────────────────────────────
	productService := product.NewService(
		product.NewPostgresRepository(d.DB),
		product.NewCategoryPostgresRepository(d.DB),
		product.NewLinkPostgresRepository(d.DB),
		product.NewImagePostgresRepository(d.DB),
		d.Images, tx, check,
	)
	product.NewHandler(productService, paging, maxUpload).RegisterRoutes(router)

	// ── Inventory ───────────────────────────────────────────
	inventoryService := inventory.NewService(inventory.NewPostgresRepository(d.DB), tx, check)
	inventory.NewHandler(inventoryService, paging).RegisterRoutes(router)

	// ── Advertisements ──────────────────────────────────────
	advertisementService := advertisement.NewService(advertisement.NewPostgresRepository(d.DB), d.Images, tx, check)
	advertisement.NewHandler(advertisementService, paging, maxUpload).RegisterRoutes(router)

	router.Get("/healthz", health(d.DB))
	mountFiles(router, "/public", d.Images.Root())
	mountFiles(router, "/static", d.Config.StaticDir)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(d.Config.StaticDir, "index.html"))
	})

	return router
}

type pinger interface {
	PingContext(ctx context.Context) error
}

func health(db pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
			web.Respond(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		web.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// mountFiles serves dir read-only under prefix. Directory listings are
// answered with 404.
func mountFiles(r chi.Router, prefix, dir string) {
	files := http.StripPrefix(prefix, http.FileServer(noListing{http.Dir(dir)}))
	r.Get(prefix+"/*", files.ServeHTTP)
}

type noListing struct{ fs http.FileSystem }

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
