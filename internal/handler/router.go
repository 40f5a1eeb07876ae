package handler

import (
	"net/http"

	"pdf-text-extractor/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterOptions carries the non-handler settings of the router
type RouterOptions struct {
	UploadDir      string
	AllowedOrigins []string
	RateLimiter    *RateLimiter
	Logger         domain.Logger
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	uploadHandler *UploadHandler,
	extractionHandler *ExtractionHandler,
	contentsHandler *ContentsHandler,
	opts RouterOptions,
) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestLogger(opts.Logger), Recoverer(opts.Logger), opts.RateLimiter.Middleware)

	router.HandleFunc("/", Root).Methods(http.MethodGet)
	router.HandleFunc("/health", Health).Methods(http.MethodGet)

	router.HandleFunc("/upload", uploadHandler.Upload).Methods(http.MethodPost)
	router.HandleFunc("/parse-pdf", extractionHandler.ParsePDF).Methods(http.MethodPost)

	router.HandleFunc("/contents", contentsHandler.ListContents).Methods(http.MethodGet)
	router.HandleFunc("/contents/{fileName}", contentsHandler.GetContent).Methods(http.MethodGet)

	router.PathPrefix("/uploads/").
		Handler(http.StripPrefix("/uploads/", uploadsFileServer(opts.UploadDir))).
		Methods(http.MethodGet, http.MethodHead)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})

	// Configure CORS
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			RequestIDHeader,
		},
		ExposedHeaders: []string{
			RequestIDHeader,
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
