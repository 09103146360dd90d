package http

import (
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/middlemost/podgen"
	"github.com/rs/cors"
	"golang.org/x/crypto/acme/autocert"
)

// Server represents an HTTP server.
type Server struct {
	ln net.Listener

	// Services
	Pipeline       *podgen.Pipeline
	PodcastService podgen.PodcastService
	FileService    podgen.FileService

	// Server options.
	Addr        string   // bind address
	Host        string   // external hostname
	Autocert    bool     // ACME autocert
	Recoverable bool     // panic recovery
	Origins     []string // allowed CORS origins

	LogOutput io.Writer
}

// NewServer returns a new instance of Server.
func NewServer() *Server {
	return &Server{
		Recoverable: true,
		Origins:     []string{"http://localhost:3000", "http://localhost:5173"},
		LogOutput:   io.Discard,
	}
}

// Open opens the server.
func (s *Server) Open() error {
	// Open listener on specified bind address.
	// Use HTTPS port if autocert is enabled.
	if s.Autocert {
		s.ln = autocert.NewListener(s.Host)
	} else {
		ln, err := net.Listen("tcp", s.Addr)
		if err != nil {
			return err
		}
		s.ln = ln
	}

	// Start HTTP server.
	go http.Serve(s.ln, s.Handler())

	return nil
}

// Close closes the socket.
func (s *Server) Close() error {
	if s.ln != nil {
		s.ln.Close()
	}
	return nil
}

// URL returns a base URL string with the scheme and host.
// This is available after the server has been opened.
func (s *Server) URL() url.URL {
	if s.ln == nil {
		return url.URL{}
	}

	if s.Autocert {
		return url.URL{Scheme: "https", Host: s.Host}
	}
	return url.URL{Scheme: "http", Host: s.ln.Addr().String()}
}

// Handler returns the root http handler for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Attach router middleware.
	r.Use(middleware.RealIP)
	if s.Recoverable {
		r.Use(middleware.Recoverer)
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   s.Origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)
	r.Use(s.logContext)
	r.Mount("/debug", middleware.Profiler())

	// Create API routes.
	r.Route("/", func(r chi.Router) {
		r.Use(middleware.Compress(5))
		r.Get("/", s.handleHealth)
		r.Get("/ping", s.handlePing)
		r.Mount("/podcasts", s.podcastHandler())
		r.Mount("/files", s.fileHandler())
	})

	return r
}

// logContext attaches the server log writer to every request context.
func (s *Server) logContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s.LogOutput)))
	})
}

// handleHealth reports service health at the root path.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"healthy","message":"podcast generator is running"}` + "\n"))
}

// handlePing returns a success so clients can verify the service is up.
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}` + "\n"))
}

func (s *Server) podcastHandler() *podcastHandler {
	h := newPodcastHandler()
	h.baseURL = s.URL()
	h.pipeline = s.Pipeline
	h.podcastService = s.PodcastService
	return h
}

func (s *Server) fileHandler() *fileHandler {
	h := newFileHandler()
	h.fileService = s.FileService
	return h
}
