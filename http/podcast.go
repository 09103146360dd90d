package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/middlemost/podgen"
)

// MaxUploadSize is the maximum accepted document size, in bytes.
const MaxUploadSize = 32 << 20

// podcastHandler represents an HTTP handler for podcasts.
type podcastHandler struct {
	router chi.Router

	baseURL        url.URL
	pipeline       *podgen.Pipeline
	podcastService podgen.PodcastService
}

// newPodcastHandler returns a new instance of podcastHandler.
func newPodcastHandler() *podcastHandler {
	h := &podcastHandler{router: chi.NewRouter()}
	h.router.Post("/", h.handleCreate)
	h.router.Get("/", h.handleList)
	h.router.Get("/{id}", h.handleGet)
	return h
}

// ServeHTTP implements http.Handler.
func (h *podcastHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// handleCreate accepts a multipart document upload and runs the pipeline.
func (h *podcastHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Read uploaded document.
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		Error(w, r, fmt.Errorf("%w: %s", ErrInvalidRequestBody, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		Error(w, r, fmt.Errorf("%w: %s", ErrInvalidRequestBody, err))
		return
	}

	doc := &podgen.Document{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	// Run pipeline synchronously and respond with the record.
	podcast, err := h.pipeline.Run(ctx, doc)
	if err != nil {
		Error(w, r, err)
		return
	}

	audioURL := h.baseURL
	audioURL.Path = "/files/" + podcast.AudioPath

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(createPodcastResponse{
		ID:        podcast.ID,
		Summary:   podcast.Summary,
		Script:    podcast.Script,
		AudioPath: podcast.AudioPath,
		AudioURL:  audioURL.String(),
	})
}

// handleList returns all stored podcast records.
func (h *podcastHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	podcasts, err := h.podcastService.Podcasts(ctx)
	if err != nil {
		Error(w, r, err)
		return
	}
	if podcasts == nil {
		podcasts = []*podgen.Podcast{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listPodcastsResponse{Podcasts: podcasts})
}

// handleGet returns a single podcast record by ID.
func (h *podcastHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	podcast, err := h.podcastService.FindPodcastByID(ctx, id)
	if err != nil {
		Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(podcast)
}

type createPodcastResponse struct {
	ID        string `json:"id"`
	Summary   string `json:"summary"`
	Script    string `json:"podcast_script"`
	AudioPath string `json:"audio_path"`
	AudioURL  string `json:"audio_url"`
}

type listPodcastsResponse struct {
	Podcasts []*podgen.Podcast `json:"podcasts"`
}
