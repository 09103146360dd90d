package podgen

import (
	"context"
	"time"
)

// Podcast errors.
const (
	ErrPodcastRequired   = Error("podcast required")
	ErrPodcastIDRequired = Error("podcast id required")
	ErrPodcastNotFound   = Error("podcast not found")
)

// Podcast statuses.
const (
	PodcastStatusCompleted = "completed"
)

// Podcast represents the persisted result of one pipeline run.
// Records are append-only; they are never mutated after creation.
type Podcast struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Summary     string    `json:"summary"`
	Script      string    `json:"script"`
	AudioPath   string    `json:"audio_path"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// PodcastService represents a service for managing podcast records.
type PodcastService interface {
	CreatePodcast(ctx context.Context, p *Podcast) error
	FindPodcastByID(ctx context.Context, id string) (*Podcast, error)
	Podcasts(ctx context.Context) ([]*Podcast, error)
}
