package mock

import (
	"context"

	"github.com/middlemost/podgen"
)

var _ podgen.PodcastService = &PodcastService{}

type PodcastService struct {
	CreatePodcastFn   func(ctx context.Context, p *podgen.Podcast) error
	FindPodcastByIDFn func(ctx context.Context, id string) (*podgen.Podcast, error)
	PodcastsFn        func(ctx context.Context) ([]*podgen.Podcast, error)
}

func (s *PodcastService) CreatePodcast(ctx context.Context, p *podgen.Podcast) error {
	return s.CreatePodcastFn(ctx, p)
}

func (s *PodcastService) FindPodcastByID(ctx context.Context, id string) (*podgen.Podcast, error) {
	return s.FindPodcastByIDFn(ctx, id)
}

func (s *PodcastService) Podcasts(ctx context.Context) ([]*podgen.Podcast, error) {
	return s.PodcastsFn(ctx)
}
