package bolt

import (
	"context"
	"encoding/json"

	"github.com/middlemost/podgen"
)

// Ensure service implements interface.
var _ podgen.PodcastService = &PodcastService{}

// PodcastService represents a service to manage podcast records.
// Records are append-only; no update or delete is provided.
type PodcastService struct {
	db *DB
}

// NewPodcastService returns a new instance of PodcastService.
func NewPodcastService(db *DB) *PodcastService {
	return &PodcastService{db: db}
}

// CreatePodcast stores a new podcast record. An ID is generated if the
// record does not carry one already.
func (s *PodcastService) CreatePodcast(ctx context.Context, p *podgen.Podcast) error {
	if p == nil {
		return podgen.ErrPodcastRequired
	}

	tx, err := s.db.Begin(ctx, true)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := createPodcast(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

// FindPodcastByID returns a podcast record by ID.
// Returns ErrPodcastNotFound if the record does not exist.
func (s *PodcastService) FindPodcastByID(ctx context.Context, id string) (*podgen.Podcast, error) {
	if id == "" {
		return nil, podgen.ErrPodcastIDRequired
	}

	tx, err := s.db.Begin(ctx, false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	return findPodcastByID(ctx, tx, id)
}

// Podcasts returns all podcast records in key order.
func (s *PodcastService) Podcasts(ctx context.Context) ([]*podgen.Podcast, error) {
	tx, err := s.db.Begin(ctx, false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	bkt := tx.Bucket([]byte("Podcasts"))
	if bkt == nil {
		return nil, nil
	}

	a := make([]*podgen.Podcast, 0, 10)
	cur := bkt.Cursor()
	for k, v := cur.First(); k != nil; k, v = cur.Next() {
		var p podgen.Podcast
		if err := unmarshalPodcast(v, &p); err != nil {
			return nil, err
		}
		a = append(a, &p)
	}
	return a, nil
}

func createPodcast(ctx context.Context, tx *Tx, p *podgen.Podcast) error {
	bkt, err := tx.CreateBucketIfNotExists([]byte("Podcasts"))
	if err != nil {
		return err
	}

	// Assign identifier & creation time.
	if p.ID == "" {
		p.ID = podgen.GenerateToken()
	}
	p.CreatedAt = tx.Now

	buf, err := marshalPodcast(p)
	if err != nil {
		return err
	}
	return bkt.Put([]byte(p.ID), buf)
}

func findPodcastByID(ctx context.Context, tx *Tx, id string) (*podgen.Podcast, error) {
	bkt := tx.Bucket([]byte("Podcasts"))
	if bkt == nil {
		return nil, podgen.ErrPodcastNotFound
	}

	buf := bkt.Get([]byte(id))
	if buf == nil {
		return nil, podgen.ErrPodcastNotFound
	}

	var p podgen.Podcast
	if err := unmarshalPodcast(buf, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func marshalPodcast(p *podgen.Podcast) ([]byte, error) {
	return json.Marshal(p)
}

func unmarshalPodcast(data []byte, p *podgen.Podcast) error {
	return json.Unmarshal(data, p)
}
