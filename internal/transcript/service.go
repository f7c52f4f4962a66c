package transcript

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"transcript_api/internal/audio"
	"transcript_api/internal/cache"
	"transcript_api/internal/observability"
	"transcript_api/internal/queue"
	"transcript_api/internal/transcribe"
	"transcript_api/internal/utils"

	"github.com/go-redis/redis/v8"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// ErrUnsupportedMediaType rejects uploads that are neither WAV nor MP3.
var ErrUnsupportedMediaType = errors.New("invalid file type, only WAV or MP3 is allowed")

type TranscriptServiceInterface interface {
	TranscribeUpload(ctx context.Context, data []byte, contentType string) (string, error)
	Save(ctx context.Context, username, text string) (*Transcript, error)
	List(ctx context.Context, username string) ([]*Transcript, error)
}

type TranscriptService struct {
	repo      TranscriptRepositoryInterface
	DB        *sql.DB
	engine    transcribe.Engine
	converter audio.Converter
	conn      *amqp.Connection
	cache     *cache.TranscriptCache
}

func NewTranscriptService(
	repo TranscriptRepositoryInterface,
	db *sql.DB,
	engine transcribe.Engine,
	converter audio.Converter,
	conn *amqp.Connection,
	redisClient *redis.Client,
) TranscriptServiceInterface {
	return &TranscriptService{
		repo:      repo,
		DB:        db,
		engine:    engine,
		converter: converter,
		conn:      conn,
		cache:     cache.NewTranscriptCache(redisClient),
	}
}

// TranscribeUpload converts an uploaded audio file to WAV and runs it
// through the transcription engine.
func (s *TranscriptService) TranscribeUpload(ctx context.Context, data []byte, contentType string) (string, error) {
	format := audio.FormatForContentType(contentType)
	if format == "" {
		return "", ErrUnsupportedMediaType
	}

	wavBytes, err := s.converter.ToWAV(ctx, data, format)
	if err != nil {
		return "", fmt.Errorf("audio conversion failed: %w", err)
	}

	text, err := s.engine.Transcribe(ctx, wavBytes, "audio/wav")
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	return text, nil
}

// Save stamps the transcript with its owner and a UTC timestamp, persists
// it, then emits a saved event for the word-count worker. Event publishing
// and cache invalidation are best-effort; the save itself already
// succeeded.
func (s *TranscriptService) Save(ctx context.Context, username, text string) (*Transcript, error) {
	tr := &Transcript{
		Username:  username,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := utils.WithTransaction(s.DB, func(tx *sql.Tx) error {
		id, err := s.repo.Insert(tx, tr)
		if err != nil {
			return err
		}
		tr.ID = id
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.publishSavedEvent(ctx, tr); err != nil {
		logrus.WithError(err).Warn("Transcript saved but event not published")
	}

	if err := s.cache.Invalidate(ctx, cache.UserTranscriptsKey(username)); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate transcript listing cache")
	}

	return tr, nil
}

func (s *TranscriptService) publishSavedEvent(ctx context.Context, tr *Transcript) error {
	ch, err := queue.CreateChannel(s.conn)
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := queue.PublishJSON(ctx, ch, queue.TranscriptEventsQueue, Event{
		ID:       tr.ID,
		Username: tr.Username,
	}); err != nil {
		return err
	}

	observability.GlobalMetrics.QueueMessagesPublished.WithLabelValues(queue.TranscriptEventsQueue).Inc()
	return nil
}

// List returns the caller's transcripts, newest first, through the Redis
// listing cache.
func (s *TranscriptService) List(ctx context.Context, username string) ([]*Transcript, error) {
	cacheKey := cache.UserTranscriptsKey(username)
	cachedData, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cachedData != nil {
		var transcripts []*Transcript
		if json.Unmarshal(cachedData, &transcripts) == nil {
			logrus.Infof("cache hit for user %s transcripts", username)
			observability.GlobalMetrics.CacheHitsTotal.WithLabelValues("user_transcripts").Inc()
			return transcripts, nil
		}
	}
	logrus.Infof("cache miss for user %s transcripts", username)
	observability.GlobalMetrics.CacheMissesTotal.WithLabelValues("user_transcripts").Inc()

	transcripts, err := s.repo.ListByUsername(s.DB, username)
	if err != nil {
		return nil, err
	}

	// Cache failures are not critical
	if err := s.cache.Set(ctx, cacheKey, transcripts); err != nil {
		logrus.WithError(err).Warn("Failed to set transcript listing cache")
	}

	return transcripts, nil
}
