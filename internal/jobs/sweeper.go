package jobs

import (
	chatRepository "MunBotGolang/internal/api/chat/repository"
	"MunBotGolang/internal/entity"
	redisPkg "MunBotGolang/pkg/redis"
	"context"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	sweepInterval = 5 * time.Minute
	idleWindow    = 30 * time.Minute
)

// SessionSweeper archives idle sessions to Postgres before their Redis
// key expires, so the conversation history survives the TTL.
type SessionSweeper struct {
	log      *logrus.Logger
	sessions redisPkg.ISessionStore
	chatRepo chatRepository.Repository
}

func NewSessionSweeper(
	log *logrus.Logger,
	sessions redisPkg.ISessionStore,
	chatRepo chatRepository.Repository,
) *SessionSweeper {
	return &SessionSweeper{
		log:      log,
		sessions: sessions,
		chatRepo: chatRepo,
	}
}

// Start blocks until ctx is cancelled. Call it from its own goroutine.
func (s *SessionSweeper) Start(ctx context.Context) {
	if os.Getenv("DISABLE_SESSION_SWEEPER") == "true" || os.Getenv("APP_ENV") == "test" {
		s.log.Info("Session sweeper disabled")
		return
	}

	s.log.WithFields(logrus.Fields{
		"interval":    sweepInterval.String(),
		"idle_window": idleWindow.String(),
	}).Info("Session sweeper started")

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	keys, err := s.sessions.Scan(ctx, redisPkg.SessionKeyPrefix+"*")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Session sweep scan failed")
		return
	}

	archived := 0
	for _, key := range keys {
		if ctx.Err() != nil {
			return
		}
		if s.sweepOne(ctx, key) {
			archived++
		}
	}

	if archived > 0 {
		s.log.WithFields(logrus.Fields{
			"scanned":  len(keys),
			"archived": archived,
		}).Info("Session sweep completed")
	}
}

func (s *SessionSweeper) sweepOne(ctx context.Context, key string) bool {
	payload, err := s.sessions.Get(ctx, key)
	if err != nil {
		return false
	}

	var sess entity.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		s.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("Dropping unreadable session payload")
		_ = s.sessions.Delete(ctx, key)
		return false
	}

	if time.Since(sess.LastActivity) < idleWindow {
		return false
	}

	if err := s.archive(ctx, sess); err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sess.ID,
			"error":      err.Error(),
		}).Error("Failed to archive idle session")
		return false
	}

	if err := s.sessions.Delete(ctx, key); err != nil {
		return false
	}

	return true
}

func (s *SessionSweeper) archive(ctx context.Context, sess entity.Session) error {
	history, err := json.Marshal(sess.History)
	if err != nil {
		return err
	}

	repo, err := s.chatRepo.NewClient(false)
	if err != nil {
		return err
	}

	return repo.History.ArchiveSession(ctx, entity.ArchivedSession{
		SessionID:  sess.ID,
		History:    string(history),
		StartedAt:  sess.CreatedAt,
		ArchivedAt: time.Now(),
	})
}
