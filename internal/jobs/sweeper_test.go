package jobs

import (
	chatRepository "MunBotGolang/internal/api/chat/repository"
	"MunBotGolang/internal/entity"
	redisPkg "MunBotGolang/pkg/redis"
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data map[string][]byte
}

func (m *memStore) Save(_ context.Context, key string, payload []byte, _ time.Duration) error {
	m.data[key] = payload
	return nil
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	payload, ok := m.data[key]
	if !ok {
		return nil, redisPkg.ErrNotFound
	}
	return payload, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memStore) Scan(_ context.Context, _ string) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *memStore) TTL(_ context.Context, _ string) (time.Duration, error) {
	return time.Hour, nil
}

type archiveSink struct {
	rows []entity.ArchivedSession
}

func (a *archiveSink) ArchiveSession(_ context.Context, archived entity.ArchivedSession) error {
	a.rows = append(a.rows, archived)
	return nil
}

type noCuration struct{}

func (noCuration) LogUnansweredQuestion(_ context.Context, _ entity.UnansweredQuestion) error {
	return nil
}
func (noCuration) LogFeedback(_ context.Context, _ entity.AnswerFeedback) error { return nil }
func (noCuration) GetUnansweredQuestions(_ context.Context, _, _ int) ([]entity.UnansweredQuestion, error) {
	return nil, nil
}

type memRepo struct {
	sink *archiveSink
}

func (m *memRepo) NewClient(_ bool) (chatRepository.Client, error) {
	return chatRepository.Client{
		History:  m.sink,
		Curation: noCuration{},
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func newTestSweeper() (*SessionSweeper, *memStore, *archiveSink) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := &memStore{data: map[string][]byte{}}
	sink := &archiveSink{}

	return NewSessionSweeper(logger, store, &memRepo{sink: sink}), store, sink
}

func storeSession(t *testing.T, store *memStore, sess entity.Session) string {
	t.Helper()
	payload, err := json.Marshal(sess)
	require.NoError(t, err)
	key := redisPkg.SessionKeyPrefix + sess.ID
	store.data[key] = payload
	return key
}

func TestSweepArchivesIdleSessions(t *testing.T) {
	sweeper, store, sink := newTestSweeper()
	ctx := context.Background()

	idleKey := storeSession(t, store, entity.Session{
		ID:           "idle",
		History:      []entity.Turn{{Speaker: "user", Text: "hola"}},
		CreatedAt:    time.Now().Add(-2 * time.Hour),
		LastActivity: time.Now().Add(-time.Hour),
	})
	activeKey := storeSession(t, store, entity.Session{
		ID:           "active",
		LastActivity: time.Now(),
	})

	sweeper.sweep(ctx)

	require.Len(t, sink.rows, 1)
	assert.Equal(t, "idle", sink.rows[0].SessionID)
	assert.Contains(t, sink.rows[0].History, "hola")

	_, hasIdle := store.data[idleKey]
	_, hasActive := store.data[activeKey]
	assert.False(t, hasIdle)
	assert.True(t, hasActive)
}

func TestSweepDropsCorruptPayload(t *testing.T) {
	sweeper, store, sink := newTestSweeper()

	key := redisPkg.SessionKeyPrefix + "broken"
	store.data[key] = []byte("not json")

	sweeper.sweep(context.Background())

	assert.Empty(t, sink.rows)
	_, remains := store.data[key]
	assert.False(t, remains)
}
