package chatService

import (
	"MunBotGolang/internal/api/chat"
	chatRepository "MunBotGolang/internal/api/chat/repository"
	documentService "MunBotGolang/internal/api/document/service"
	"MunBotGolang/internal/entity"
	"MunBotGolang/internal/fulfillment"
	geminiPkg "MunBotGolang/pkg/gemini"
	openaiPkg "MunBotGolang/pkg/openai"
	redisPkg "MunBotGolang/pkg/redis"
	smtpPkg "MunBotGolang/pkg/smtp"
	utilsPkg "MunBotGolang/pkg/utils"
	whatsappPkg "MunBotGolang/pkg/whatsapp"
	"context"
	"errors"
	"time"

	"MunBotGolang/pkg/nlp"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const sessionTTL = time.Hour

type IChatService interface {
	ProcessMessage(ctx context.Context, req chat.MessageRequest) (*chat.MessageResponse, error)
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
}

type chatService struct {
	log        *logrus.Logger
	matcher    nlp.IMatcher
	documents  documentService.IDocumentsService
	sessions   redisPkg.ISessionStore
	chatRepo   chatRepository.Repository
	classifier openaiPkg.IClassifier
	generator  geminiPkg.IGemini
	complaints fulfillment.IComplaintClient
	scheduler  fulfillment.ISchedulerClient
	docsRemote fulfillment.IDocsClient
	mailer     smtpPkg.ItfSmtp
	notifier   whatsappPkg.IWhatsappSender
	utils      utilsPkg.IUtils
}

func NewChatService(
	log *logrus.Logger,
	matcher nlp.IMatcher,
	documents documentService.IDocumentsService,
	sessions redisPkg.ISessionStore,
	chatRepo chatRepository.Repository,
	classifier openaiPkg.IClassifier,
	generator geminiPkg.IGemini,
	complaints fulfillment.IComplaintClient,
	scheduler fulfillment.ISchedulerClient,
	docsRemote fulfillment.IDocsClient,
	mailer smtpPkg.ItfSmtp,
	notifier whatsappPkg.IWhatsappSender,
	utils utilsPkg.IUtils,
) IChatService {
	return &chatService{
		log:        log,
		matcher:    matcher,
		documents:  documents,
		sessions:   sessions,
		chatRepo:   chatRepo,
		classifier: classifier,
		generator:  generator,
		complaints: complaints,
		scheduler:  scheduler,
		docsRemote: docsRemote,
		mailer:     mailer,
		notifier:   notifier,
		utils:      utils,
	}
}

// turnReply is the engine-internal outcome of one resolved turn before it is
// shaped into the wire response.
type turnReply struct {
	Text       string
	Escalated  bool
	Processing bool
	EndSession bool
}

func (s *chatService) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	payload, err := s.sessions.Get(ctx, redisPkg.SessionKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, redisPkg.ErrNotFound) {
			return nil, chat.ErrSessionNotFound
		}
		return nil, err
	}

	var sess entity.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}

	return &sess, nil
}

// loadSession fetches the session or lazily creates one with a generated key.
func (s *chatService) loadSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	if sessionID == "" {
		return s.newSession(), nil
	}

	payload, err := s.sessions.Get(ctx, redisPkg.SessionKeyPrefix+sessionID)
	if errors.Is(err, redisPkg.ErrNotFound) {
		sess := s.newSession()
		sess.ID = sessionID
		return sess, nil
	} else if err != nil {
		return nil, err
	}

	var sess entity.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Corrupt session payload, starting fresh")
		fresh := s.newSession()
		fresh.ID = sessionID
		return fresh, nil
	}

	return &sess, nil
}

func (s *chatService) newSession() *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:           uuid.NewString(),
		ActiveFlow:   entity.FlowNone,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// saveSession writes the session back with a refreshed sliding TTL.
func (s *chatService) saveSession(ctx context.Context, sess *entity.Session) error {
	sess.LastActivity = time.Now()

	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return s.sessions.Save(ctx, redisPkg.SessionKeyPrefix+sess.ID, payload, sessionTTL)
}

func (s *chatService) deleteSession(ctx context.Context, sessionID string) {
	if err := s.sessions.Delete(ctx, redisPkg.SessionKeyPrefix+sessionID); err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to delete session")
	}
}
