package documentService

import (
	"MunBotGolang/internal/api/document"
	documentRepository "MunBotGolang/internal/api/document/repository"
	"MunBotGolang/internal/entity"
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

type IDocumentsService interface {
	GetAll() []entity.Document
	GetByName(name string) (*entity.Document, bool)
	GetByType(docType string) []entity.Document
	Aliases() map[string]string
	Load(ctx context.Context) error
	Reload(ctx context.Context) error
	CreateDocument(ctx context.Context, req document.CreateDocumentRequest) error
	AddField(ctx context.Context, name string, req document.AddFieldRequest) error
}

type documentsService struct {
	log      *logrus.Logger
	docsRepo documentRepository.Repository
	seedPath string

	mu      sync.RWMutex
	docs    []entity.Document
	byName  map[string]int
	aliases map[string]string
}

func NewDocumentsService(
	log *logrus.Logger,
	docsRepo documentRepository.Repository,
	seedPath string,
) IDocumentsService {
	return &documentsService{
		log:      log,
		docsRepo: docsRepo,
		seedPath: seedPath,
		byName:   make(map[string]int),
		aliases:  make(map[string]string),
	}
}
