package documentService

import (
	"MunBotGolang/internal/api/document"
	"MunBotGolang/internal/entity"
	"MunBotGolang/pkg/nlp"
	"context"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var scalarFields = map[string]bool{
	"donde_obtener":  true,
	"horario":        true,
	"correo":         true,
	"telefono":       true,
	"direccion":      true,
	"tiempo_validez": true,
	"costo":          true,
	"utilidad":       true,
	"penalidad":      true,
	"notas":          true,
}

// Load fills the in-memory cache from the durable store, falling back to the
// bundled seed file when the table is empty or unreachable.
func (s *documentsService) Load(ctx context.Context) error {
	docs, err := s.loadFromRepository(ctx)
	if err != nil || len(docs) == 0 {
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Could not load documents from database, using seed file")
		}

		docs, err = s.loadFromSeed()
		if err != nil {
			return err
		}
	}

	s.install(docs)

	s.log.WithFields(logrus.Fields{
		"documents": len(docs),
	}).Info("Document cache loaded")

	return nil
}

func (s *documentsService) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

func (s *documentsService) loadFromRepository(ctx context.Context) ([]entity.Document, error) {
	repo, err := s.docsRepo.NewClient(false)
	if err != nil {
		return nil, err
	}
	return repo.Documents.GetAllDocuments(ctx)
}

func (s *documentsService) loadFromSeed() ([]entity.Document, error) {
	path := s.seedPath
	if path == "" {
		path = "./databases/documentos.json"
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document seed %s: %w", path, err)
	}

	var docs []entity.Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse document seed %s: %w", path, err)
	}

	return docs, nil
}

func (s *documentsService) install(docs []entity.Document) {
	byName := make(map[string]int, len(docs))
	aliases := make(map[string]string)

	for i, doc := range docs {
		byName[nlp.Normalize(doc.Name)] = i
		for _, alias := range doc.Aliases {
			aliases[nlp.Normalize(alias)] = doc.Name
		}
	}

	s.mu.Lock()
	s.docs = docs
	s.byName = byName
	s.aliases = aliases
	s.mu.Unlock()
}

func (s *documentsService) GetAll() []entity.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs
}

func (s *documentsService) GetByName(name string) (*entity.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byName[nlp.Normalize(name)]
	if !ok {
		return nil, false
	}

	doc := s.docs[idx]
	return &doc, true
}

func (s *documentsService) GetByType(docType string) []entity.Document {
	normalized := nlp.Normalize(docType)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []entity.Document
	for _, doc := range s.docs {
		if nlp.Normalize(doc.Type) == normalized {
			matched = append(matched, doc)
		}
	}

	return matched
}

func (s *documentsService) Aliases() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aliases
}

func (s *documentsService) CreateDocument(ctx context.Context, req document.CreateDocumentRequest) error {
	if _, exists := s.GetByName(req.Nombre); exists {
		return document.ErrDocumentAlreadyExists
	}

	doc := entity.Document{
		Name:          req.Nombre,
		Type:          req.Tipo,
		Aliases:       req.Alias,
		Requisitos:    req.Requisitos,
		DondeObtener:  req.DondeObtener,
		Horario:       req.Horario,
		Correo:        req.Correo,
		Telefono:      req.Telefono,
		Direccion:     req.Direccion,
		TiempoValidez: req.TiempoValidez,
		Costo:         req.Costo,
		Utilidad:      req.Utilidad,
		Penalidad:     req.Penalidad,
		Notas:         req.Notas,
	}

	repo, err := s.docsRepo.NewClient(false)
	if err != nil {
		return err
	}

	if err := repo.Documents.CreateDocument(ctx, doc); err != nil {
		return err
	}

	return s.Reload(ctx)
}

func (s *documentsService) AddField(ctx context.Context, name string, req document.AddFieldRequest) error {
	doc, exists := s.GetByName(name)
	if !exists {
		return document.ErrDocumentNotFound
	}

	repo, err := s.docsRepo.NewClient(false)
	if err != nil {
		return err
	}

	switch {
	case req.Field == "requisitos":
		err = repo.Documents.AppendRequisito(ctx, doc.Name, req.Value)
	case req.Field == "alias":
		err = repo.Documents.AppendAlias(ctx, doc.Name, req.Value)
	case scalarFields[req.Field]:
		err = repo.Documents.UpdateDocumentField(ctx, doc.Name, req.Field, req.Value)
	default:
		return document.ErrInvalidField
	}

	if err != nil {
		return err
	}

	return s.Reload(ctx)
}
