package documentService

import (
	"MunBotGolang/internal/api/document"
	documentRepository "MunBotGolang/internal/api/document/repository"
	"MunBotGolang/internal/entity"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocsTable struct {
	docs []entity.Document
	err  error
}

func (f *fakeDocsTable) GetAllDocuments(_ context.Context) ([]entity.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func (f *fakeDocsTable) CreateDocument(_ context.Context, doc entity.Document) error {
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeDocsTable) UpdateDocumentField(_ context.Context, name, field, value string) error {
	for i := range f.docs {
		if f.docs[i].Name == name && field == "costo" {
			f.docs[i].Costo = value
		}
	}
	return nil
}

func (f *fakeDocsTable) AppendRequisito(_ context.Context, name, value string) error {
	for i := range f.docs {
		if f.docs[i].Name == name {
			f.docs[i].Requisitos = append(f.docs[i].Requisitos, value)
		}
	}
	return nil
}

func (f *fakeDocsTable) AppendAlias(_ context.Context, name, value string) error {
	for i := range f.docs {
		if f.docs[i].Name == name {
			f.docs[i].Aliases = append(f.docs[i].Aliases, value)
		}
	}
	return nil
}

type fakeDocsRepo struct {
	table *fakeDocsTable
}

func (f *fakeDocsRepo) NewClient(_ bool) (documentRepository.Client, error) {
	return documentRepository.Client{
		Documents: f.table,
		Commit:    func() error { return nil },
		Rollback:  func() error { return nil },
	}, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func seedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "documentos.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromRepository(t *testing.T) {
	repo := &fakeDocsRepo{table: &fakeDocsTable{docs: []entity.Document{
		{Name: "permiso de circulacion", Type: "permiso", Aliases: []string{"permiso del auto"}},
	}}}

	svc := NewDocumentsService(testLogger(), repo, "")
	require.NoError(t, svc.Load(context.Background()))

	doc, ok := svc.GetByName("Permiso de Circulación")
	require.True(t, ok)
	assert.Equal(t, "permiso de circulacion", doc.Name)

	assert.Equal(t, "permiso de circulacion", svc.Aliases()["permiso del auto"])
}

func TestLoadFallsBackToSeed(t *testing.T) {
	repo := &fakeDocsRepo{table: &fakeDocsTable{err: errors.New("db down")}}
	seed := seedFile(t, `[{"nombre":"certificado de residencia","tipo":"certificado"}]`)

	svc := NewDocumentsService(testLogger(), repo, seed)
	require.NoError(t, svc.Load(context.Background()))

	_, ok := svc.GetByName("certificado de residencia")
	assert.True(t, ok)
}

func TestLoadMissingSeedFails(t *testing.T) {
	repo := &fakeDocsRepo{table: &fakeDocsTable{err: errors.New("db down")}}

	svc := NewDocumentsService(testLogger(), repo, "/nonexistent/documentos.json")
	assert.Error(t, svc.Load(context.Background()))
}

func TestGetByType(t *testing.T) {
	repo := &fakeDocsRepo{table: &fakeDocsTable{docs: []entity.Document{
		{Name: "certificado de residencia", Type: "certificado"},
		{Name: "certificado de antecedentes", Type: "certificado"},
		{Name: "patente comercial", Type: "patente"},
	}}}

	svc := NewDocumentsService(testLogger(), repo, "")
	require.NoError(t, svc.Load(context.Background()))

	assert.Len(t, svc.GetByType("certificado"), 2)
	assert.Len(t, svc.GetByType("patente"), 1)
	assert.Empty(t, svc.GetByType("licencia"))
}

func TestCreateDocument(t *testing.T) {
	table := &fakeDocsTable{docs: []entity.Document{
		{Name: "patente comercial", Type: "patente"},
	}}
	svc := NewDocumentsService(testLogger(), &fakeDocsRepo{table: table}, "")
	ctx := context.Background()
	require.NoError(t, svc.Load(ctx))

	t.Run("Duplicate Name Rejected", func(t *testing.T) {
		err := svc.CreateDocument(ctx, document.CreateDocumentRequest{
			Nombre: "Patente Comercial",
			Tipo:   "patente",
		})
		assert.ErrorIs(t, err, document.ErrDocumentAlreadyExists)
	})

	t.Run("New Document Lands In Cache", func(t *testing.T) {
		err := svc.CreateDocument(ctx, document.CreateDocumentRequest{
			Nombre: "licencia de conducir",
			Tipo:   "licencia",
		})
		require.NoError(t, err)

		_, ok := svc.GetByName("licencia de conducir")
		assert.True(t, ok)
	})
}

func TestAddField(t *testing.T) {
	table := &fakeDocsTable{docs: []entity.Document{
		{Name: "patente comercial", Type: "patente"},
	}}
	svc := NewDocumentsService(testLogger(), &fakeDocsRepo{table: table}, "")
	ctx := context.Background()
	require.NoError(t, svc.Load(ctx))

	t.Run("Unknown Document", func(t *testing.T) {
		err := svc.AddField(ctx, "no existe", document.AddFieldRequest{Field: "costo", Value: "1 UTM"})
		assert.ErrorIs(t, err, document.ErrDocumentNotFound)
	})

	t.Run("Invalid Field", func(t *testing.T) {
		err := svc.AddField(ctx, "patente comercial", document.AddFieldRequest{Field: "color", Value: "azul"})
		assert.ErrorIs(t, err, document.ErrInvalidField)
	})

	t.Run("Scalar Update Reaches Cache", func(t *testing.T) {
		err := svc.AddField(ctx, "patente comercial", document.AddFieldRequest{Field: "costo", Value: "0,5 UTM"})
		require.NoError(t, err)

		doc, ok := svc.GetByName("patente comercial")
		require.True(t, ok)
		assert.Equal(t, "0,5 UTM", doc.Costo)
	})

	t.Run("Requisito Append Reaches Cache", func(t *testing.T) {
		err := svc.AddField(ctx, "patente comercial", document.AddFieldRequest{Field: "requisitos", Value: "Iniciación de actividades"})
		require.NoError(t, err)

		doc, ok := svc.GetByName("patente comercial")
		require.True(t, ok)
		assert.Contains(t, doc.Requisitos, "Iniciación de actividades")
	})
}
