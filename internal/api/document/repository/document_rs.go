package documentRepository

import (
	"MunBotGolang/internal/entity"
	contextPkg "MunBotGolang/pkg/context"
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type DocumentDB struct {
	Nombre        sql.NullString `db:"nombre"`
	Tipo          sql.NullString `db:"tipo"`
	Alias         pq.StringArray `db:"alias"`
	Requisitos    pq.StringArray `db:"requisitos"`
	DondeObtener  sql.NullString `db:"donde_obtener"`
	Horario       sql.NullString `db:"horario"`
	Correo        sql.NullString `db:"correo"`
	Telefono      sql.NullString `db:"telefono"`
	Direccion     sql.NullString `db:"direccion"`
	TiempoValidez sql.NullString `db:"tiempo_validez"`
	Costo         sql.NullString `db:"costo"`
	Utilidad      sql.NullString `db:"utilidad"`
	Penalidad     sql.NullString `db:"penalidad"`
	Notas         sql.NullString `db:"notas"`
}

var updatableColumns = map[string]bool{
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

func (r *documentsRepository) GetAllDocuments(ctx context.Context) ([]entity.Document, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []DocumentDB

	query := r.q.Rebind(queryGetAllDocuments)
	if err := r.q.SelectContext(ctx, &rows, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllDocuments execution err")
		return nil, err
	}

	docs := make([]entity.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, r.makeDocument(row))
	}

	return docs, nil
}

func (r *documentsRepository) CreateDocument(ctx context.Context, doc entity.Document) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"nombre":         doc.Name,
		"tipo":           doc.Type,
		"alias":          pq.StringArray(doc.Aliases),
		"requisitos":     pq.StringArray(doc.Requisitos),
		"donde_obtener":  doc.DondeObtener,
		"horario":        doc.Horario,
		"correo":         doc.Correo,
		"telefono":       doc.Telefono,
		"direccion":      doc.Direccion,
		"tiempo_validez": doc.TiempoValidez,
		"costo":          doc.Costo,
		"utilidad":       doc.Utilidad,
		"penalidad":      doc.Penalidad,
		"notas":          doc.Notas,
	}

	query, args, err := sqlx.Named(queryCreateDocument, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateDocument")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"document":   doc.Name,
			"error":      err.Error(),
		}).Error("Database error when creating document")
		return err
	}

	return nil
}

func (r *documentsRepository) UpdateDocumentField(ctx context.Context, name, field, value string) error {
	requestID := contextPkg.GetRequestID(ctx)

	if !updatableColumns[field] {
		return fmt.Errorf("column %s is not updatable", field)
	}

	argsKV := map[string]interface{}{
		"nombre": name,
		"value":  value,
	}

	query, args, err := sqlx.Named(fmt.Sprintf(queryUpdateDocumentFieldTemplate, field), argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateDocumentField")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"document":   name,
			"field":      field,
			"error":      err.Error(),
		}).Error("Database error when updating document field")
		return err
	}

	return nil
}

func (r *documentsRepository) AppendRequisito(ctx context.Context, name, value string) error {
	return r.appendArrayValue(ctx, queryAppendRequisito, name, value, "requisito")
}

func (r *documentsRepository) AppendAlias(ctx context.Context, name, value string) error {
	return r.appendArrayValue(ctx, queryAppendAlias, name, value, "alias")
}

func (r *documentsRepository) appendArrayValue(ctx context.Context, baseQuery, name, value, kind string) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"nombre": name,
		"value":  value,
	}

	query, args, err := sqlx.Named(baseQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for append " + kind)
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"document":   name,
			"error":      err.Error(),
		}).Error("Database error when appending " + kind)
		return err
	}

	return nil
}

func (r *documentsRepository) makeDocument(row DocumentDB) entity.Document {
	return entity.Document{
		Name:          row.Nombre.String,
		Type:          row.Tipo.String,
		Aliases:       row.Alias,
		Requisitos:    row.Requisitos,
		DondeObtener:  row.DondeObtener.String,
		Horario:       row.Horario.String,
		Correo:        row.Correo.String,
		Telefono:      row.Telefono.String,
		Direccion:     row.Direccion.String,
		TiempoValidez: row.TiempoValidez.String,
		Costo:         row.Costo.String,
		Utilidad:      row.Utilidad.String,
		Penalidad:     row.Penalidad.String,
		Notas:         row.Notas.String,
	}
}
