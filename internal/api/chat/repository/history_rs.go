package chatRepository

import (
	"MunBotGolang/internal/entity"
	contextPkg "MunBotGolang/pkg/context"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *historyRepository) ArchiveSession(ctx context.Context, archived entity.ArchivedSession) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"session_id":   archived.SessionID,
		"historial":    archived.History,
		"iniciada_en":  archived.StartedAt,
		"archivada_en": archived.ArchivedAt,
	}

	query, args, err := sqlx.Named(queryArchiveSession, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for ArchiveSession")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": archived.SessionID,
			"error":      err.Error(),
		}).Error("Database error when archiving session")
		return err
	}

	return nil
}
