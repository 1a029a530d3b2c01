package chatRepository

import (
	"MunBotGolang/internal/entity"
	contextPkg "MunBotGolang/pkg/context"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *curationRepository) LogUnansweredQuestion(ctx context.Context, question entity.UnansweredQuestion) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":              question.ID,
		"pregunta":        question.Question,
		"mejor_puntaje":   question.BestScore,
		"mejor_candidata": question.BestCandidate,
		"session_id":      question.SessionID,
		"creada_en":       question.CreatedAt,
	}

	query, args, err := sqlx.Named(queryLogUnansweredQuestion, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for LogUnansweredQuestion")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when logging unanswered question")
		return err
	}

	return nil
}

func (r *curationRepository) LogFeedback(ctx context.Context, feedback entity.AnswerFeedback) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         feedback.ID,
		"pregunta":   feedback.Question,
		"util":       feedback.Helpful,
		"session_id": feedback.SessionID,
		"creada_en":  feedback.CreatedAt,
	}

	query, args, err := sqlx.Named(queryLogFeedback, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for LogFeedback")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when logging feedback")
		return err
	}

	return nil
}

func (r *curationRepository) GetUnansweredQuestions(ctx context.Context, limit, offset int) ([]entity.UnansweredQuestion, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var questions []entity.UnansweredQuestion

	argsKV := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	query, args, err := sqlx.Named(queryGetUnansweredQuestions, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetUnansweredQuestions named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &questions, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetUnansweredQuestions execution err")
		return nil, err
	}

	return questions, nil
}
