package chatRepository

const (
	queryArchiveSession = `
		INSERT INTO conversaciones_historial (
			session_id,
			historial,
			iniciada_en,
			archivada_en
		) VALUES (
			:session_id,
			:historial,
			:iniciada_en,
			:archivada_en
		)
	`

	queryLogUnansweredQuestion = `
		INSERT INTO preguntas_sin_respuesta (
			id,
			pregunta,
			mejor_puntaje,
			mejor_candidata,
			session_id,
			creada_en
		) VALUES (
			:id,
			:pregunta,
			:mejor_puntaje,
			:mejor_candidata,
			:session_id,
			:creada_en
		)
	`

	queryLogFeedback = `
		INSERT INTO feedback_respuestas (
			id,
			pregunta,
			util,
			session_id,
			creada_en
		) VALUES (
			:id,
			:pregunta,
			:util,
			:session_id,
			:creada_en
		)
	`

	queryGetUnansweredQuestions = `
		SELECT
			id,
			pregunta,
			mejor_puntaje,
			mejor_candidata,
			session_id,
			creada_en
		FROM preguntas_sin_respuesta
		ORDER BY creada_en DESC
		LIMIT :limit OFFSET :offset
	`
)
