package documentRepository

const (
	queryGetAllDocuments = `
		SELECT
			nombre,
			tipo,
			alias,
			requisitos,
			donde_obtener,
			horario,
			correo,
			telefono,
			direccion,
			tiempo_validez,
			costo,
			utilidad,
			penalidad,
			notas
		FROM documentos
		ORDER BY nombre
	`

	queryCreateDocument = `
		INSERT INTO documentos (
			nombre,
			tipo,
			alias,
			requisitos,
			donde_obtener,
			horario,
			correo,
			telefono,
			direccion,
			tiempo_validez,
			costo,
			utilidad,
			penalidad,
			notas
		) VALUES (
			:nombre,
			:tipo,
			:alias,
			:requisitos,
			:donde_obtener,
			:horario,
			:correo,
			:telefono,
			:direccion,
			:tiempo_validez,
			:costo,
			:utilidad,
			:penalidad,
			:notas
		)
	`

	// column name is validated against a whitelist before interpolation
	queryUpdateDocumentFieldTemplate = `
		UPDATE documentos
		SET %s = :value
		WHERE nombre = :nombre
	`

	queryAppendRequisito = `
		UPDATE documentos
		SET requisitos = array_append(requisitos, :value)
		WHERE nombre = :nombre
	`

	queryAppendAlias = `
		UPDATE documentos
		SET alias = array_append(alias, :value)
		WHERE nombre = :nombre
	`
)
