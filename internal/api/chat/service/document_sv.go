package chatService

import (
	"MunBotGolang/internal/entity"
	"MunBotGolang/pkg/nlp"
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	docDirectThreshold  = 90
	docConfirmLow       = 80
	attributeThreshold  = 85
	docListEscapeOption = "Mi opción no está en la lista"
)

var docTypeVocabulary = []string{"certificado", "permiso", "patente", "licencia"}

var attributeKeywords = map[string][]string{
	"requisitos":     {"requisito", "requisitos", "que necesito llevar", "que papeles", "que documentos llevar"},
	"donde_obtener":  {"donde obtener", "donde saco", "donde se saca", "donde pido", "donde solicito"},
	"horario":        {"horario", "hora de atencion", "a que hora atienden", "cuando atienden"},
	"correo":         {"correo", "email", "mail"},
	"telefono":       {"telefono", "fono", "numero de contacto"},
	"direccion":      {"direccion", "donde queda", "ubicacion", "donde esta"},
	"tiempo_validez": {"validez", "vigencia", "cuanto dura", "hasta cuando sirve"},
	"costo":          {"costo", "precio", "cuanto cuesta", "cuanto vale", "valor"},
	"utilidad":       {"para que sirve", "utilidad", "en que se usa"},
	"penalidad":      {"multa", "penalidad", "sancion", "que pasa si no"},
	"notas":          {"observaciones", "algo mas que saber"},
}

var attributeDisplayNames = map[string]string{
	"requisitos":     "requisitos",
	"donde_obtener":  "dónde obtenerlo",
	"horario":        "horario de atención",
	"correo":         "correo",
	"telefono":       "teléfono",
	"direccion":      "dirección",
	"tiempo_validez": "tiempo de validez",
	"costo":          "costo",
	"utilidad":       "utilidad",
	"penalidad":      "penalidad",
	"notas":          "notas",
}

var defaultAttributeSet = []string{"requisitos", "donde_obtener", "horario", "costo"}

// resolveDocument identifies a named document or document type in the message
// and composes a templated answer, or hands back control when no document
// signal is present.
func (s *chatService) resolveDocument(sess *entity.Session, message string) (*turnReply, bool) {
	normalized := nlp.Normalize(message)

	name, suggestion := s.detectDocumentName(normalized)

	if suggestion != "" {
		sess.ClearSubFlows()
		sess.DocClarification = &entity.DocClarification{
			Name:             suggestion,
			OriginalQuestion: message,
		}
		return &turnReply{
			Text: fmt.Sprintf("¿Te refieres al documento «%s»? (sí/no)", suggestion),
		}, true
	}

	// a previously resolved document answers follow-up attribute questions
	if name == "" && sess.SelectedDocument != "" && len(requestedAttributes(normalized)) > 0 {
		name = sess.SelectedDocument
	}

	if name == "" {
		docType := detectDocumentType(normalized)
		if docType == "" {
			return nil, false
		}

		docs := s.documents.GetByType(docType)
		if len(docs) == 0 {
			return &turnReply{
				Text: fmt.Sprintf("No tengo documentos del tipo «%s» registrados. ¿Puedes darme el nombre exacto?", docType),
			}, true
		}

		return s.offerDocumentMenu(sess, docType, docs), true
	}

	doc, ok := s.documents.GetByName(name)
	if !ok {
		return nil, false
	}

	return s.composeDocumentAnswer(sess, doc, normalized), true
}

// detectDocumentName tries substring containment, the alias table, then fuzzy
// whole-name matching. Returns either a resolved name or a suggestion that
// needs confirmation.
func (s *chatService) detectDocumentName(normalized string) (name string, suggestion string) {
	for _, doc := range s.documents.GetAll() {
		if strings.Contains(normalized, nlp.Normalize(doc.Name)) {
			return doc.Name, ""
		}
	}

	for alias, canonical := range s.documents.Aliases() {
		if strings.Contains(normalized, alias) {
			return canonical, ""
		}
	}

	bestScore := 0
	bestName := ""
	for _, doc := range s.documents.GetAll() {
		if score := nlp.PartialRatio(doc.Name, normalized); score > bestScore {
			bestScore = score
			bestName = doc.Name
		}
	}

	if bestScore >= docDirectThreshold {
		return bestName, ""
	}
	if bestScore >= docConfirmLow {
		return "", bestName
	}

	return "", ""
}

func detectDocumentType(normalized string) string {
	for _, docType := range docTypeVocabulary {
		if strings.Contains(normalized, docType) {
			return docType
		}
		if nlp.PartialRatio(docType, normalized) >= attributeThreshold {
			return docType
		}
	}
	return ""
}

func requestedAttributes(normalized string) []string {
	var requested []string
	for attr, keywords := range attributeKeywords {
		for _, kw := range keywords {
			if strings.Contains(normalized, kw) || nlp.PartialRatio(kw, normalized) >= attributeThreshold {
				requested = append(requested, attr)
				break
			}
		}
	}
	return requested
}

func (s *chatService) offerDocumentMenu(sess *entity.Session, docType string, docs []entity.Document) *turnReply {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Estos son los documentos de tipo «%s» que manejo:\n", docType))

	names := make([]string, 0, len(docs))
	for i, doc := range docs {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, doc.Name))
		names = append(names, doc.Name)
	}
	sb.WriteString(fmt.Sprintf("%d. %s\n", len(names)+1, docListEscapeOption))
	sb.WriteString("Responde con el número del documento que te interesa.")

	sess.ClearSubFlows()
	sess.PendingDocList = names
	sess.PendingDocType = docType

	return &turnReply{Text: sb.String()}
}

// composeDocumentAnswer covers only the attributes that exist on the record;
// requested attributes missing from it are reported as not available.
func (s *chatService) composeDocumentAnswer(sess *entity.Session, doc *entity.Document, normalized string) *turnReply {
	requested := requestedAttributes(normalized)
	usingDefault := false
	if len(requested) == 0 {
		requested = defaultAttributeSet
		usingDefault = true
	}

	caser := cases.Title(language.Spanish)

	var present []string
	var absent []string
	for _, attr := range requested {
		if value, ok := doc.Attribute(attr); ok {
			present = append(present, fmt.Sprintf("• %s: %s", caser.String(attributeDisplayNames[attr]), value))
		} else if !usingDefault {
			absent = append(absent, attributeDisplayNames[attr])
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Sobre el **%s**:\n", doc.Name))

	if len(present) > 0 {
		sb.WriteString(strings.Join(present, "\n"))
		sb.WriteString("\n")
	}
	if len(absent) > 0 {
		sb.WriteString(fmt.Sprintf("No tengo registrado: %s.\n", strings.Join(absent, ", ")))
	}
	if len(present) == 0 && len(absent) == 0 {
		sb.WriteString("No tengo información adicional registrada para este documento.\n")
	}

	sb.WriteString("\n¿Quieres saber algo más de este documento?")

	sess.SelectedDocument = doc.Name
	sess.FallbackCount = 0

	return &turnReply{Text: sb.String()}
}

func (s *chatService) resumeDocClarification(ctx context.Context, sess *entity.Session, message, normalized string) (*turnReply, error) {
	clarification := sess.DocClarification
	sess.DocClarification = nil

	if isAffirmative(normalized) {
		doc, ok := s.documents.GetByName(clarification.Name)
		if !ok {
			return &turnReply{Text: "Perdón, ya no encuentro ese documento. ¿Puedes darme el nombre exacto?"}, nil
		}
		// replay the original question against the confirmed document
		return s.composeDocumentAnswer(sess, doc, nlp.Normalize(clarification.OriginalQuestion)), nil
	}

	if isNegative(normalized) {
		return &turnReply{Text: "De acuerdo. ¿Puedes darme el nombre exacto del documento que buscas?"}, nil
	}

	return s.resolveTurn(ctx, sess, message)
}

func (s *chatService) resumeDocList(sess *entity.Session, normalized string) (*turnReply, error) {
	names := sess.PendingDocList
	escape := len(names) + 1

	n, ok := parseMenuChoice(normalized, escape)
	if !ok {
		return &turnReply{
			Text: fmt.Sprintf("Por favor responde con un número entre 1 y %d.", escape),
		}, nil
	}

	sess.PendingDocList = nil
	sess.PendingDocType = ""

	if n == escape {
		return &turnReply{Text: "Entiendo, tu documento no estaba en la lista. Escríbeme su nombre tal como aparece en tu comprobante y lo busco."}, nil
	}

	doc, ok := s.documents.GetByName(names[n-1])
	if !ok {
		return &turnReply{Text: "Perdón, ya no encuentro ese documento. ¿Puedes darme el nombre exacto?"}, nil
	}

	return s.composeDocumentAnswer(sess, doc, ""), nil
}
