package chatService

import (
	"MunBotGolang/internal/entity"
	"MunBotGolang/internal/fulfillment"
	"MunBotGolang/pkg/nlp"
	"MunBotGolang/pkg/rut"
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

const (
	fieldNombre       = "nombre"
	fieldRut          = "rut"
	fieldMensaje      = "mensaje"
	fieldDepartamento = "departamento"
	fieldMail         = "mail"
)

var departmentKeywords = map[int][]string{
	1: {"luminaria", "alumbrado", "poste", "luz", "foco"},
	2: {"basura", "aseo", "escombros", "microbasural", "retiro"},
	3: {"bache", "pavimento", "vereda", "calzada", "obras"},
	4: {"transito", "senaletica", "semaforo", "estacionamiento", "lomo de toro"},
	5: {"ruido", "contaminacion", "arbol", "plaga", "medio ambiente"},
	6: {"seguridad", "robo", "delincuencia", "vigilancia"},
	7: {"ayuda social", "subsidio", "beneficio", "asistencia"},
}

func (s *chatService) startComplaint(sess *entity.Session) *turnReply {
	sess.ClearSubFlows()
	sess.ActiveFlow = entity.FlowComplaint
	sess.ComplaintDraft = &entity.ComplaintDraft{}
	sess.PendingField = fieldNombre

	return &turnReply{
		Text: "Entiendo que quieres ingresar un reclamo. Te haré algunas preguntas. Primero, ¿cuál es tu nombre completo?",
	}
}

// advanceComplaint validates exactly one field per turn; invalid input
// re-prompts the same field and never advances.
func (s *chatService) advanceComplaint(ctx context.Context, sess *entity.Session, input string) (*turnReply, error) {
	draft := sess.ComplaintDraft
	if draft == nil {
		draft = &entity.ComplaintDraft{}
		sess.ComplaintDraft = draft
	}

	input = strings.TrimSpace(input)

	switch sess.PendingField {
	case fieldNombre:
		if len(strings.Fields(input)) < 2 {
			return &turnReply{Text: "Necesito tu nombre y apellido. ¿Cuál es tu nombre completo?"}, nil
		}
		draft.Nombre = input
		sess.PendingField = fieldRut
		return &turnReply{Text: "Gracias. Ahora indícame tu RUT (por ejemplo 12.345.678-5)."}, nil

	case fieldRut:
		formatted, err := rut.Format(input)
		if err != nil {
			return &turnReply{Text: "Ese RUT no es válido. Revisa el dígito verificador e inténtalo de nuevo (por ejemplo 12.345.678-5)."}, nil
		}
		draft.Rut = formatted
		sess.PendingField = fieldMensaje
		return &turnReply{Text: "Perfecto. Cuéntame en detalle cuál es tu reclamo."}, nil

	case fieldMensaje:
		if len(input) < 10 {
			return &turnReply{Text: "Necesito un poco más de detalle para ingresar el reclamo. ¿Puedes describir qué ocurrió?"}, nil
		}
		draft.Mensaje = input
		sess.PendingField = fieldDepartamento
		return &turnReply{Text: s.departmentPrompt(input)}, nil

	case fieldDepartamento:
		n, ok := parseMenuChoice(nlp.Normalize(input), entity.DepartmentMax)
		if !ok {
			return &turnReply{
				Text: fmt.Sprintf("Por favor responde con un número entre %d y %d.", entity.DepartmentMin, entity.DepartmentMax),
			}, nil
		}
		draft.Departamento = n
		sess.PendingField = fieldMail
		return &turnReply{Text: "Por último, ¿a qué correo electrónico te enviamos el comprobante?"}, nil

	case fieldMail:
		if err := validate.Var(input, "required,email"); err != nil {
			return &turnReply{Text: "Ese correo no parece válido. ¿Puedes escribirlo de nuevo?"}, nil
		}
		draft.Mail = input
		return s.submitComplaint(ctx, sess, draft)

	default:
		sess.ActiveFlow = entity.FlowNone
		sess.PendingField = ""
		return &turnReply{Text: msgReprompt}, nil
	}
}

func (s *chatService) departmentPrompt(message string) string {
	var sb strings.Builder
	sb.WriteString("¿A qué departamento corresponde tu reclamo?\n")
	for i := entity.DepartmentMin; i <= entity.DepartmentMax; i++ {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i, entity.DepartmentNames[i]))
	}

	suggestion := suggestDepartment(message)
	sb.WriteString(fmt.Sprintf("Por lo que describes, te sugiero la opción %d (%s). Responde con el número.",
		suggestion, entity.DepartmentNames[suggestion]))

	return sb.String()
}

// suggestDepartment offers a default department from the complaint text.
// Departments are scanned in numeric order so ties resolve deterministically.
func suggestDepartment(message string) int {
	normalized := nlp.Normalize(message)
	for dept := entity.DepartmentMin; dept <= entity.DepartmentMax; dept++ {
		for _, kw := range departmentKeywords[dept] {
			if strings.Contains(normalized, kw) {
				return dept
			}
		}
	}
	return entity.DepartmentMax
}

// submitComplaint calls the complaint collaborator synchronously. A remote
// failure preserves the flow so the citizen only has to resend the last field.
func (s *chatService) submitComplaint(ctx context.Context, sess *entity.Session, draft *entity.ComplaintDraft) (*turnReply, error) {
	complaintID, err := s.complaints.Register(ctx, fulfillment.ComplaintRequest{
		Name:       draft.Nombre,
		IDNumber:   draft.Rut,
		Message:    draft.Mensaje,
		Department: draft.Departamento,
		Email:      draft.Mail,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": sess.ID,
			"error":      err.Error(),
		}).Error("Complaint collaborator failed")
		return &turnReply{
			Text: "No pude ingresar tu reclamo en este momento. Tus datos quedaron guardados; por favor vuelve a enviar tu correo en unos minutos para reintentar.",
		}, nil
	}

	go func(email, name, id string) {
		if err := s.mailer.SendComplaintReceipt(email, name, id); err != nil {
			s.log.WithFields(logrus.Fields{
				"complaint_id": id,
				"error":        err.Error(),
			}).Warn("Failed to send complaint receipt email")
		}
	}(draft.Mail, draft.Nombre, complaintID)

	sess.ActiveFlow = entity.FlowNone
	sess.PendingField = ""
	sess.ComplaintDraft = nil
	sess.FallbackCount = 0

	return &turnReply{
		Text: fmt.Sprintf("¡Listo! Tu reclamo quedó ingresado con el número **%s**. Te enviamos un comprobante a %s. ¿Necesitas algo más?",
			complaintID, draft.Mail),
	}, nil
}
