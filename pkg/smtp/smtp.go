package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

type ItfSmtp interface {
	SendComplaintReceipt(userEmail string, name string, complaintID string) error
	SendAppointmentConfirmation(userEmail string, name string, date string, startTime string) error
	SendAppointmentCancellation(userEmail string, name string, date string, startTime string) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
	host string
	addr string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	auth := smtpPkg.PlainAuth("", mail, password, host)

	return &smtp{auth: auth, mail: mail, host: host, addr: host + ":587"}
}

func (s *smtp) SendComplaintReceipt(userEmail string, name string, complaintID string) error {
	to := []string{userEmail}

	message := []byte(fmt.Sprintf("To: %s\r\nSubject: Reclamo recibido\r\n\r\nEstimado/a %s, su reclamo fue ingresado correctamente con el identificador %s. Le contactaremos a este correo con novedades.",
		userEmail, name, complaintID))

	if err := smtpPkg.SendMail(s.addr, s.auth, s.mail, to, message); err != nil {
		return err
	}

	return nil
}

func (s *smtp) SendAppointmentConfirmation(userEmail string, name string, date string, startTime string) error {
	to := []string{userEmail}

	message := []byte(fmt.Sprintf("To: %s\r\nSubject: Hora confirmada\r\n\r\nEstimado/a %s, su hora de atención quedó confirmada para el %s a las %s. Si no puede asistir, responda a este correo para cancelar.",
		userEmail, name, date, startTime))

	if err := smtpPkg.SendMail(s.addr, s.auth, s.mail, to, message); err != nil {
		return err
	}

	return nil
}

func (s *smtp) SendAppointmentCancellation(userEmail string, name string, date string, startTime string) error {
	to := []string{userEmail}

	message := []byte(fmt.Sprintf("To: %s\r\nSubject: Hora cancelada\r\n\r\nEstimado/a %s, su hora de atención del %s a las %s fue cancelada. Puede agendar una nueva hora cuando lo necesite.",
		userEmail, name, date, startTime))

	if err := smtpPkg.SendMail(s.addr, s.auth, s.mail, to, message); err != nil {
		return err
	}

	return nil
}
