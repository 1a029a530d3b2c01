package entity

// AppointmentSlot mirrors a bookable slot in the scheduler. A slot with
// occupied=false and confirmed=false is reservable; reservation marks it
// occupied, confirmation marks it confirmed, cancellation resets both and
// clears citizen fields.
type AppointmentSlot struct {
	ID                string `json:"id"`
	Date              string `json:"fecha"`
	StartTime         string `json:"hora_inicio"`
	EndTime           string `json:"hora_fin"`
	AssignedStaffCode string `json:"codigo_funcionario"`
	Occupied          bool   `json:"ocupado"`
	Confirmed         bool   `json:"confirmado"`
	CitizenName       string `json:"nombre_ciudadano,omitempty"`
	CitizenRut        string `json:"rut_ciudadano,omitempty"`
	CitizenMail       string `json:"mail_ciudadano,omitempty"`
	Reason            string `json:"motivo,omitempty"`
}

func (s *AppointmentSlot) Reservable() bool {
	return !s.Occupied && !s.Confirmed
}

// AppointmentDraft collects the appointment fields one turn at a time.
type AppointmentDraft struct {
	Nombre      string            `json:"nombre,omitempty"`
	Rut         string            `json:"rut,omitempty"`
	Motivo      string            `json:"motivo,omitempty"`
	SlotID      string            `json:"slot_id,omitempty"`
	Mail        string            `json:"mail,omitempty"`
	SlotOptions []AppointmentSlot `json:"slot_options,omitempty"`
}
