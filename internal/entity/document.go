package entity

// Document describes an official document or procedure. Any attribute may be
// empty; absence is reported to the citizen, never fabricated.
type Document struct {
	Name          string   `db:"nombre" json:"nombre"`
	Type          string   `db:"tipo" json:"tipo"`
	Aliases       []string `db:"-" json:"alias"`
	Requisitos    []string `db:"-" json:"requisitos"`
	DondeObtener  string   `db:"donde_obtener" json:"donde_obtener"`
	Horario       string   `db:"horario" json:"horario"`
	Correo        string   `db:"correo" json:"correo"`
	Telefono      string   `db:"telefono" json:"telefono"`
	Direccion     string   `db:"direccion" json:"direccion"`
	TiempoValidez string   `db:"tiempo_validez" json:"tiempo_validez"`
	Costo         string   `db:"costo" json:"costo"`
	Utilidad      string   `db:"utilidad" json:"utilidad"`
	Penalidad     string   `db:"penalidad" json:"penalidad"`
	Notas         string   `db:"notas" json:"notas"`
}

// Attribute returns the value stored under an attribute key, with ok=false
// when the record does not carry it.
func (d *Document) Attribute(key string) (string, bool) {
	switch key {
	case "requisitos":
		if len(d.Requisitos) == 0 {
			return "", false
		}
		joined := ""
		for i, r := range d.Requisitos {
			if i > 0 {
				joined += "; "
			}
			joined += r
		}
		return joined, true
	case "donde_obtener":
		return d.DondeObtener, d.DondeObtener != ""
	case "horario":
		return d.Horario, d.Horario != ""
	case "correo":
		return d.Correo, d.Correo != ""
	case "telefono":
		return d.Telefono, d.Telefono != ""
	case "direccion":
		return d.Direccion, d.Direccion != ""
	case "tiempo_validez":
		return d.TiempoValidez, d.TiempoValidez != ""
	case "costo":
		return d.Costo, d.Costo != ""
	case "utilidad":
		return d.Utilidad, d.Utilidad != ""
	case "penalidad":
		return d.Penalidad, d.Penalidad != ""
	case "notas":
		return d.Notas, d.Notas != ""
	default:
		return "", false
	}
}
