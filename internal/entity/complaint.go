package entity

// ComplaintDraft collects the complaint fields one turn at a time. Submittable
// only once every field passed validation.
type ComplaintDraft struct {
	Nombre       string `json:"nombre,omitempty"`
	Rut          string `json:"rut,omitempty"`
	Mensaje      string `json:"mensaje,omitempty"`
	Departamento int    `json:"departamento,omitempty"`
	Mail         string `json:"mail,omitempty"`
}

const (
	DepartmentMin = 1
	DepartmentMax = 8
)

var DepartmentNames = map[int]string{
	1: "Alumbrado Público",
	2: "Aseo y Ornato",
	3: "Obras Municipales",
	4: "Tránsito",
	5: "Medio Ambiente",
	6: "Seguridad Ciudadana",
	7: "Desarrollo Social",
	8: "Otros",
}
