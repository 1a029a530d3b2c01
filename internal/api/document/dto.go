package document

type CreateDocumentRequest struct {
	Nombre        string   `json:"nombre" validate:"required,min=3,max=120"`
	Tipo          string   `json:"tipo" validate:"required,oneof=certificado permiso patente licencia"`
	Alias         []string `json:"alias"`
	Requisitos    []string `json:"requisitos"`
	DondeObtener  string   `json:"donde_obtener"`
	Horario       string   `json:"horario"`
	Correo        string   `json:"correo" validate:"omitempty,email"`
	Telefono      string   `json:"telefono"`
	Direccion     string   `json:"direccion"`
	TiempoValidez string   `json:"tiempo_validez"`
	Costo         string   `json:"costo"`
	Utilidad      string   `json:"utilidad"`
	Penalidad     string   `json:"penalidad"`
	Notas         string   `json:"notas"`
}

type AddFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type DocumentListResponse struct {
	Documents []DocumentSummary `json:"documents"`
	Total     int               `json:"total"`
}

type DocumentSummary struct {
	Nombre string `json:"nombre"`
	Tipo   string `json:"tipo"`
}
