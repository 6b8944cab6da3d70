package dto

// CrearClienteRequest — the RUT is accepted with or without punctuation;
// the service normalizes and checksum-validates it before storage.
type CrearClienteRequest struct {
	RUT       string  `json:"rut"       validate:"required,max=12"`
	Nombre    string  `json:"nombre"    validate:"required,max=100"`
	Apellido  string  `json:"apellido"  validate:"required,max=100"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=15"`
	Direccion *string `json:"direccion" validate:"omitempty,max=200"`
	Ciudad    *string `json:"ciudad"    validate:"omitempty,max=100"`
}

// ActualizarClienteRequest — the RUT is the natural key and cannot change.
type ActualizarClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,max=100"`
	Apellido  string  `json:"apellido"  validate:"required,max=100"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=15"`
	Direccion *string `json:"direccion" validate:"omitempty,max=200"`
	Ciudad    *string `json:"ciudad"    validate:"omitempty,max=100"`
}

type ClienteResponse struct {
	RUT       string  `json:"rut"`
	Nombre    string  `json:"nombre"`
	Apellido  string  `json:"apellido"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
	Ciudad    *string `json:"ciudad"`
	CreatedAt string  `json:"created_at"`
}

// ClienteFilter is bound from the query string of GET /v1/clientes.
type ClienteFilter struct {
	Q     string `form:"q"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
