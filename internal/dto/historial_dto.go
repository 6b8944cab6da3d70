package dto

type HistorialEntryResponse struct {
	ID              int    `json:"id"`
	VehiculoPatente string `json:"vehiculo_patente"`
	Descripcion     string `json:"descripcion"`
	CreatedAt       string `json:"created_at"`
}
