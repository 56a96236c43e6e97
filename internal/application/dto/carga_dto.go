package dto

// CargaFailure fila rechazada de una carga masiva.
type CargaFailure struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// CargaMessage mensaje para el usuario (level: success, warning, error).
type CargaMessage struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// CargaResponse resultado de una carga masiva.
type CargaResponse struct {
	Tipo     string         `json:"tipo"`
	Archivo  string         `json:"archivo"`
	Created  int            `json:"created"`
	Updated  int            `json:"updated"`
	Failed   []CargaFailure `json:"failed"`
	Messages []CargaMessage `json:"messages"`
}
