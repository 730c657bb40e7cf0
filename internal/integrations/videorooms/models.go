package videorooms

// Room модель видеокомнаты у провайдера
type Room struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// createRoomRequest тело запроса на создание комнаты
type createRoomRequest struct {
	Name       string               `json:"name"`
	Properties createRoomProperties `json:"properties"`
}

// createRoomProperties настройки комнаты
type createRoomProperties struct {
	Exp             int64 `json:"exp"`               // unix-время истечения комнаты
	MaxParticipants int   `json:"max_participants"`
	EjectAtRoomExp  bool  `json:"eject_at_room_exp"`
}

// createTokenRequest тело запроса на выпуск join-токена
type createTokenRequest struct {
	Properties createTokenProperties `json:"properties"`
}

// createTokenProperties настройки токена
type createTokenProperties struct {
	RoomName string `json:"room_name"`
	UserName string `json:"user_name"`
	IsOwner  bool   `json:"is_owner"`
	Exp      int64  `json:"exp"` // unix-время истечения токена
}

// createTokenResponse ответ с выпущенным токеном
type createTokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse модель ошибки провайдера
type ErrorResponse struct {
	Error string `json:"error"`
	Info  string `json:"info"`
}
