package dto

// Envelope — единый формат ответа API. Успех и ошибка различаются полем
// Success; StatusCode дублирует HTTP-статус в теле, чтобы клиенты за
// прокси, переписывающими статусы, видели исходный код.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	StatusCode int         `json:"status_code"`
}

// OK создает успешный конверт с данными
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data, StatusCode: 200}
}

// OKMessage создает успешный конверт с сообщением без данных
func OKMessage(message string) Envelope {
	return Envelope{Success: true, Message: message, StatusCode: 200}
}

// Fail создает конверт ошибки с указанным статусом
func Fail(statusCode int, message string) Envelope {
	return Envelope{Success: false, Message: message, StatusCode: statusCode}
}
