package payment

// CreateOrderRequest тело запроса создания заказа
type CreateOrderRequest struct {
	Amount   int64             `json:"amount"` // в минимальных единицах валюты
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// Order заказ платёжного шлюза
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// ErrorResponse модель ошибки шлюза
type ErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}
