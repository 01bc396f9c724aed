package paymentprovider

// ChargeRequest — параметры списания при оформлении подписки.
type ChargeRequest struct {
	AccountID   string  `json:"account_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// ChargeResponse — результат списания.
type ChargeResponse struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Paid      bool   `json:"paid"`
}

// StatusSucceeded — единственный статус, который возвращает
// демонстрационный провайдер.
const StatusSucceeded = "succeeded"
