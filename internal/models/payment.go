package models

// PaymentIntent reflète la réponse de /api/payments/create-payment-intent.
// Le clientSecret n'est jamais persisté au-delà du checkout en cours.
type PaymentIntent struct {
	ID           string `json:"paymentIntentID"`
	ClientSecret string `json:"clientSecret"`
	CustomerID   string `json:"customerId,omitempty"`
	Amount       int64  `json:"amount,omitempty"`
	OrderID      string `json:"order_id,omitempty"`
}
