package models

// PaymentMethod est la référence opaque émise par Stripe après
// tokenisation. Ne contient jamais le numéro de carte ni le CVC —
// uniquement le résumé masqué.
type PaymentMethod struct {
	ID   string      `json:"id"`
	Card CardSummary `json:"card"`
}

// CardSummary reprend la forme Stripe du résumé de carte.
type CardSummary struct {
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int64  `json:"exp_month"`
	ExpYear  int64  `json:"exp_year"`
}
