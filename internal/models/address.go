package models

type Address struct {
	ID         string `json:"_id,omitempty"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// AddressInput est le payload envoyé à l'API (l'identifiant est
// attribué côté serveur).
type AddressInput struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}
