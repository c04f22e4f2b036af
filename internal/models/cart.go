package models

// CartLine associe un produit à la quantité demandée dans le panier.
// Invariant : une seule ligne par produit.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
