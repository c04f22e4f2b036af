package models

import "time"

// OrderItem est un instantané d'une ligne de panier copié au moment du
// checkout : un changement de prix ultérieur ne touche pas la commande.
type OrderItem struct {
	Name    string  `json:"name"`
	Qty     int     `json:"qty"`
	Image   string  `json:"image,omitempty"`
	Price   float64 `json:"price"`
	Product string  `json:"product"`
}

type Order struct {
	ID              string      `json:"_id,omitempty"`
	OrderItems      []OrderItem `json:"orderItems"`
	ShippingAddress Address     `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	ItemsPrice      float64     `json:"itemsPrice"`
	TaxPrice        float64     `json:"taxPrice"`
	ShippingPrice   float64     `json:"shippingPrice"`
	TotalPrice      float64     `json:"totalPrice"`
	IsPaid          bool        `json:"isPaid,omitempty"`
	PaidAt          *time.Time  `json:"paidAt,omitempty"`
	CreatedAt       *time.Time  `json:"createdAt,omitempty"`
}
