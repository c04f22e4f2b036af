package models

type Product struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Price  float64  `json:"price"`
	Image  string   `json:"image,omitempty"`
	Images []string `json:"images,omitempty"`
}

// MainImage retourne l'image principale du produit (champ image,
// sinon la première de la galerie).
func (p Product) MainImage() string {
	if p.Image != "" {
		return p.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
