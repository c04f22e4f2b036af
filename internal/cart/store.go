package cart

import (
	"sync"

	"cedra_storefront/internal/models"
)

// Store est le panier de la session : une liste de lignes en mémoire,
// une ligne au plus par produit, ordre d'insertion conservé pour
// l'affichage. Aucune persistance, aucun I/O, toutes les opérations
// sont totales.
type Store struct {
	mu    sync.Mutex
	lines []models.CartLine
}

func NewStore() *Store {
	return &Store{}
}

// Add fusionne avec la ligne existante du produit (les quantités
// s'additionnent) ou ajoute une nouvelle ligne en fin de panier.
// L'UI garantit quantity ≥ 1 avant l'appel.
func (s *Store) Add(product models.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == product.ID {
			s.lines[i].Quantity += quantity
			return
		}
	}
	s.lines = append(s.lines, models.CartLine{Product: product, Quantity: quantity})
}

// Remove supprime la ligne du produit. Produit absent : no-op.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

func (s *Store) removeLocked(productID string) {
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity remplace la quantité d'une ligne existante.
// Une quantité ≤ 0 supprime la ligne : on ne garde jamais de ligne
// morte dans le panier.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		return
	}
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

// TotalPrice calcule le montant total du panier (Σ prix × quantité).
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

// Lines retourne une copie des lignes, dans l'ordre d'insertion.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// Clear vide le panier. Seul le checkout réussi (et la fermeture de
// session) doit l'appeler.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}
