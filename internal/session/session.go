package session

import (
	"context"
	"fmt"
	"log"

	"cedra_storefront/internal/addresses"
	"cedra_storefront/internal/api"
	"cedra_storefront/internal/auth"
	"cedra_storefront/internal/cart"
	"cedra_storefront/internal/checkout"
	"cedra_storefront/internal/config"
	"cedra_storefront/internal/gateway"
	"cedra_storefront/internal/models"
	"cedra_storefront/internal/paymentmethods"
)

// Session regroupe l'état commerce d'un utilisateur connecté : panier,
// registres d'adresses et de méthodes de paiement, orchestrateur de
// checkout. Créée à la connexion, détruite à la déconnexion — aucun
// état global de package.
type Session struct {
	Cart           *cart.Store
	Addresses      *addresses.Registry
	PaymentMethods *paymentmethods.Registry
	Checkout       *checkout.Orchestrator

	api *api.Client
}

// New câble une session sur l'API backend et la passerelle fournies.
func New(cfg config.Config, tokens auth.TokenSource, gw gateway.Gateway) *Session {
	client := api.NewClient(cfg.APIURL, tokens)
	store := cart.NewStore()

	return &Session{
		Cart:           store,
		Addresses:      addresses.NewRegistry(client),
		PaymentMethods: paymentmethods.NewRegistry(client, gw),
		Checkout:       checkout.NewOrchestrator(store, client, cfg.DeliveryFee),
		api:            client,
	}
}

// Initialize charge les deux registres. Les échecs sont remontés mais
// laissent les caches intacts ; l'appelant décide quoi réessayer.
func (s *Session) Initialize(ctx context.Context) error {
	if err := s.Addresses.Initialize(ctx); err != nil {
		return fmt.Errorf("initialisation session: %w", err)
	}
	if err := s.PaymentMethods.Initialize(ctx); err != nil {
		return fmt.Errorf("initialisation session: %w", err)
	}
	return nil
}

// Products récupère le catalogue. Les produits sont des valeurs
// immuables côté client.
func (s *Session) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.api.Get(ctx, "/api/products", &products); err != nil {
		return nil, fmt.Errorf("chargement du catalogue: %w", err)
	}
	return products, nil
}

// Close vide panier et caches. À appeler à la déconnexion.
func (s *Session) Close() {
	s.Cart.Clear()
	s.Addresses.Clear()
	s.PaymentMethods.Clear()
	log.Println("👋 Session fermée")
}
