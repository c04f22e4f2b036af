// Outil de bout en bout : déroule un parcours d'achat complet
// (catalogue → panier → adresse → carte → checkout) contre un backend
// Cedra réel. Pensé pour la pré-production : il paie réellement si la
// clé Stripe est une clé live.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"cedra_storefront/internal/auth"
	"cedra_storefront/internal/config"
	"cedra_storefront/internal/gateway"
	"cedra_storefront/internal/models"
	"cedra_storefront/internal/session"

	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()
	cfg := config.FromEnv()

	if cfg.APIURL == "" {
		log.Fatal("❌ API_URL manquant dans .env")
	}

	stripe.Key = cfg.StripeKey
	if stripe.Key == "" {
		log.Fatal("❌ Impossible d'initialiser Stripe : clé manquante")
	}
	log.Println("✅ Stripe initialisé")

	userToken := os.Getenv("USER_TOKEN")
	if userToken == "" {
		log.Fatal("❌ USER_TOKEN manquant — connectez-vous et exportez le jeton")
	}

	tokens := auth.JWTTokenSource{Source: auth.StaticTokenSource(userToken)}
	sess := session.New(cfg, tokens, gateway.StripeGateway{})
	defer sess.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := sess.Initialize(ctx); err != nil {
		log.Fatalf("❌ Initialisation impossible : %v", err)
	}

	products, err := sess.Products(ctx)
	if err != nil {
		log.Fatalf("❌ Catalogue indisponible : %v", err)
	}
	if len(products) == 0 {
		log.Fatal("❌ Catalogue vide — rien à acheter")
	}
	log.Printf("🛍️ %d produits au catalogue", len(products))

	sess.Cart.Add(products[0], 2)
	if len(products) > 1 {
		sess.Cart.Add(products[1], 1)
	}
	log.Printf("🛒 Panier : %.2f€", sess.Cart.TotalPrice())

	address := pickAddress(ctx, sess)
	method := pickPaymentMethod(ctx, sess)

	result, err := sess.Checkout.Run(ctx, address, &method)
	if err != nil {
		if result.OrderUnpaid() {
			log.Fatalf("⚠️ Commande %s créée mais NON payée (%s) : %v", result.Order.ID, result.State, err)
		}
		log.Fatalf("❌ Checkout échoué (%s) : %v", result.State, err)
	}

	log.Printf("✅ Commande %s payée — total %.2f€", result.Order.ID, result.Order.TotalPrice)
}

func pickAddress(ctx context.Context, sess *session.Session) models.Address {
	if existing := sess.Addresses.List(); len(existing) > 0 {
		return existing[0]
	}

	created, err := sess.Addresses.Add(ctx, models.AddressInput{
		Address:    "12 rue de la Paix",
		City:       "Bruxelles",
		PostalCode: "1000",
		Country:    "Belgique",
	})
	if err != nil {
		log.Fatalf("❌ Création d'adresse impossible : %v", err)
	}
	return created
}

func pickPaymentMethod(ctx context.Context, sess *session.Session) models.PaymentMethod {
	if existing := sess.PaymentMethods.List(); len(existing) > 0 {
		return existing[0]
	}

	// Carte de test Stripe — utilisable uniquement pour ce checkout,
	// jamais mise en cache (persist=false).
	method, err := sess.PaymentMethods.TokenizeAndSave(ctx, gateway.CardDetails{
		Number:   "4242424242424242",
		ExpMonth: 12,
		ExpYear:  int64(time.Now().Year() + 2),
		CVC:      "314",
	}, false)
	if err != nil {
		log.Fatalf("❌ Tokenisation impossible : %v", err)
	}
	return method
}
