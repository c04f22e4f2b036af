package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cedra_storefront/internal/models"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentmethod"
)

// ErrCardInvalid : Stripe a refusé les détails de carte. Le message de
// la passerelle est conservé tel quel pour affichage à l'utilisateur.
var ErrCardInvalid = errors.New("carte invalide")

// CardDetails est la saisie brute de l'utilisateur. Elle ne quitte
// jamais ce package autrement que tokenisée : ni les registres ni les
// commandes ne voient le numéro ou le CVC.
type CardDetails struct {
	Number   string
	ExpMonth int64
	ExpYear  int64
	CVC      string
}

// Gateway est la capacité « tokeniser une carte » de la passerelle de
// paiement. La confirmation d'un paiement passe par le backend, pas par
// cette interface.
type Gateway interface {
	Tokenize(ctx context.Context, card CardDetails) (models.PaymentMethod, error)
}

// StripeGateway tokenise via l'API Stripe. Nécessite stripe.Key
// initialisée au démarrage de la session.
type StripeGateway struct{}

func (StripeGateway) Tokenize(ctx context.Context, card CardDetails) (models.PaymentMethod, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String("card"),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(card.ExpMonth),
			ExpYear:  stripe.Int64(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
	}
	params.Context = ctx

	pm, err := paymentmethod.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			log.Printf("❌ Erreur de Stripe: %v", stripeErr.Msg)
			return models.PaymentMethod{}, fmt.Errorf("%w: %s", ErrCardInvalid, stripeErr.Msg)
		}
		log.Printf("❌ Erreur Stripe: %v", err)
		return models.PaymentMethod{}, fmt.Errorf("%w: %v", ErrCardInvalid, err)
	}

	handle := models.PaymentMethod{ID: pm.ID}
	if pm.Card != nil {
		handle.Card = models.CardSummary{
			Brand:    string(pm.Card.Brand),
			Last4:    pm.Card.Last4,
			ExpMonth: pm.Card.ExpMonth,
			ExpYear:  pm.Card.ExpYear,
		}
	}

	log.Printf("💳 Carte tokenisée : %s (**** %s)", handle.ID, handle.Card.Last4)
	return handle, nil
}
