package checkout

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync/atomic"

	"cedra_storefront/internal/api"
	"cedra_storefront/internal/cart"
	"cedra_storefront/internal/models"

	"github.com/google/uuid"
)

// Messages affichés à l'utilisateur selon l'étape qui a échoué.
const (
	msgOrderFailed     = "La commande a échoué. Veuillez réessayer."
	msgIntentFailed    = "La commande est enregistrée mais le paiement n'a pas pu être initié. Veuillez réessayer."
	msgPaymentDeclined = "Le paiement a échoué. Veuillez réessayer."
	msgConfirmFailed   = "La confirmation du paiement a échoué. Veuillez réessayer."
	msgNoPaymentMethod = "Veuillez sélectionner une méthode de paiement."
)

// Orchestrator enchaîne les trois appels du checkout : création de la
// commande, création du payment intent, confirmation du paiement. Un
// seul run à la fois par session ; le panier n'est vidé que sur succès.
type Orchestrator struct {
	cart        *cart.Store
	api         *api.Client
	deliveryFee float64
	inFlight    atomic.Bool
}

func NewOrchestrator(store *cart.Store, client *api.Client, deliveryFee float64) *Orchestrator {
	return &Orchestrator{cart: store, api: client, deliveryFee: deliveryFee}
}

// Result est l'issue d'un run : l'état atteint, la commande si elle
// existe (payée ou non), le statut brut de confirmation et le message
// destiné à l'utilisateur.
type Result struct {
	State         State
	Order         *models.Order
	Intent        *models.PaymentIntent
	ConfirmStatus string
	Message       string
}

// OrderUnpaid indique la panne partielle connue : une commande existe
// côté serveur mais n'a pas été payée. À réconcilier par l'utilisateur
// (nouvel essai ou abandon) — aucun rollback automatique.
func (r Result) OrderUnpaid() bool {
	return r.Order != nil && r.State != StatePaymentSucceeded
}

type confirmResponse struct {
	PaymentIntent struct {
		Status string `json:"status"`
	} `json:"paymentIntent"`
}

// Run exécute un checkout complet pour l'adresse et la méthode de
// paiement sélectionnées. Les préconditions (panier non vide, adresse,
// méthode choisie) sont vérifiées avant tout appel réseau ; un run déjà
// en vol rejette immédiatement le nouveau avec ErrCheckoutInFlight.
func (o *Orchestrator) Run(ctx context.Context, address models.Address, method *models.PaymentMethod) (Result, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return Result{State: StateIdle, Message: "Un paiement est déjà en cours."}, ErrCheckoutInFlight
	}
	defer o.inFlight.Store(false)

	if method == nil || method.ID == "" {
		return Result{State: StateIdle, Message: msgNoPaymentMethod}, ErrNoPaymentMethod
	}
	if address.Address == "" && address.ID == "" {
		return Result{State: StateIdle, Message: "Veuillez sélectionner une adresse de livraison."}, ErrNoAddress
	}

	lines := o.cart.Lines()
	if len(lines) == 0 {
		return Result{State: StateIdle, Message: "Votre panier est vide."}, ErrEmptyCart
	}

	runID := uuid.NewString()
	log.Printf("🛒 Checkout %s démarré (%d lignes)", runID, len(lines))

	// --- Transition 1 : création de la commande ---
	// Instantané des lignes au moment du checkout : les prix de la
	// commande sont figés, découplés du catalogue.
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			Name:    line.Product.Name,
			Qty:     line.Quantity,
			Image:   line.Product.MainImage(),
			Price:   line.Product.Price,
			Product: line.Product.ID,
		})
	}

	itemsPrice := o.cart.TotalPrice()
	totalPrice := itemsPrice + o.deliveryFee

	payload := models.Order{
		OrderItems:      items,
		ShippingAddress: address,
		PaymentMethod:   "Stripe",
		ItemsPrice:      itemsPrice,
		TaxPrice:        0,
		ShippingPrice:   o.deliveryFee,
		TotalPrice:      totalPrice,
	}

	var order models.Order
	if err := o.api.PostIdempotent(ctx, "/api/orders", runID, payload, &order); err != nil {
		// Rien n'a été créé côté serveur : retour à l'état initial,
		// nouvel essai sans risque.
		log.Printf("❌ Checkout %s: création de commande échouée: %v", runID, err)
		return Result{State: StateIdle, Message: msgOrderFailed},
			fmt.Errorf("création de commande: %w", err)
	}
	log.Printf("📦 Checkout %s: commande %s créée (%.2f€)", runID, order.ID, totalPrice)

	// --- Transition 2 : création du payment intent ---
	intentReq := struct {
		OrderID string `json:"order_id"`
		Amount  int64  `json:"amount"`
	}{
		OrderID: order.ID,
		Amount:  int64(math.Round(totalPrice * 100)),
	}

	var intent models.PaymentIntent
	if err := o.api.Post(ctx, "/api/payments/create-payment-intent", intentReq, &intent); err != nil {
		// Panne partielle : la commande existe déjà, non payée. Pas de
		// rollback — on la signale pour réconciliation.
		log.Printf("⚠️ Checkout %s: commande %s non payée — création de l'intent échouée: %v", runID, order.ID, err)
		return Result{State: StateOrderCreated, Order: &order, Message: msgIntentFailed},
			fmt.Errorf("création du payment intent: %w", err)
	}
	log.Printf("💳 Checkout %s: intent %s créé (%d centimes)", runID, intent.ID, intentReq.Amount)

	// --- Transition 3 : confirmation ---
	confirmReq := struct {
		PaymentIntentID string `json:"paymentIntentId"`
		PaymentMethodID string `json:"paymentMethodId"`
	}{
		PaymentIntentID: intent.ID,
		PaymentMethodID: method.ID,
	}

	var confirm confirmResponse
	if err := o.api.Post(ctx, "/api/payments/confirm-payment", confirmReq, &confirm); err != nil {
		// Échec de l'appel lui-même — à distinguer dans les logs d'un
		// refus rapporté par la passerelle.
		log.Printf("⚠️ Checkout %s: commande %s non payée — appel de confirmation échoué: %v", runID, order.ID, err)
		return Result{State: StatePaymentFailed, Order: &order, Intent: &intent, Message: msgConfirmFailed},
			fmt.Errorf("%w: %v", ErrConfirmFailed, err)
	}

	status := confirm.PaymentIntent.Status
	if status != "succeeded" {
		log.Printf("⚠️ Checkout %s: commande %s non payée — statut passerelle %q", runID, order.ID, status)
		return Result{State: StatePaymentFailed, Order: &order, Intent: &intent, ConfirmStatus: status, Message: msgPaymentDeclined},
			fmt.Errorf("%w: statut %q", ErrPaymentDeclined, status)
	}

	// Succès : seul endroit du client où le panier est vidé.
	o.cart.Clear()
	log.Printf("✅ Checkout %s: commande %s payée (%.2f€)", runID, order.ID, totalPrice)

	return Result{
		State:         StatePaymentSucceeded,
		Order:         &order,
		Intent:        &intent,
		ConfirmStatus: status,
		Message:       "Paiement réussi.",
	}, nil
}
