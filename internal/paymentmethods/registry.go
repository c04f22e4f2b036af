package paymentmethods

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"cedra_storefront/internal/api"
	"cedra_storefront/internal/auth"
	"cedra_storefront/internal/gateway"
	"cedra_storefront/internal/models"
)

// ErrAlreadyInitialized : Initialize a déjà été appelé pour cette session.
var ErrAlreadyInitialized = errors.New("registre de méthodes de paiement déjà initialisé")

// Registry est le miroir local des méthodes de paiement enregistrées.
// Invariant : le cache ne contient que des références tokenisées —
// jamais de numéro de carte ni de CVC.
type Registry struct {
	mu          sync.Mutex
	api         *api.Client
	gateway     gateway.Gateway
	methods     []models.PaymentMethod
	initialized bool
}

func NewRegistry(client *api.Client, gw gateway.Gateway) *Registry {
	return &Registry{api: client, gateway: gw}
}

// Initialize charge les méthodes enregistrées. Un 401 remonte
// auth.ErrUnauthenticated (distinct d'une panne réseau) pour que
// l'appelant redirige vers la reconnexion plutôt que de proposer un
// nouvel essai.
func (r *Registry) Initialize(ctx context.Context) error {
	r.mu.Lock()
	if r.initialized {
		r.mu.Unlock()
		return ErrAlreadyInitialized
	}
	r.mu.Unlock()

	var fetched []models.PaymentMethod
	if err := r.api.Get(ctx, "/api/payment-methods", &fetched); err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			log.Println("🔐 Session expirée — reconnexion requise")
			return fmt.Errorf("chargement des méthodes de paiement: %w", err)
		}
		log.Printf("❌ Chargement des méthodes de paiement échoué: %v", err)
		return fmt.Errorf("chargement des méthodes de paiement: %w", err)
	}

	r.mu.Lock()
	r.methods = fetched
	r.initialized = true
	r.mu.Unlock()

	log.Printf("✅ %d méthodes de paiement chargées", len(fetched))
	return nil
}

// List retourne un instantané du cache.
func (r *Registry) List() []models.PaymentMethod {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.PaymentMethod, len(r.methods))
	copy(out, r.methods)
	return out
}

// TokenizeAndSave tokenise la saisie de carte auprès de la passerelle
// puis, si persist est vrai, enregistre la référence côté serveur et
// l'ajoute au cache. Avec persist faux, la référence n'est utilisable
// que pour le checkout en cours et n'entre jamais dans le cache.
// Un refus de la passerelle remonte gateway.ErrCardInvalid avec son
// message d'origine ; le cache n'est pas touché.
func (r *Registry) TokenizeAndSave(ctx context.Context, card gateway.CardDetails, persist bool) (models.PaymentMethod, error) {
	handle, err := r.gateway.Tokenize(ctx, card)
	if err != nil {
		return models.PaymentMethod{}, err
	}

	if !persist {
		return handle, nil
	}

	payload := struct {
		PaymentMethodID string `json:"paymentMethodId"`
	}{PaymentMethodID: handle.ID}

	var saved models.PaymentMethod
	if err := r.api.Post(ctx, "/api/payment-methods", payload, &saved); err != nil {
		log.Printf("❌ Enregistrement de la méthode de paiement échoué: %v", err)
		return models.PaymentMethod{}, fmt.Errorf("enregistrement de la méthode de paiement: %w", err)
	}
	if saved.ID == "" {
		saved = handle
	}

	r.mu.Lock()
	r.methods = append(r.methods, saved)
	r.mu.Unlock()

	log.Printf("✅ Méthode de paiement enregistrée: %s", saved.ID)
	return saved, nil
}

// Delete retire l'enregistrement côté serveur puis, après acquittement
// seulement, l'entrée du cache.
func (r *Registry) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, "/api/payment-methods/"+id); err != nil {
		log.Printf("❌ Suppression de la méthode de paiement échouée (%s): %v", id, err)
		return fmt.Errorf("suppression de la méthode de paiement: %w", err)
	}

	r.mu.Lock()
	for i := range r.methods {
		if r.methods[i].ID == id {
			r.methods = append(r.methods[:i], r.methods[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	log.Printf("✅ Méthode de paiement supprimée: %s", id)
	return nil
}

// Clear vide le cache local (fermeture de session).
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods = nil
	r.initialized = false
}
