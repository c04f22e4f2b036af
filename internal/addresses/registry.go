package addresses

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"cedra_storefront/internal/api"
	"cedra_storefront/internal/models"
)

// ErrAlreadyInitialized : Initialize a déjà été appelé pour cette session.
var ErrAlreadyInitialized = errors.New("registre d'adresses déjà initialisé")

// Registry est le miroir local des adresses de livraison de
// l'utilisateur. La copie de référence vit côté serveur ; le cache
// n'est modifié qu'après acquittement du serveur (pas d'écriture
// optimiste).
type Registry struct {
	mu          sync.Mutex
	api         *api.Client
	addresses   []models.Address
	initialized bool
}

func NewRegistry(client *api.Client) *Registry {
	return &Registry{api: client}
}

// Initialize charge les adresses de l'utilisateur courant. À appeler
// une seule fois, à l'ouverture de session. En cas d'échec le cache
// reste vide et un nouvel appel est permis.
func (r *Registry) Initialize(ctx context.Context) error {
	r.mu.Lock()
	if r.initialized {
		r.mu.Unlock()
		return ErrAlreadyInitialized
	}
	r.mu.Unlock()

	var fetched []models.Address
	if err := r.api.Get(ctx, "/api/addresses", &fetched); err != nil {
		log.Printf("❌ Chargement des adresses échoué: %v", err)
		return fmt.Errorf("chargement des adresses: %w", err)
	}

	r.mu.Lock()
	r.addresses = fetched
	r.initialized = true
	r.mu.Unlock()

	log.Printf("✅ %d adresses chargées", len(fetched))
	return nil
}

// List retourne un instantané du cache.
func (r *Registry) List() []models.Address {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Address, len(r.addresses))
	copy(out, r.addresses)
	return out
}

// Add envoie l'adresse complète au serveur puis ajoute au cache la
// version canonique retournée (avec l'identifiant serveur). Deux Add
// concurrents aboutissent chacun à un ajout : pas de dé-duplication.
func (r *Registry) Add(ctx context.Context, input models.AddressInput) (models.Address, error) {
	var created models.Address
	if err := r.api.Post(ctx, "/api/addresses", input, &created); err != nil {
		log.Printf("❌ Ajout d'adresse échoué: %v", err)
		return models.Address{}, fmt.Errorf("ajout d'adresse: %w", err)
	}

	r.mu.Lock()
	r.addresses = append(r.addresses, created)
	r.mu.Unlock()

	log.Printf("✅ Adresse ajoutée: %s", created.ID)
	return created, nil
}

// Update remplace intégralement les champs de l'adresse id.
func (r *Registry) Update(ctx context.Context, id string, input models.AddressInput) (models.Address, error) {
	var updated models.Address
	if err := r.api.Put(ctx, "/api/addresses/"+id, input, &updated); err != nil {
		log.Printf("❌ Mise à jour d'adresse échouée (%s): %v", id, err)
		return models.Address{}, fmt.Errorf("mise à jour d'adresse: %w", err)
	}

	r.mu.Lock()
	for i := range r.addresses {
		if r.addresses[i].ID == id {
			r.addresses[i] = updated
			break
		}
	}
	r.mu.Unlock()

	log.Printf("✅ Adresse mise à jour: %s", id)
	return updated, nil
}

// Delete supprime côté serveur puis, seulement après acquittement,
// retire l'entrée du cache : un refus serveur laisse le cache intact.
func (r *Registry) Delete(ctx context.Context, id string) error {
	if err := r.api.Delete(ctx, "/api/addresses/"+id); err != nil {
		log.Printf("❌ Suppression d'adresse échouée (%s): %v", id, err)
		return fmt.Errorf("suppression d'adresse: %w", err)
	}

	r.mu.Lock()
	for i := range r.addresses {
		if r.addresses[i].ID == id {
			r.addresses = append(r.addresses[:i], r.addresses[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	log.Printf("✅ Adresse supprimée: %s", id)
	return nil
}

// Clear vide le cache local (fermeture de session).
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addresses = nil
	r.initialized = false
}
