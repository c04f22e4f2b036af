package checkout

import "errors"

var (
	// Préconditions — aucune de ces erreurs ne déclenche d'appel réseau.
	ErrEmptyCart       = errors.New("panier vide")
	ErrNoAddress       = errors.New("aucune adresse sélectionnée")
	ErrNoPaymentMethod = errors.New("aucune méthode de paiement sélectionnée")

	// ErrCheckoutInFlight : un checkout est déjà en cours pour cette
	// session ; la nouvelle soumission est rejetée, pas mise en file.
	ErrCheckoutInFlight = errors.New("un paiement est déjà en cours")

	// ErrPaymentDeclined : la passerelle a répondu, mais avec un statut
	// autre que « succeeded ».
	ErrPaymentDeclined = errors.New("paiement refusé")

	// ErrConfirmFailed : l'appel de confirmation lui-même a échoué
	// (transport), distinct d'un refus rapporté par la passerelle.
	ErrConfirmFailed = errors.New("confirmation du paiement échouée")
)
