package checkout

// State suit la progression d'un checkout. Les trois appels réseau
// sont strictement séquentiels : la création de l'intent n'attend que
// la commande, la confirmation n'attend que l'intent.
type State string

const (
	StateIdle             State = "IDLE"
	StateOrderCreating    State = "ORDER_CREATING"
	StateOrderCreated     State = "ORDER_CREATED"
	StateIntentCreating   State = "PAYMENT_INTENT_CREATING"
	StateIntentCreated    State = "PAYMENT_INTENT_CREATED"
	StateConfirming       State = "PAYMENT_CONFIRMING"
	StatePaymentSucceeded State = "PAYMENT_SUCCEEDED"
	StatePaymentFailed    State = "PAYMENT_FAILED"
)

func (s State) IsTerminal() bool {
	return s == StatePaymentSucceeded || s == StatePaymentFailed
}

func (s State) String() string {
	return string(s)
}
