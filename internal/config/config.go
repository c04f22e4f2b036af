package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultDeliveryFee est le forfait de livraison appliqué à chaque
// commande, en euros.
const DefaultDeliveryFee = 5.99

type Config struct {
	APIURL      string
	StripeKey   string
	DeliveryFee float64
}

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// FromEnv lit la configuration depuis l'environnement (après Load).
func FromEnv() Config {
	cfg := Config{
		APIURL:      os.Getenv("API_URL"),
		StripeKey:   os.Getenv("STRIPE_SECRET_KEY"),
		DeliveryFee: DefaultDeliveryFee,
	}

	if v := os.Getenv("DELIVERY_FEE"); v != "" {
		fee, err := strconv.ParseFloat(v, 64)
		if err != nil || fee < 0 {
			log.Printf("⚠️ DELIVERY_FEE invalide (%q) — forfait %.2f€ conservé", v, DefaultDeliveryFee)
		} else {
			cfg.DeliveryFee = fee
		}
	}

	return cfg
}
