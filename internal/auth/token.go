package auth

import (
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated : aucun jeton utilisable. Toute opération qui le
// rencontre échoue localement, sans appel réseau.
var ErrUnauthenticated = errors.New("non authentifié")

// TokenSource fournit le jeton bearer de l'utilisateur courant.
// Le stockage sécurisé du jeton (trousseau, AsyncStorage, ...) est un
// collaborateur externe : ici on ne fait que le consommer.
type TokenSource interface {
	Token() (string, error)
}

// StaticTokenSource renvoie toujours le même jeton. Une chaîne vide
// équivaut à « non connecté ».
type StaticTokenSource string

func (s StaticTokenSource) Token() (string, error) {
	if s == "" {
		return "", ErrUnauthenticated
	}
	return string(s), nil
}

// JWTTokenSource enveloppe une autre source et vérifie localement la
// claim exp avant de livrer le jeton : un jeton expiré est traité comme
// une absence de jeton, sans attendre un 401 du serveur.
type JWTTokenSource struct {
	Source TokenSource
}

func (j JWTTokenSource) Token() (string, error) {
	raw, err := j.Source.Token()
	if err != nil {
		return "", err
	}

	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		log.Printf("❌ Jeton illisible: %v", err)
		return "", ErrUnauthenticated
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().Unix() > int64(exp) {
				log.Println("❌ Jeton expiré")
				return "", ErrUnauthenticated
			}
		}
	}

	return raw, nil
}
