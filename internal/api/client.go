package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"cedra_storefront/internal/auth"

	"github.com/sony/gobreaker/v2"
)

// Client parle à l'API Cedra (commandes, paiements, adresses, méthodes
// de paiement). Chaque appel porte le jeton bearer de la session ; si la
// source de jeton ne fournit rien, l'appel échoue avant tout I/O.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  auth.TokenSource
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

func NewClient(baseURL string, tokens auth.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name: "cedra-api",
		}),
	}
}

// serverError est la forme des corps d'erreur du backend
// ({"error": ...} ou {"message": ...} selon le handler).
type serverError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e serverError) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, nil)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, nil)
}

// PostIdempotent ajoute une clé d'idempotence pour que la ré-émission
// d'une même soumission ne crée pas deux commandes.
func (c *Client) PostIdempotent(ctx context.Context, path, key string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, map[string]string{"Idempotency-Key": key})
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out, nil)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, headers map[string]string) error {
	// Court-circuit local : pas de jeton, pas d'appel réseau.
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, auth.ErrUnauthenticated)
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("sérialisation du corps de requête: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(req)
	})
	if err != nil {
		log.Printf("❌ Appel API échoué (%s %s): %v", method, path, err)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		log.Printf("🔐 401 reçu sur %s %s — session expirée ?", method, path)
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s %s: %w", method, path, auth.ErrUnauthenticated)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var srvErr serverError
		_ = json.NewDecoder(resp.Body).Decode(&srvErr)
		log.Printf("❌ %s %s → HTTP %d (%s)", method, path, resp.StatusCode, srvErr.text())
		if msg := srvErr.text(); msg != "" {
			return fmt.Errorf("%w: HTTP %d: %s", ErrTransport, resp.StatusCode, msg)
		}
		return fmt.Errorf("%w: HTTP %d", ErrTransport, resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: réponse illisible: %v", ErrTransport, err)
	}
	return nil
}
