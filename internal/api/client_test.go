package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"cedra_storefront/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestClient_InjectsBearerToken(t *testing.T) {
	var got string
	r := gin.New()
	r.GET("/api/ping", func(c *gin.Context) {
		got = c.GetHeader("Authorization")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, auth.StaticTokenSource("jeton-123"))

	var out map[string]bool
	require.NoError(t, client.Get(context.Background(), "/api/ping", &out))
	assert.Equal(t, "Bearer jeton-123", got)
	assert.True(t, out["ok"])
}

func TestClient_NoToken_NoNetworkCall(t *testing.T) {
	var calls atomic.Int32
	r := gin.New()
	r.Any("/api/ping", func(c *gin.Context) {
		calls.Add(1)
		c.Status(http.StatusOK)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, auth.StaticTokenSource(""))

	err := client.Post(context.Background(), "/api/ping", gin.H{}, nil)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	assert.Equal(t, int32(0), calls.Load())
}

func TestClient_401MapsToUnauthenticated(t *testing.T) {
	r := gin.New()
	r.GET("/api/secret", func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expiré"})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, auth.StaticTokenSource("perime"))

	err := client.Get(context.Background(), "/api/secret", nil)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	assert.NotErrorIs(t, err, ErrTransport)
}

func TestClient_ServerErrorMapsToTransport(t *testing.T) {
	r := gin.New()
	r.POST("/api/orders", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, auth.StaticTokenSource("jeton"))

	err := client.Post(context.Background(), "/api/orders", gin.H{}, nil)
	require.ErrorIs(t, err, ErrTransport)
	assert.Contains(t, err.Error(), "Erreur connexion base de données")
}

func TestClient_ConnectionRefusedMapsToTransport(t *testing.T) {
	// Serveur fermé aussitôt : la connexion doit échouer.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, auth.StaticTokenSource("jeton"))

	err := client.Get(context.Background(), "/api/ping", nil)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClient_PostIdempotentSendsKey(t *testing.T) {
	var key string
	r := gin.New()
	r.POST("/api/orders", func(c *gin.Context) {
		key = c.GetHeader("Idempotency-Key")
		c.JSON(http.StatusCreated, gin.H{"_id": "o1"})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, auth.StaticTokenSource("jeton"))

	var out map[string]string
	require.NoError(t, client.PostIdempotent(context.Background(), "/api/orders", "run-42", gin.H{}, &out))
	assert.Equal(t, "run-42", key)
	assert.Equal(t, "o1", out["_id"])
}

func TestClient_DeleteDiscardsBody(t *testing.T) {
	r := gin.New()
	r.DELETE("/api/addresses/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Adresse supprimée"})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewClient(srv.URL, auth.StaticTokenSource("jeton"))
	assert.NoError(t, client.Delete(context.Background(), "/api/addresses/a1"))
}
