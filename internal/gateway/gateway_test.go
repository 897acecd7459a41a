package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_secret"
	good := sign(secret, "order_1", "pay_1")

	assert.True(t, VerifySignature(secret, "order_1", "pay_1", good))
	assert.False(t, VerifySignature(secret, "order_1", "pay_2", good))
	assert.False(t, VerifySignature(secret, "order_2", "pay_1", good))
	assert.False(t, VerifySignature("other_secret", "order_1", "pay_1", good))
	assert.False(t, VerifySignature(secret, "order_1", "pay_1", ""))
	assert.False(t, VerifySignature(secret, "order_1", "pay_1", "not-hex-at-all"))
}

func TestHTTPClient_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"order_xyz","amount":708000,"currency":"INR","status":"created"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, KeyID: "key_id", KeySecret: "key_secret"})
	order, err := c.CreateOrder(context.Background(), 708000, "INR", map[string]string{"package_id": "10"})
	assert.NoError(t, err)
	assert.Equal(t, "order_xyz", order.ID)
	assert.Equal(t, int64(708000), order.Amount)
}

func TestHTTPClient_CreateOrder_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount exceeds maximum"}}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, KeyID: "k", KeySecret: "s"})
	_, err := c.CreateOrder(context.Background(), 1, "INR", nil)
	assert.ErrorIs(t, err, ErrOrderRejected)
	assert.Contains(t, err.Error(), "amount exceeds maximum")
}

func TestHTTPClient_CreateOrder_Unreachable(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1", KeyID: "k", KeySecret: "s"})
	_, err := c.CreateOrder(context.Background(), 1, "INR", nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}
