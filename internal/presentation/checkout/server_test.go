package checkout

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Naveenv26/mobile-bill/internal/config"
	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()
	return addr
}

func testOrder() *entity.PaymentOrder {
	return &entity.PaymentOrder{
		OrderID:  "order_abc",
		Amount:   499,
		Currency: "INR",
		KeyID:    "rzp_test_key",
		PlanID:   2,
	}
}

func testConfig(addr string) config.CheckoutConfig {
	return config.CheckoutConfig{
		ListenAddr:    addr,
		GatewayOrigin: "https://checkout.example.com",
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCheckoutSuccessfulPayment(t *testing.T) {
	var gotVerification *entity.PaymentVerification
	verify := func(ctx context.Context, v *entity.PaymentVerification) (*entity.UserSubscription, error) {
		gotVerification = v
		return &entity.UserSubscription{ID: 1, IsActive: true, DaysRemaining: 30}, nil
	}

	srv := New(testConfig(freeAddr(t)), testOrder(), verify)

	type outcome struct {
		sub *entity.UserSubscription
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		sub, err := srv.Run(context.Background())
		done <- outcome{sub, err}
	}()
	waitForServer(t, srv.URL())

	// The hosted page embeds the order for the gateway overlay.
	resp, err := http.Get(srv.URL())
	require.NoError(t, err)
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(page), "order_abc")
	assert.Contains(t, string(page), "rzp_test_key")
	assert.Contains(t, string(page), "https://checkout.example.com")

	body := []byte(`{
		"razorpay_order_id": "order_abc",
		"razorpay_payment_id": "pay_xyz",
		"razorpay_signature": "sig123"
	}`)
	resp, err = http.Post(srv.URL()+"callback", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := <-done
	require.NoError(t, result.err)
	require.NotNil(t, result.sub)
	assert.True(t, result.sub.IsActive)

	require.NotNil(t, gotVerification)
	assert.Equal(t, "order_abc", gotVerification.RazorpayOrderID)
	assert.Equal(t, "pay_xyz", gotVerification.RazorpayPaymentID)
	assert.Equal(t, "sig123", gotVerification.RazorpaySignature)
}

func TestCheckoutVerificationFailure(t *testing.T) {
	verify := func(ctx context.Context, v *entity.PaymentVerification) (*entity.UserSubscription, error) {
		return nil, errors.New("signature mismatch")
	}

	srv := New(testConfig(freeAddr(t)), testOrder(), verify)
	done := make(chan error, 1)
	go func() {
		_, err := srv.Run(context.Background())
		done <- err
	}()
	waitForServer(t, srv.URL())

	resp, err := http.Post(srv.URL()+"callback", "application/json",
		bytes.NewReader([]byte(`{"razorpay_order_id": "o", "razorpay_payment_id": "p", "razorpay_signature": "bad"}`)))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	err = <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature mismatch")
}

func TestCheckoutCancelled(t *testing.T) {
	srv := New(testConfig(freeAddr(t)), testOrder(), nil)
	done := make(chan error, 1)
	go func() {
		_, err := srv.Run(context.Background())
		done <- err
	}()
	waitForServer(t, srv.URL())

	resp, err := http.Post(srv.URL()+"cancel", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	err = <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestCheckoutContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := New(testConfig(freeAddr(t)), testOrder(), nil)

	done := make(chan error, 1)
	go func() {
		_, err := srv.Run(ctx)
		done <- err
	}()
	waitForServer(t, srv.URL())

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down on context cancellation")
	}
}
