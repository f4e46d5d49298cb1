// Package checkout runs a short-lived loopback web server that hosts the
// payment gateway's browser checkout for one order and forwards the
// callback to the verification endpoint.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Naveenv26/mobile-bill/internal/config"
	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

// VerifyFunc forwards gateway callback fields for server-side verification.
type VerifyFunc func(ctx context.Context, v *entity.PaymentVerification) (*entity.UserSubscription, error)

// Result is the outcome of one checkout run.
type Result struct {
	Subscription *entity.UserSubscription
	Err          error
}

// Server hosts exactly one checkout. It binds to the loopback address,
// serves the gateway overlay page, receives the signed callback, runs
// verification and shuts down.
type Server struct {
	cfg    config.CheckoutConfig
	order  *entity.PaymentOrder
	verify VerifyFunc
	done   chan Result
}

// New creates a checkout server for one payment order.
func New(cfg config.CheckoutConfig, order *entity.PaymentOrder, verify VerifyFunc) *Server {
	return &Server{
		cfg:    cfg,
		order:  order,
		verify: verify,
		done:   make(chan Result, 1),
	}
}

// Run serves the checkout until the payment completes, fails or ctx is
// cancelled. Returns the verified subscription on success.
func (s *Server) Run(ctx context.Context) (*entity.UserSubscription, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{s.cfg.GatewayOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       time.Minute,
	}))

	router.GET("/", s.handlePage)
	router.POST("/callback", s.handleCallback)
	router.POST("/cancel", s.handleCancel)

	listener, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("checkout: failed to bind %s: %w", s.cfg.ListenAddr, err)
	}

	srv := &http.Server{Handler: router}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.finish(Result{Err: fmt.Errorf("checkout: server error: %w", err)})
		}
	}()

	log.Printf("checkout: waiting for payment at http://%s/", listener.Addr())

	var result Result
	select {
	case result = <-s.done:
	case <-ctx.Done():
		result = Result{Err: ctx.Err()}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	return result.Subscription, result.Err
}

// URL returns the address the user's browser should open.
func (s *Server) URL() string {
	return "http://" + s.cfg.ListenAddr + "/"
}

func (s *Server) handlePage(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(c.Writer, map[string]any{
		"OrderID":  s.order.OrderID,
		"Amount":   int64(s.order.Amount.Float() * 100),
		"Currency": s.order.Currency,
		"KeyID":    s.order.KeyID,
		"Gateway":  s.cfg.GatewayOrigin,
	})
	if err != nil {
		log.Printf("checkout: failed to render page: %v", err)
	}
}

func (s *Server) handleCallback(c *gin.Context) {
	var v entity.PaymentVerification
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid callback payload"})
		return
	}

	sub, err := s.verify(c.Request.Context(), &v)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment verification failed"})
		s.finish(Result{Err: err})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
	s.finish(Result{Subscription: sub})
}

func (s *Server) handleCancel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
	s.finish(Result{Err: errors.New("checkout: payment cancelled")})
}

func (s *Server) finish(r Result) {
	select {
	case s.done <- r:
	default:
	}
}

var pageTemplate = template.Must(template.New("checkout").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Complete your payment</title>
  <script src="{{.Gateway}}/v1/checkout.js"></script>
</head>
<body>
  <p>Opening secure checkout...</p>
  <script>
    var rzp = new Razorpay({
      key: {{.KeyID}},
      order_id: {{.OrderID}},
      amount: {{.Amount}},
      currency: {{.Currency}},
      handler: function (resp) {
        fetch("/callback", {
          method: "POST",
          headers: {"Content-Type": "application/json"},
          body: JSON.stringify(resp)
        }).then(function () {
          document.body.innerHTML = "<p>Payment received. You can close this window.</p>";
        });
      },
      modal: {
        ondismiss: function () {
          fetch("/cancel", {method: "POST"});
        }
      }
    });
    rzp.open();
  </script>
</body>
</html>
`))
