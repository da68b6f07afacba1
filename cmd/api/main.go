package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	httpin "straightenup/internal/adapters/in/http"
	"straightenup/internal/platform/di"
	shared "straightenup/internal/platform/di/shared"
)

const (
	currencyRefreshInterval = 1 * time.Hour
	checkoutSweepInterval   = 5 * time.Minute
)

// atomicHandler allows swapping the underlying handler at runtime safely.
type atomicHandler struct {
	v atomic.Value // stores http.Handler
}

func newAtomicHandler(initial http.Handler) *atomicHandler {
	ah := &atomicHandler{}
	if initial == nil {
		initial = http.NotFoundHandler()
	}
	ah.v.Store(initial)
	return ah
}

func (h *atomicHandler) Store(next http.Handler) {
	if next == nil {
		return
	}
	h.v.Store(next)
}

func (h *atomicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cur := h.v.Load()
	if cur == nil {
		http.NotFound(w, r)
		return
	}
	cur.(http.Handler).ServeHTTP(w, r)
}

func main() {
	ctx := context.Background()

	// Port resolution: env PORT (Cloud Run) -> 8080
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	// Start listening ASAP with a lightweight mux (healthz only); the full
	// router is swapped in once DI init completes.
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	switcher := newAtomicHandler(healthMux)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      switcher,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // /mall/stream holds connections open
		IdleTimeout:  120 * time.Second,
	}

	var contHolder atomic.Value // stores *di.Container (or nil)
	contHolder.Store((*di.Container)(nil))

	shuttingDown := make(chan struct{})

	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c

		close(shuttingDown)
		log.Printf("[boot] received signal: %v; shutting down...", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[boot] server shutdown error: %v", err)
		}

		if v := contHolder.Load(); v != nil {
			if cont, ok := v.(*di.Container); ok && cont != nil {
				log.Printf("[boot] closing container resources...")
				cont.Close()
				contHolder.Store((*di.Container)(nil))
			}
		}

		close(idleConnsClosed)
	}()

	// Start serving NOW (Cloud Run startup requirement).
	go func() {
		log.Printf("[boot] listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[boot] server error: %v", err)
		}
	}()

	// Heavy DI init in background; then swap the handler to the full router.
	go func() {
		initCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()

		infra, err := shared.NewInfra(initCtx)
		if err != nil {
			log.Printf("[boot] WARN: shared infra init failed: %v (serving /healthz only)", err)
			return
		}

		cont, err := di.NewContainer(initCtx, infra)
		if err != nil {
			infra.Close()
			log.Printf("[boot] WARN: di init failed: %v (serving /healthz only)", err)
			return
		}
		contHolder.Store(cont)

		select {
		case <-shuttingDown:
			cont.Close()
			return
		default:
		}

		// Warm the rate table before traffic hits /mall/currency.
		cont.CurrencyUC.Refresh(initCtx)

		go refreshCurrencyLoop(cont, shuttingDown)
		go sweepCheckoutLoop(cont, shuttingDown)

		switcher.Store(httpin.NewRouter(cont.RouterDeps()))
		log.Printf("[boot] handler switched to full router")
	}()

	<-idleConnsClosed
	log.Printf("[boot] server stopped")
}

func refreshCurrencyLoop(cont *di.Container, done <-chan struct{}) {
	t := time.NewTicker(currencyRefreshInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			cont.CurrencyUC.Refresh(ctx)
			cancel()
		case <-done:
			return
		}
	}
}

func sweepCheckoutLoop(cont *di.Container, done <-chan struct{}) {
	t := time.NewTicker(checkoutSweepInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if n := cont.CheckoutUC.SweepExpired(); n > 0 {
				log.Printf("[checkout] swept %d expired sessions", n)
			}
		case <-done:
			return
		}
	}
}
