package devproxy

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"datashare/shared/constants"
)

// Prefixes are the path prefixes forwarded to the backend. Everything else is
// answered with a 404.
var Prefixes = []string{"/api", "/upload"}

// NewHandler returns a handler forwarding requests under Prefixes to target.
func NewHandler(target string) (http.Handler, error) {
	targetURL, err := url.Parse(target)
	if err != nil {
		return nil, err
	} else if len(targetURL.Scheme) == 0 || len(targetURL.Host) == 0 {
		return nil, fmt.Errorf("invalid proxy target %q", target)
	}

	proxy := httputil.NewSingleHostReverseProxy(targetURL)
	director := proxy.Director
	proxy.Director = func(req *http.Request) {
		director(req)
		// Rewrite the host header, the backend may reject a foreign Host
		req.Host = targetURL.Host
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
		log.Printf("proxy error for %s %s: %v\n", req.Method, req.URL.Path, err)
		w.WriteHeader(http.StatusBadGateway)
	}

	r := mux.NewRouter()
	r.Use(requestIDMiddleware)
	for _, prefix := range Prefixes {
		r.Path(prefix).Handler(proxy)
		r.PathPrefix(prefix + "/").Handler(proxy)
	}

	return r, nil
}

// requestIDMiddleware tags proxied requests that don't have a request ID yet
// and logs them.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := req.Header.Get(constants.RequestIDHeader)
		if len(requestID) == 0 {
			requestID = uuid.NewString()
			req.Header.Set(constants.RequestIDHeader, requestID)
		}

		log.Printf("%s %s [%s]\n", req.Method, req.URL.Path, requestID)
		next.ServeHTTP(w, req)
	})
}

// Run serves the proxy on addr until the process is interrupted.
func Run(addr, target string) error {
	handler, err := NewHandler(target)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Proxying %v on %s to %s\n", Prefixes, addr, target)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err = <-errChan:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
