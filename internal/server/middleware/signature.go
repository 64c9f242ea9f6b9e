package middleware

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/trebuchet-org/treb-relay/internal/server/response"
	"github.com/trebuchet-org/treb-relay/internal/signing"
)

// Signature rejects any request whose header does not carry a valid HMAC of the raw body.
// The body is read once, verified, then replayed to the next handler. On failure the next
// handler is never invoked.
func Signature(signer *signing.Signer, header string, maxBodyBytes int64, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					response.WriteStatusError(w, http.StatusRequestEntityTooLarge, "request body too large")
					return
				}
				response.WriteStatusError(w, http.StatusBadRequest, "failed to read request body")
				return
			}

			if err := signer.Verify(body, r.Header.Get(header)); err != nil {
				log.Warn("request signature rejected",
					"path", r.URL.Path,
					"remote", r.RemoteAddr,
					"request_id", chimw.GetReqID(r.Context()),
				)
				response.WriteStatusError(w, http.StatusUnauthorized, err.Error())
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}
