package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/AlibekovAA/tasklist/backend/internal/common/constants"
)

var errBodyTooLarge = errors.New("request body too large")

type maxBytesReader struct {
	reader io.ReadCloser
	limit  int64
	read   int64
}

func (r *maxBytesReader) Read(p []byte) (n int, err error) {
	if r.read >= r.limit {
		return 0, errBodyTooLarge
	}
	n, err = r.reader.Read(p)
	r.read += int64(n)
	if r.read > r.limit {
		return n, errBodyTooLarge
	}
	return n, err
}

func (r *maxBytesReader) Close() error {
	return r.reader.Close()
}

func MaxRequestSizeMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = constants.DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				WriteErrorEnvelope(w, http.StatusRequestEntityTooLarge, CodeRequestTooLarge, "Request body too large", traceIDFromContext(r.Context()))
				return
			}

			if r.Body != nil {
				r.Body = &maxBytesReader{
					reader: r.Body,
					limit:  maxBytes,
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
