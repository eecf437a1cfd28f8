package httpx

import (
	"bytes"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	http.ResponseWriter
	status int
	body   *bytes.Buffer
}

func (w *bodyCacheWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheMiddleware serves repeated GET requests from an in-memory cache.
// Apply it only to routes whose responses may lag by the cache duration;
// telemetry and liveness reads must never go through it.
func CacheMiddleware(store *cache.Cache, duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := r.URL.RequestURI()
			if resp, found := store.Get(key); found {
				cached := resp.(cachedResponse)
				for k, v := range cached.headers {
					w.Header()[k] = v
				}

				w.WriteHeader(cached.status)
				_, _ = w.Write(cached.body)

				return
			}

			bcw := &bodyCacheWriter{
				ResponseWriter: w,
				status:         http.StatusOK,
				body:           bytes.NewBuffer(nil),
			}

			next.ServeHTTP(bcw, r)

			if bcw.status >= http.StatusOK && bcw.status < http.StatusMultipleChoices {
				store.Set(key, cachedResponse{
					status:  bcw.status,
					headers: bcw.Header().Clone(),
					body:    bcw.body.Bytes(),
				}, duration)
			}
		})
	}
}
