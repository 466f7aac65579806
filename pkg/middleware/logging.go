package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/anprojects/anproyektim/pkg/composables"
)

type responseCaptureWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
}

func (w *responseCaptureWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *responseCaptureWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

// WithLogger attaches a request-scoped *logrus.Entry to the context and logs
// request start/finish with timing and status.
func WithLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			fields := logrus.Fields{
				"path":   r.RequestURI,
				"method": r.Method,
			}
			if params, ok := composables.UseParams(r.Context()); ok {
				fields["request-id"] = params.RequestID
			}
			fieldsLogger := logger.WithFields(fields)

			fieldsLogger.WithFields(logrus.Fields{
				"host":       r.Host,
				"user-agent": r.UserAgent(),
			}).Info("request started")

			cw := &responseCaptureWriter{ResponseWriter: w}
			r = r.WithContext(composables.WithLogger(r.Context(), fieldsLogger))
			next.ServeHTTP(cw, r)

			fieldsLogger.WithFields(logrus.Fields{
				"status":   cw.Status(),
				"duration": time.Since(start).String(),
			}).Info("request completed")
		})
	}
}
