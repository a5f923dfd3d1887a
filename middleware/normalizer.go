package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmartsolutions/bookstore-api/utils"
	"go.uber.org/zap"
)

// defaultErrorMessage is used when an error response carried no body
const defaultErrorMessage = "An error occurred."

// Normalize is the outermost middleware. It buffers the downstream
// response instead of streaming it, so that nothing reaches the client
// before the final status is known. Success responses (< 400) are
// forwarded byte for byte; any response >= 400 has its body rewritten
// into the canonical JSON envelope, whatever the handler wrote. Panics
// during handler execution become a 500 whose envelope message is the
// fault's text, never a stack trace.
func Normalize(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bw := newBufferedWriter()

			func() {
				defer func() {
					if rec := recover(); rec != nil {
						logger.Error("unhandled fault in handler",
							zap.String("request_id", GetRequestIDFromContext(r.Context())),
							zap.String("method", r.Method),
							zap.String("path", r.URL.Path),
							zap.Any("fault", rec))
						bw.reset(http.StatusInternalServerError, fmt.Sprint(rec))
					}
				}()
				next.ServeHTTP(bw, r)
			}()

			bw.finalize(w)
		})
	}
}

// bufferedWriter captures the status code and body written by the
// downstream chain. Headers are staged in a private map and only copied
// to the real sink at finalize time, so a rewrite can still adjust them.
type bufferedWriter struct {
	header http.Header
	buf    bytes.Buffer
	status int
}

func newBufferedWriter() *bufferedWriter {
	return &bufferedWriter{header: make(http.Header)}
}

// Header implements http.ResponseWriter
func (bw *bufferedWriter) Header() http.Header {
	return bw.header
}

// WriteHeader implements http.ResponseWriter. Like the real sink, only
// the first call sticks.
func (bw *bufferedWriter) WriteHeader(status int) {
	if bw.status == 0 {
		bw.status = status
	}
}

// Write implements http.ResponseWriter
func (bw *bufferedWriter) Write(b []byte) (int, error) {
	if bw.status == 0 {
		bw.status = http.StatusOK
	}
	return bw.buf.Write(b)
}

// reset discards everything buffered so far and replaces it with the
// given status and body text. Used for recovered faults.
func (bw *bufferedWriter) reset(status int, body string) {
	bw.status = status
	bw.buf.Reset()
	bw.buf.WriteString(body)
}

// finalize performs the copy-or-rewrite decision and emits the response
// to the real sink. This is the only place bytes reach the client.
func (bw *bufferedWriter) finalize(w http.ResponseWriter) {
	status := bw.status
	if status == 0 {
		status = http.StatusOK
	}

	dst := w.Header()

	if status < http.StatusBadRequest {
		// Success: the handler controls its own shape; forward verbatim.
		for key, values := range bw.header {
			dst[key] = values
		}
		w.WriteHeader(status)
		_, _ = w.Write(bw.buf.Bytes())
		return
	}

	message := strings.TrimSpace(bw.buf.String())
	if message == "" {
		message = defaultErrorMessage
	}

	body, err := json.Marshal(utils.Envelope{Status: status, Message: message})
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"Status":500,"Message":"An error occurred."}`)
	}

	for key, values := range bw.header {
		if key == "Content-Type" || key == "Content-Length" {
			continue
		}
		dst[key] = values
	}
	dst.Set("Content-Type", "application/json")
	dst.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
