package request

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	read := func(limit int64, body string) (int, error) {
		var n int
		var readErr error
		handler := BodyLimit(limit)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := io.ReadAll(r.Body)
			n, readErr = len(data), err
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		return n, readErr
	}

	t.Run("body under the limit is readable", func(t *testing.T) {
		n, err := read(1024, strings.Repeat("x", 100))
		assert.NoError(t, err)
		assert.Equal(t, 100, n)
	})

	t.Run("body over the limit fails with MaxBytesError", func(t *testing.T) {
		_, err := read(10, strings.Repeat("x", 100))
		var maxErr *http.MaxBytesError
		assert.True(t, errors.As(err, &maxErr))
	})

	t.Run("non-positive limit falls back to the default", func(t *testing.T) {
		n, err := read(0, strings.Repeat("x", 2048))
		assert.NoError(t, err)
		assert.Equal(t, 2048, n)
	})
}
