package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCookie() SessionCookie {
	return SessionCookie{
		Name:     "connect.sid",
		Secret:   []byte("keyboard cat"),
		MaxAge:   7 * 24 * time.Hour,
		SameSite: http.SameSiteLaxMode,
	}
}

func requestWith(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestSessionCookie_WriteAndRead(t *testing.T) {
	c := testCookie()
	w := httptest.NewRecorder()

	c.Write(w, "session-1")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	written := cookies[0]
	assert.Equal(t, "connect.sid", written.Name)
	assert.True(t, written.HttpOnly)
	assert.Equal(t, "/", written.Path)
	assert.Equal(t, 7*24*60*60, written.MaxAge)

	id, ok := c.Read(requestWith(written))
	assert.True(t, ok)
	assert.Equal(t, "session-1", id)
}

func TestSessionCookie_RejectsTampering(t *testing.T) {
	c := testCookie()
	w := httptest.NewRecorder()
	c.Write(w, "session-1")
	written := w.Result().Cookies()[0]

	tests := []struct {
		name  string
		value string
	}{
		{"unsigned", "session-1"},
		{"swapped id", "session-2" + written.Value[len("session-1"):]},
		{"bad signature", "session-1.AAAA"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := c.Read(requestWith(&http.Cookie{Name: "connect.sid", Value: tt.value}))
			assert.False(t, ok)
		})
	}

	other := testCookie()
	other.Secret = []byte("another secret")
	_, ok := other.Read(requestWith(written))
	assert.False(t, ok)
}

func TestSessionCookie_Clear(t *testing.T) {
	w := httptest.NewRecorder()
	testCookie().Clear(w)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "connect.sid", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
