package transport

import (
	"net/http"
	"time"

	"shophub/internal/middleware"

	"github.com/google/uuid"
)

// CartSessionCookie is the cookie fallback for the cart session header
const CartSessionCookie = "cart_session"

// resolveSession returns the caller's cart session id, minting a new one when
// none or a malformed one was sent. The id is echoed back on the response.
func resolveSession(w http.ResponseWriter, r *http.Request, ttl time.Duration) string {
	session := r.Header.Get(middleware.CartSessionHeader)
	if session == "" {
		if cookie, err := r.Cookie(CartSessionCookie); err == nil {
			session = cookie.Value
		}
	}

	if id, err := uuid.Parse(session); err == nil {
		session = id.String()
	} else {
		session = uuid.New().String()
	}

	w.Header().Set(middleware.CartSessionHeader, session)
	http.SetCookie(w, &http.Cookie{
		Name:     CartSessionCookie,
		Value:    session,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return session
}
