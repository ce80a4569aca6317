package middleware

import (
	"net/http"
	"os"
	"strings"
)

// Auth hydrates user context from session. Outside prod it also honors the
// development helper "Authorization: Bearer debug:<uid>" so review ownership
// flows can be exercised without a real login broker.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env := strings.ToLower(os.Getenv("STORE_WEB_ENV"))
		if env != "prod" {
			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				token := strings.TrimPrefix(auth, "Bearer ")
				if strings.HasPrefix(token, "debug:") {
					uid := strings.TrimPrefix(token, "debug:")
					s := GetSession(r)
					wasAuthed := s.UserID != ""
					if s.UserID != uid {
						s.UserID = uid
						// regenerate session ID on first auth to prevent fixation
						if !wasAuthed && uid != "" {
							s.RegenerateID()
						} else {
							s.MarkDirty()
						}
					}
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
