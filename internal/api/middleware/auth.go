package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pawcare/PetCare-BookingService/internal/api/handlers"
	"github.com/pawcare/PetCare-BookingService/internal/domain"
)

type actorKey struct{}

// Auth resolves the calling actor from the X-User-ID and X-User-Role
// headers set by the identity gateway. Per the trust boundary, the
// values are taken at face value and not re-authenticated here.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "missing or invalid X-User-ID header")
			return
		}

		role := domain.Role(r.Header.Get("X-User-Role"))
		switch role {
		case domain.RoleCustomer, domain.RoleProvider, domain.RoleAdmin:
			// known role
		default:
			handlers.RespondError(w, http.StatusUnauthorized, "missing or invalid X-User-Role header")
			return
		}

		actor := domain.Actor{ID: userID, Role: role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, actor)))
	})
}

// ActorFromContext returns the actor resolved by Auth
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
