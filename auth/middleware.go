package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5/request"
	"github.com/programme-lv/writing/httpjson"
	"github.com/programme-lv/writing/logger"
	"github.com/programme-lv/writing/srvcerror"
)

type ctxKey string

const claimsKey ctxKey = "jwtClaims"

// AuthCookieName is the cookie the web client stores its token in.
const AuthCookieName = "auth_token"

var tokenExtractor = request.MultiExtractor{
	request.BearerExtractor{},
	cookieExtractor(AuthCookieName),
}

type cookieExtractor string

func (c cookieExtractor) ExtractToken(r *http.Request) (string, error) {
	cookie, err := r.Cookie(string(c))
	if err != nil || cookie.Value == "" {
		return "", request.ErrNoTokenInRequest
	}
	return cookie.Value, nil
}

func ClaimsFromContext(ctx context.Context) *JwtClaims {
	claims, _ := ctx.Value(claimsKey).(*JwtClaims)
	return claims
}

func WithClaims(ctx context.Context, claims *JwtClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetJwtAuthMiddleware validates the bearer or cookie token and stores its
// claims in the request context. Requests without a token pass through
// with no claims; requests with a bad token are rejected.
func GetJwtAuthMiddleware(jwtKey []byte) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, err := tokenExtractor.ExtractToken(r)
			if err != nil {
				if errors.Is(err, request.ErrNoTokenInRequest) {
					next.ServeHTTP(w, r)
					return
				}
				reject(w, r, err)
				return
			}

			claims, err := ValidateJWT(token, jwtKey)
			if err != nil {
				reject(w, r, err)
				return
			}

			ctx := WithClaims(r.Context(), claims)
			ctx = logger.WithAttrs(ctx, "user_id", claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// WithUser runs next only for authenticated requests, passing the
// verified user id.
func WithUser(next func(w http.ResponseWriter, r *http.Request, userID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || claims.UserID == "" {
			httpjson.WriteError(w, srvcerror.ErrUnauthorized())
			return
		}
		next(w, r, claims.UserID)
	}
}

func reject(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Info("rejected jwt", "error", err)
	httpjson.WriteError(w, srvcerror.ErrUnauthorized())
}
