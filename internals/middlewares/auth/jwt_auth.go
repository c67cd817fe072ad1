package auth

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"
)

const (
	LocClaims = "jwt_claims"
	LocUserID = "user_id"
)

type AuthJWTOpts struct {
	Secret           string
	BlacklistChecker func(ctx context.Context, rawToken string) (bool, error) // true = revoked
}

// AuthJWT accepts "Authorization: Bearer <HMAC JWT>" and rejects blacklisted tokens.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication credentials were not provided.")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Given token not valid for any token type")
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		if o.BlacklistChecker != nil {
			black, err := o.BlacklistChecker(c.UserContext(), raw)
			if err != nil {
				log.Warn().Err(err).Msg("token blacklist lookup failed")
			} else if black {
				return fiber.NewError(fiber.StatusUnauthorized, "Token is blacklisted")
			}
		}

		c.Locals(LocClaims, claims)
		if uid := userIDClaim(claims); uid != "" {
			c.Locals(LocUserID, uid)
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(authz) > 7 && strings.EqualFold(authz[:7], "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}

// userIDClaim reads user_id, then sub, then id.
func userIDClaim(m jwt.MapClaims) string {
	for _, k := range []string{"user_id", "sub", "id"} {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatInt(int64(v), 10)
		}
	}
	return ""
}
