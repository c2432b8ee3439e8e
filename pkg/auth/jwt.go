package auth

import (
	"time"

	"github.com/eighttenaric/gmc-editor/pkg/rest"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTCustomClaims binds a browser to a server-side session. The OAuth
// credential itself never travels in the cookie, only the session id.
type JWTCustomClaims struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func NewClaims(sessionID, email string, tokenExp int) *JWTCustomClaims {
	return &JWTCustomClaims{
		SessionID: sessionID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Second * time.Duration(tokenExp))),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func GenerateJWT(claims *JWTCustomClaims, jwtSecret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", err
	}
	return t, nil
}

func GetClaims(c echo.Context) (*JWTCustomClaims, *rest.ApiErr) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, rest.NewUnauthorizedRequestError("invalid token")
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok {
		return nil, rest.NewUnauthorizedRequestError("invalid claims")
	}
	return claims, nil
}

func GetSessionID(c echo.Context) (string, *rest.ApiErr) {
	claims, apiErr := GetClaims(c)
	if apiErr != nil {
		return "", apiErr
	}
	return claims.SessionID, nil
}
