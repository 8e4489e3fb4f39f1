// app/echoServer/jwtx/caller.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/vmmuthu31/EzhuthAI/util/addr"
)

// CallerAddress extracts the authenticated chain address from the verified
// JWT. The wallet gateway puts the address in the sub claim.
func CallerAddress(c echo.Context) (string, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return "", errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid jwt claims")
	}

	s, ok := claims["sub"].(string)
	if !ok || s == "" {
		return "", errors.New("sub missing in claims")
	}
	a, err := addr.Normalize(s)
	if err != nil {
		return "", errors.New("sub is not a valid address")
	}
	return a, nil
}
