// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/pdiddy/orquideira/internal/account"
	"github.com/pdiddy/orquideira/pkg/types"
)

const (
	authCookie = "auth"
	userIDKey  = "user_id"
)

// LoginRequest is the sign-in form. Identifier is an email or ORCID iD.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// TokenResponse is returned on sign-in and registration.
type TokenResponse struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

func signToken(subject string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *Server) parseToken(tok string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if claims.Subject == "" {
		return "", errors.New("invalid token: no subject")
	}
	return claims.Subject, nil
}

func extractToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if ck, err := c.Cookie(authCookie); err == nil {
		return ck.Value
	}
	return ""
}

// requireAuth accepts a token from the Authorization header or the auth
// cookie and stores the user id on the context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tok := extractToken(c)
		if tok == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}
		sub, err := s.parseToken(tok)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if _, ok := s.deps.Users.Lookup(sub); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
		}
		c.Set(userIDKey, sub)
		return next(c)
	}
}

func (s *Server) issue(c echo.Context, status int, u types.User) error {
	signed, err := signToken(u.ID, s.secret, s.ttl)
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}
	c.SetCookie(&http.Cookie{
		Name:     authCookie,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})
	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+signed)
	return c.JSON(status, TokenResponse{Token: signed, User: u})
}

func (s *Server) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !account.ValidateIdentifier(strings.TrimSpace(req.Identifier)) {
		return echo.NewHTTPError(http.StatusBadRequest, "identifier must be an email or ORCID iD")
	}
	u, err := s.deps.Users.Authenticate(req.Identifier, req.Password)
	if err != nil {
		return err
	}
	return s.issue(c, http.StatusOK, u)
}

func (s *Server) register(c echo.Context) error {
	var req account.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := s.deps.Users.Register(req)
	if err != nil {
		return err
	}
	return s.issue(c, http.StatusCreated, u)
}

func (s *Server) logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{Name: authCookie, Value: "", Path: "/", MaxAge: -1})
	return c.NoContent(http.StatusOK)
}

func (s *Server) currentUser(c echo.Context) (types.User, error) {
	id, _ := c.Get(userIDKey).(string)
	u, ok := s.deps.Users.Lookup(id)
	if !ok {
		return types.User{}, account.ErrNotLoggedIn
	}
	return u, nil
}

func (s *Server) me(c echo.Context) error {
	u, err := s.currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) getPrefs(c echo.Context) error {
	u, err := s.currentUser(c)
	if err != nil {
		return err
	}
	p, err := s.deps.Prefs.Load(u.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// putPrefs replaces the caller's preferences. Omitted toggles keep their
// stored value.
func (s *Server) putPrefs(c echo.Context) error {
	u, err := s.currentUser(c)
	if err != nil {
		return err
	}
	p, err := s.deps.Prefs.Load(u.ID)
	if err != nil {
		return err
	}
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := s.deps.Prefs.Save(u.ID, p); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
