package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrInvalidSubject = errors.New("invalid token subject")
	ErrUnknownRole    = errors.New("unknown role")
)

// Claims are the fields read from identity provider access tokens.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type ProfileLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// Verifier checks HS256 access tokens issued by the identity provider. Tokens
// without an expiry are rejected.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret []byte) *Verifier {
	return &Verifier{
		secret: secret,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()),
	}
}

// Subject returns the profile id the token was issued for.
func (v *Verifier) Subject(token string) (uuid.UUID, error) {
	claims := &Claims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidSubject
	}
	return id, nil
}

// Resolve loads the caller's profile and builds the principal. Role always comes
// from the profile row, never from the token.
func Resolve(ctx context.Context, profiles ProfileLookup, id uuid.UUID) (domain.Principal, error) {
	profile, err := profiles.GetByID(ctx, id)
	if err != nil {
		return domain.Principal{}, err
	}
	if profile.Role != domain.RoleOwner && profile.Role != domain.RoleEmployee {
		return domain.Principal{}, ErrUnknownRole
	}
	return domain.Principal{UserID: profile.ID, Role: profile.Role, FullName: profile.FullName}, nil
}
