package services

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// IdentityClaim: то, что мы берём из проверенного токена провайдера. Дальше не разбираем.
type IdentityClaim struct {
	Email   string
	Name    string
	Picture string
}

// IdentityVerifier проверяет подпись, audience и срок токена внешнего провайдера.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*IdentityClaim, error)
}

type googleVerifier struct {
	clientID string
	validate func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(clientID string) IdentityVerifier {
	return &googleVerifier{clientID: clientID, validate: idtoken.Validate}
}

func (g *googleVerifier) Verify(ctx context.Context, token string) (*IdentityClaim, error) {
	if g.clientID == "" {
		return nil, fmt.Errorf("google client id is not configured")
	}
	payload, err := g.validate(ctx, token, g.clientID)
	if err != nil {
		return nil, err
	}
	claim := &IdentityClaim{
		Email:   claimString(payload.Claims, "email"),
		Name:    claimString(payload.Claims, "name"),
		Picture: claimString(payload.Claims, "picture"),
	}
	if claim.Email == "" {
		return nil, fmt.Errorf("google token has no email claim")
	}
	return claim, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
