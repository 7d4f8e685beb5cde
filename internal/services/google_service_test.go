package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func TestGoogleVerifier(t *testing.T) {
	var gotAudience string
	v := &googleVerifier{
		clientID: "cid",
		validate: func(_ context.Context, _ string, audience string) (*idtoken.Payload, error) {
			gotAudience = audience
			return &idtoken.Payload{Claims: map[string]interface{}{
				"email":   "bob@example.com",
				"name":    "Bob",
				"picture": "https://pic",
			}}, nil
		},
	}
	claim, err := v.Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "cid", gotAudience)
	assert.Equal(t, &IdentityClaim{Email: "bob@example.com", Name: "Bob", Picture: "https://pic"}, claim)
}

func TestGoogleVerifier_Failures(t *testing.T) {
	_, err := NewGoogleVerifier("").Verify(context.Background(), "tok")
	assert.ErrorContains(t, err, "not configured")

	v := &googleVerifier{clientID: "cid", validate: func(context.Context, string, string) (*idtoken.Payload, error) {
		return nil, errors.New("idtoken: token expired")
	}}
	_, err = v.Verify(context.Background(), "tok")
	assert.ErrorContains(t, err, "expired")

	v.validate = func(context.Context, string, string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Claims: map[string]interface{}{"name": "No Email"}}, nil
	}
	_, err = v.Verify(context.Background(), "tok")
	assert.ErrorContains(t, err, "no email")
}
