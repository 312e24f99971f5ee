package identity

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/habitaly/portal/internal/core/domain"
)

// StubProvider stands in for a real Google/Facebook verifier. It accepts a
// base64-encoded JSON profile as the assertion and trusts its contents;
// swapping in a real provider means replacing only this type behind the
// IdentityProvider port.
type StubProvider struct {
	name string
}

func NewStubProvider(name string) *StubProvider {
	return &StubProvider{name: name}
}

func (p *StubProvider) Name() string { return p.name }

type stubAssertion struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (p *StubProvider) Verify(_ context.Context, assertion string) (*domain.SocialProfile, error) {
	raw, err := base64.StdEncoding.DecodeString(assertion)
	if err != nil {
		return nil, fmt.Errorf("%s assertion: %w", p.name, err)
	}

	var a stubAssertion
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%s assertion: %w", p.name, err)
	}
	if a.Subject == "" || a.Email == "" {
		return nil, fmt.Errorf("%s assertion: missing subject or email", p.name)
	}

	return &domain.SocialProfile{
		Subject:   a.Subject,
		Email:     a.Email,
		Name:      a.Name,
		AvatarURL: a.AvatarURL,
	}, nil
}
