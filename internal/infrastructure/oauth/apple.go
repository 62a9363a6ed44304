package oauth

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// appleEndpoint is Sign in with Apple's OAuth2 endpoint.
var appleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://appleid.apple.com/auth/authorize",
	TokenURL: "https://appleid.apple.com/auth/token",
}

// AppleProvider implements domain.OAuthProvider for Sign in with Apple.
type AppleProvider struct {
	config *oauth2.Config
}

// NewAppleProvider builds the provider from client credentials. The client
// secret is the pre-signed JWT Apple requires, produced out of band.
func NewAppleProvider(clientID, clientSecret, redirectURL string) *AppleProvider {
	return &AppleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"name", "email"},
			Endpoint:     appleEndpoint,
		},
	}
}

// Name implements domain.OAuthProvider.
func (p *AppleProvider) Name() string { return "apple" }

// AuthCodeURL implements domain.OAuthProvider. Apple requires form_post
// response mode when scopes are requested.
func (p *AppleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.SetAuthURLParam("response_mode", "form_post"))
}

// ExchangeCode implements domain.OAuthProvider. The remote API verifies the
// Apple ID token server-side.
func (p *AppleProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return "", err
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", domain.ErrTokenInvalid
	}
	return idToken, nil
}
