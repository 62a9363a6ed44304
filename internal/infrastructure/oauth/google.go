// Package oauth holds the redirect-based external sign-in providers. The
// providers only produce a token the remote API can exchange; they never
// create a first-party session themselves.
package oauth

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// GoogleProvider implements domain.OAuthProvider for Google sign-in.
type GoogleProvider struct {
	config *oauth2.Config
}

// NewGoogleProvider builds the provider from client credentials.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

// Name implements domain.OAuthProvider.
func (p *GoogleProvider) Name() string { return "google" }

// AuthCodeURL implements domain.OAuthProvider.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// ExchangeCode implements domain.OAuthProvider. The remote API expects the
// ID token when Google issues one, otherwise the access token.
func (p *GoogleProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return "", err
	}
	if idToken, ok := token.Extra("id_token").(string); ok && idToken != "" {
		return idToken, nil
	}
	if token.AccessToken == "" {
		return "", domain.ErrTokenInvalid
	}
	return token.AccessToken, nil
}
