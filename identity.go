// Package identitycore is the identity and verifiable-credential signing
// core of the list-sharing application. It creates self-certifying
// decentralized identifiers and issues signed credentials for list events,
// using a custodial key-management service that never releases private key
// material.
//
// The calling layers reach this core through two entry points: create an
// identity for a custodial organization, and issue a credential of a given
// kind for a custodial organization over some content. Authorization is the
// caller's concern.
package identitycore

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/listline/identity-core/config"
	"github.com/listline/identity-core/credential"
	"github.com/listline/identity-core/did"
	"github.com/listline/identity-core/kms"
	"github.com/listline/identity-core/signer"
)

// Service wires the key resolver and issuers together. It holds no
// per-request state; every operation resolves its signing key fresh, so
// there is never a stale key to invalidate.
type Service struct {
	client         *kms.Client
	resolver       *kms.KeyResolver
	didIssuer      *did.Issuer
	logger         *slog.Logger
	httpClient     *http.Client
	issuerOpts     []credential.IssuerOption
	validateSchema bool
}

// Option configures a Service.
type Option func(*Service)

// WithDIDMethod sets the DID method used for identity creation.
func WithDIDMethod(m did.Method) Option {
	return func(s *Service) {
		s.didIssuer = did.NewIssuer(did.WithMethod(m))
	}
}

// WithLogger sets the logger for best-effort issuance failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithSchemaValidation validates credential subjects against their schemas
// before signing.
func WithSchemaValidation() Option {
	return func(s *Service) {
		s.validateSchema = true
	}
}

// WithHTTPClient sets the HTTP client used for key-management service calls.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) {
		s.httpClient = c
	}
}

// NewService creates the signing core against the given key-management
// service endpoint.
func NewService(endpoint, apiKey string, opts ...Option) (*Service, error) {
	s := &Service{
		didIssuer: did.NewIssuer(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var clientOpts []kms.ClientOption
	if s.httpClient != nil {
		clientOpts = append(clientOpts, kms.WithHTTPClient(s.httpClient))
	}

	client, err := kms.NewClient(endpoint, apiKey, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kms client: %w", err)
	}
	s.client = client
	s.resolver = kms.NewKeyResolver(client)

	s.issuerOpts = []credential.IssuerOption{credential.WithLogger(s.logger)}
	if s.validateSchema {
		s.issuerOpts = append(s.issuerOpts, credential.WithSchemaValidation())
	}

	return s, nil
}

// NewServiceFromEnv creates the signing core from environment configuration.
func NewServiceFromEnv(opts ...Option) (*Service, error) {
	return NewService(config.Endpoint(), config.APIKey(), opts...)
}

// CreateIdentity resolves the organization's signing key and mints a
// self-certified identity published under domain/pathSlug. Failure aborts
// the caller's onboarding flow; there is no best-effort variant.
func (s *Service) CreateIdentity(ctx context.Context, organizationID, domain, pathSlug string) (*did.Identity, error) {
	key, err := s.resolver.Resolve(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve signing key: %w", err)
	}

	remote, err := signer.NewRemoteSigner(s.client, key)
	if err != nil {
		return nil, err
	}

	return s.didIssuer.CreateDID(ctx, key, remote, domain, pathSlug)
}

// IssueCredential resolves the organization's signing key and issues a
// signed credential for the subject.
func (s *Service) IssueCredential(ctx context.Context, organizationID, issuerDID string, subject credential.Subject) (*credential.Credential, error) {
	key, err := s.resolver.Resolve(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve signing key: %w", err)
	}

	remote, err := signer.NewRemoteSigner(s.client, key)
	if err != nil {
		return nil, err
	}

	issuer, err := credential.NewIssuer(remote, s.issuerOpts...)
	if err != nil {
		return nil, err
	}

	return issuer.Issue(ctx, issuerDID, subject)
}

// TryIssueCredential issues a credential best-effort. It never returns an
// error: failures are logged and reported through the result, so the
// caller's primary write (the item mutation itself) commits regardless.
func (s *Service) TryIssueCredential(ctx context.Context, organizationID, issuerDID string, subject credential.Subject) credential.IssuanceResult {
	cred, err := s.IssueCredential(ctx, organizationID, issuerDID, subject)
	if err != nil {
		kind := credential.Kind("")
		if subject != nil {
			kind = subject.Kind()
		}
		s.logger.ErrorContext(ctx, "credential issuance failed",
			"kind", string(kind),
			"organization", organizationID,
			"error", err)

		return credential.IssuanceResult{Err: err}
	}

	return credential.IssuanceResult{Credential: cred}
}
