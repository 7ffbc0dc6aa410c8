package kms

import (
	"context"
	"errors"
	"fmt"
)

// Resolution failures, in the order the resolver can hit them.
var (
	ErrNoWallet         = errors.New("organization has no wallets")
	ErrNoAccount        = errors.New("wallet has no accounts")
	ErrNoEd25519Account = errors.New("wallet has no Ed25519 account")
)

// SigningKeyHandle identifies one usable custodial signing key. Handles are
// resolved fresh for every operation and never cached; ownership stays with
// the calling operation.
type SigningKeyHandle struct {
	OrgID                string
	Address              string
	Curve                Curve
	VerificationMethodID string
}

// KeyResolver resolves the Ed25519 signing key of a custodial organization.
type KeyResolver struct {
	client *Client
}

// NewKeyResolver creates a resolver backed by the given client.
func NewKeyResolver(client *Client) *KeyResolver {
	return &KeyResolver{client: client}
}

// Resolve finds exactly one usable Ed25519 signing key for the organization.
// It selects the first wallet and, within it, the first Ed25519 account; if
// multiple Ed25519 accounts exist no disambiguation is attempted. Transient
// remote failures are surfaced, not retried: retry policy belongs to the
// caller, which owns the request timeout.
func (r *KeyResolver) Resolve(ctx context.Context, organizationID string) (*SigningKeyHandle, error) {
	wallets, err := r.client.GetWallets(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if len(wallets) == 0 {
		return nil, fmt.Errorf("%w: organization %s", ErrNoWallet, organizationID)
	}

	accounts, err := r.client.GetWalletAccounts(ctx, organizationID, wallets[0].WalletID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: wallet %s", ErrNoAccount, wallets[0].WalletID)
	}

	for _, account := range accounts {
		if account.Curve == CurveEd25519 {
			return &SigningKeyHandle{
				OrgID:                organizationID,
				Address:              account.Address,
				Curve:                account.Curve,
				VerificationMethodID: "did:key:" + account.Address,
			}, nil
		}
	}

	return nil, fmt.Errorf("%w: wallet %s", ErrNoEd25519Account, wallets[0].WalletID)
}
