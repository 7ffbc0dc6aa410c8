package kms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeKMS(t *testing.T, wallets []Wallet, accounts []Account) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc(pathGetWallets, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(getWalletsResponse{Wallets: wallets})
	})
	mux.HandleFunc(pathGetWalletAccounts, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(getWalletAccountsResponse{Accounts: accounts})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "")
	require.NoError(t, err)

	return client
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		wallets     []Wallet
		accounts    []Account
		expectedErr error
		expected    string
	}{
		{
			name:        "no wallets",
			wallets:     nil,
			expectedErr: ErrNoWallet,
		},
		{
			name:        "no accounts",
			wallets:     []Wallet{{WalletID: "wallet-1"}},
			accounts:    nil,
			expectedErr: ErrNoAccount,
		},
		{
			name:    "no ed25519 account",
			wallets: []Wallet{{WalletID: "wallet-1"}},
			accounts: []Account{
				{Address: "secp-addr", Curve: CurveSecp256k1},
			},
			expectedErr: ErrNoEd25519Account,
		},
		{
			name:    "first ed25519 account wins",
			wallets: []Wallet{{WalletID: "wallet-1"}, {WalletID: "wallet-2"}},
			accounts: []Account{
				{Address: "secp-addr", Curve: CurveSecp256k1},
				{Address: "ed-addr-1", Curve: CurveEd25519},
				{Address: "ed-addr-2", Curve: CurveEd25519},
			},
			expected: "ed-addr-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewKeyResolver(newFakeKMS(t, tt.wallets, tt.accounts))

			handle, err := resolver.Resolve(context.Background(), "org-1")
			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "org-1", handle.OrgID)
			assert.Equal(t, tt.expected, handle.Address)
			assert.Equal(t, CurveEd25519, handle.Curve)
			assert.Equal(t, "did:key:"+tt.expected, handle.VerificationMethodID)
		})
	}
}

func TestResolveSurfacesRemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "")
	require.NoError(t, err)

	_, err = NewKeyResolver(client).Resolve(context.Background(), "org-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoWallet)
}
