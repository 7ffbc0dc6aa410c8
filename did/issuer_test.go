package did

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multibase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listline/identity-core/kms"
	"github.com/listline/identity-core/signer"
)

type stubSigner struct {
	priv    ed25519.PrivateKey
	pub     ed25519.PublicKey
	vmID    string
	failErr error
}

func newStubKey(t *testing.T) (*kms.SigningKeyHandle, *stubSigner) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	address := base58.Encode(pub)
	key := &kms.SigningKeyHandle{
		OrgID:                "org-1",
		Address:              address,
		Curve:                kms.CurveEd25519,
		VerificationMethodID: "did:key:" + address,
	}

	return key, &stubSigner{priv: priv, pub: pub, vmID: key.VerificationMethodID}
}

func (s *stubSigner) Sign(_ context.Context, digest []byte) (string, error) {
	if s.failErr != nil {
		return "", s.failErr
	}

	return multibase.Encode(multibase.Base58BTC, ed25519.Sign(s.priv, digest))
}

func (s *stubSigner) VerificationMethodID() string {
	return s.vmID
}

var _ signer.Signer = (*stubSigner)(nil)

func TestCreateDID(t *testing.T) {
	key, stub := newStubKey(t)
	issuer := NewIssuer()

	identity, err := issuer.CreateDID(context.Background(), key, stub, "ids.example.com", "alice")
	require.NoError(t, err)

	t.Run("identifier", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(identity.DID, "did:webvh:"))
		assert.True(t, strings.HasSuffix(identity.DID, ":ids.example.com:alice"))
		assert.NotContains(t, identity.DID, scidPlaceholder)
	})

	t.Run("verification methods", func(t *testing.T) {
		doc := identity.Document
		require.Len(t, doc.VerificationMethod, 2)
		assert.Equal(t, identity.DID+FragmentAuthentication, doc.VerificationMethod[0].ID)
		assert.Equal(t, identity.DID+FragmentAssertionMethod, doc.VerificationMethod[1].ID)
		assert.Equal(t, doc.VerificationMethod[0].PublicKeyMultibase, doc.VerificationMethod[1].PublicKeyMultibase,
			"both methods reference the same key material")

		require.NotEmpty(t, doc.Authentication)
		require.NotEmpty(t, doc.AssertionMethod)
		assert.Equal(t, []string{FragmentAuthentication}, doc.Authentication)
		assert.Equal(t, []string{FragmentAssertionMethod}, doc.AssertionMethod)
	})

	t.Run("key material", func(t *testing.T) {
		_, decoded, err := multibase.Decode(identity.Document.VerificationMethod[0].PublicKeyMultibase)
		require.NoError(t, err)
		require.Len(t, decoded, 34)
		assert.Equal(t, byte(0xed), decoded[0])
		assert.Equal(t, byte(0x01), decoded[1])
		assert.Equal(t, []byte(stub.pub), decoded[2:])
	})

	t.Run("log", func(t *testing.T) {
		require.Len(t, identity.Log, 1)
		entry := identity.Log[0]

		assert.True(t, strings.HasPrefix(entry.VersionID, "1-"))
		assert.NotEmpty(t, entry.VersionTime)
		assert.False(t, entry.Parameters.Portable)
		assert.NotEmpty(t, entry.Parameters.SCID)
		assert.NotContains(t, entry.Parameters.SCID, scidPlaceholder)
		assert.Contains(t, identity.DID, entry.Parameters.SCID)

		require.Contains(t, entry.Parameters.UpdateKeys, key.VerificationMethodID,
			"update keys must include the certifying verification method")

		require.Len(t, entry.Proof, 1)
		assert.Equal(t, key.VerificationMethodID, entry.Proof[0].VerificationMethod)
		assert.NotEmpty(t, entry.Proof[0].ProofValue)

		_, sig, err := multibase.Decode(entry.Proof[0].ProofValue)
		require.NoError(t, err)
		assert.Len(t, sig, 64)
	})
}

func TestCreateDIDValidatesInput(t *testing.T) {
	key, stub := newStubKey(t)
	issuer := NewIssuer()

	_, err := issuer.CreateDID(context.Background(), nil, stub, "ids.example.com", "alice")
	assert.Error(t, err)

	_, err = issuer.CreateDID(context.Background(), key, nil, "ids.example.com", "alice")
	assert.Error(t, err)

	_, err = issuer.CreateDID(context.Background(), key, stub, "", "alice")
	assert.Error(t, err)

	_, err = issuer.CreateDID(context.Background(), key, stub, "ids.example.com", "")
	assert.Error(t, err)
}

func TestCreateDIDSurfacesSigningFailure(t *testing.T) {
	key, stub := newStubKey(t)
	stub.failErr = errors.New("kms unavailable")

	_, err := NewIssuer().CreateDID(context.Background(), key, stub, "ids.example.com", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kms unavailable")
}

func TestWebVHRequiresPlaceholder(t *testing.T) {
	_, stub := newStubKey(t)

	_, err := NewWebVH().Create(context.Background(), Document{ID: "did:webvh:fixed:example.com:alice"}, Parameters{
		UpdateKeys: []string{stub.vmID},
	}, stub)
	assert.Error(t, err)
}

func TestWebVHRequiresUpdateKeys(t *testing.T) {
	_, stub := newStubKey(t)

	_, err := NewWebVH().Create(context.Background(), Document{ID: "did:webvh:{SCID}:example.com:alice"}, Parameters{}, stub)
	assert.Error(t, err)
}

func TestCreateDIDIsFreshPerCall(t *testing.T) {
	key, stub := newStubKey(t)
	issuer := NewIssuer()

	first, err := issuer.CreateDID(context.Background(), key, stub, "ids.example.com", "alice")
	require.NoError(t, err)
	second, err := issuer.CreateDID(context.Background(), key, stub, "ids.example.com", "alice")
	require.NoError(t, err)

	// versionTime differences aside, the derived SCID depends on the entry
	// contents; identical inputs in the same second may collide, so only the
	// documents' key material must agree.
	assert.Equal(t, first.Document.VerificationMethod[0].PublicKeyMultibase,
		second.Document.VerificationMethod[0].PublicKeyMultibase)
}
