package credential

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/listline/identity-core/credential/common/dto"
	"github.com/listline/identity-core/signer"
)

const (
	contextCredentialsV1 = "https://www.w3.org/2018/credentials/v1"
	contextListEvents    = "https://listline.app/contexts/list-events/v1"

	proofType             = "DataIntegrityProof"
	proofCryptosuite      = "eddsa-jcs-2022"
	proofPurposeAssertion = "assertionMethod"
)

// Issuer builds and signs verifiable credentials. It holds no per-request
// state; concurrent Issue calls are safe.
type Issuer struct {
	signer         signer.Signer
	logger         *slog.Logger
	validateSchema bool
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithLogger sets the logger used for best-effort issuance failures.
func WithLogger(logger *slog.Logger) IssuerOption {
	return func(i *Issuer) {
		i.logger = logger
	}
}

// WithSchemaValidation enables validation of the credential subject against
// its kind's JSON schema before signing.
func WithSchemaValidation() IssuerOption {
	return func(i *Issuer) {
		i.validateSchema = true
	}
}

// NewIssuer creates a credential issuer signing with s.
func NewIssuer(s signer.Signer, opts ...IssuerOption) (*Issuer, error) {
	if s == nil {
		return nil, fmt.Errorf("signer required")
	}

	issuer := &Issuer{
		signer: s,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(issuer)
	}

	return issuer, nil
}

// Issue builds, digests and signs a credential of the subject's kind. Each
// call produces a distinct credential: fresh id, fresh issuance date. Calling
// it twice for the same logical event is two facts, not a resend.
func (i *Issuer) Issue(ctx context.Context, issuerDID string, subject Subject) (*Credential, error) {
	if issuerDID == "" {
		return nil, fmt.Errorf("issuer DID required")
	}
	if subject == nil {
		return nil, fmt.Errorf("subject required")
	}

	subjectMap := subject.subjectMap()
	if i.validateSchema {
		if err := validateSubject(subject.Kind(), subjectMap); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	cred := &Credential{
		Context:           []string{contextCredentialsV1, contextListEvents},
		Type:              []string{"VerifiableCredential", string(subject.Kind())},
		ID:                "urn:uuid:" + uuid.NewString(),
		Issuer:            issuerDID,
		IssuanceDate:      now,
		CredentialSubject: subjectMap,
		Proof: &dto.Proof{
			Type:               proofType,
			Created:            now,
			VerificationMethod: i.signer.VerificationMethodID(),
			ProofPurpose:       proofPurposeAssertion,
			Cryptosuite:        proofCryptosuite,
		},
	}

	signingInput, err := cred.SigningInput()
	if err != nil {
		return nil, err
	}

	proofValue, err := i.signer.Sign(ctx, signingInput)
	if err != nil {
		return nil, fmt.Errorf("failed to sign credential: %w", err)
	}
	cred.Proof.ProofValue = proofValue

	return cred, nil
}

// IssuanceResult is the outcome of a best-effort issuance.
type IssuanceResult struct {
	Credential *Credential
	Err        error
}

// Issued reports whether a credential was produced.
func (r IssuanceResult) Issued() bool {
	return r.Err == nil && r.Credential != nil
}

// TryIssue issues a credential best-effort. It never returns an error: a
// failure is logged with the event context and reported through the result,
// so the caller's primary write can commit regardless.
func (i *Issuer) TryIssue(ctx context.Context, issuerDID string, subject Subject) IssuanceResult {
	cred, err := i.Issue(ctx, issuerDID, subject)
	if err != nil {
		kind := Kind("")
		if subject != nil {
			kind = subject.Kind()
		}
		i.logger.ErrorContext(ctx, "credential issuance failed",
			"kind", string(kind),
			"issuer", issuerDID,
			"error", err)

		return IssuanceResult{Err: err}
	}

	return IssuanceResult{Credential: cred}
}

// IssueBatch signs one credential per subject concurrently. The remote
// signing service bounds the effective concurrency; this issuer imposes no
// limiter of its own. The first failure cancels the batch.
func (i *Issuer) IssueBatch(ctx context.Context, issuerDID string, subjects []Subject) ([]*Credential, error) {
	creds := make([]*Credential, len(subjects))

	g, ctx := errgroup.WithContext(ctx)
	for idx, subject := range subjects {
		idx, subject := idx, subject
		g.Go(func() error {
			cred, err := i.Issue(ctx, issuerDID, subject)
			if err != nil {
				return err
			}
			creds[idx] = cred
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return creds, nil
}
