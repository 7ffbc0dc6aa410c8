package did

import "github.com/listline/identity-core/credential/common/dto"

// Fragment identifiers of the two verification methods every identity is
// minted with.
const (
	FragmentAuthentication  = "#key-0"
	FragmentAssertionMethod = "#key-1"
)

// VerificationMethod is one verification method entry of a DID document.
type VerificationMethod struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Controller         string `json:"controller"`
	PublicKeyMultibase string `json:"publicKeyMultibase"`
}

// Document is a W3C DID document. Every document carries at least one
// authentication and one assertionMethod entry.
type Document struct {
	Context            []string             `json:"@context"`
	ID                 string               `json:"id"`
	VerificationMethod []VerificationMethod `json:"verificationMethod"`
	Authentication     []string             `json:"authentication"`
	AssertionMethod    []string             `json:"assertionMethod"`
}

// Parameters are the DID log parameters of a versioned-history DID.
// UpdateKeys always includes the verification method that self-certifies the
// document.
type Parameters struct {
	Method     string   `json:"method"`
	SCID       string   `json:"scid"`
	UpdateKeys []string `json:"updateKeys"`
	Portable   bool     `json:"portable"`
}

// LogEntry is one version of the DID's history.
type LogEntry struct {
	VersionID   string      `json:"versionId"`
	VersionTime string      `json:"versionTime"`
	Parameters  Parameters  `json:"parameters"`
	State       Document    `json:"state"`
	Proof       []dto.Proof `json:"proof,omitempty"`
}

// Identity is a created DID together with its document and log. The log is
// served verbatim by the resolution endpoints; this core only produces it.
type Identity struct {
	DID      string     `json:"did"`
	Document Document   `json:"document"`
	Log      []LogEntry `json:"log"`
}
