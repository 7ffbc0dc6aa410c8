package kms

// Curve identifies the signature scheme of a custodial account.
type Curve string

const (
	CurveEd25519   Curve = "CURVE_ED25519"
	CurveSecp256k1 Curve = "CURVE_SECP256K1"
)

// Wallet is one custodial wallet within an organization.
type Wallet struct {
	WalletID   string `json:"walletId"`
	WalletName string `json:"walletName,omitempty"`
}

// Account is one signing account within a wallet. Address is the base58
// encoding of the account's public key.
type Account struct {
	Address string `json:"address"`
	Curve   Curve  `json:"curve"`
}

// SignatureParts is the two-part raw signature returned by the signing RPC,
// each half hex-encoded.
type SignatureParts struct {
	R string `json:"r"`
	S string `json:"s"`
}

type getWalletsRequest struct {
	OrganizationID string `json:"organizationId"`
}

type getWalletsResponse struct {
	Wallets []Wallet `json:"wallets"`
}

type getWalletAccountsRequest struct {
	OrganizationID string `json:"organizationId"`
	WalletID       string `json:"walletId"`
}

type getWalletAccountsResponse struct {
	Accounts []Account `json:"accounts"`
}

type signRawPayloadRequest struct {
	OrganizationID string `json:"organizationId"`
	SignWith       string `json:"signWith"`
	Payload        string `json:"payload"`
	Encoding       string `json:"encoding"`
	HashFunction   string `json:"hashFunction"`
}

type signRawPayloadResponse struct {
	Activity struct {
		Result struct {
			SignRawPayloadResult *SignatureParts `json:"signRawPayloadResult"`
		} `json:"result"`
	} `json:"activity"`
}
