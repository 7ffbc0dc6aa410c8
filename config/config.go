// Package config reads the signing core's configuration from the
// environment, falling back to defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Default values
const (
	DefaultEndpoint       = "https://kms.listline.app"
	DefaultTimeoutSeconds = 10
	DefaultDIDDomain      = "ids.listline.app"
)

// Environment variable names
const (
	EnvEndpoint       = "IDENTITY_KMS_ENDPOINT"
	EnvAPIKey         = "IDENTITY_KMS_API_KEY"
	EnvOrganizationID = "IDENTITY_KMS_ORG_ID"
	EnvTimeoutSeconds = "IDENTITY_KMS_TIMEOUT_SECONDS"
	EnvDIDDomain      = "IDENTITY_DID_DOMAIN"
)

// Endpoint returns the key-management service endpoint.
func Endpoint() string {
	if endpoint := os.Getenv(EnvEndpoint); endpoint != "" {
		return endpoint
	}
	return DefaultEndpoint
}

// APIKey returns the key-management service API key. There is no default.
func APIKey() string {
	return os.Getenv(EnvAPIKey)
}

// OrganizationID returns the custodial organization id. There is no default.
func OrganizationID() string {
	return os.Getenv(EnvOrganizationID)
}

// Timeout returns the HTTP timeout for key-management service calls.
func Timeout() time.Duration {
	if raw := os.Getenv(EnvTimeoutSeconds); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return DefaultTimeoutSeconds * time.Second
}

// DIDDomain returns the web domain identities are published under.
func DIDDomain() string {
	if domain := os.Getenv(EnvDIDDomain); domain != "" {
		return domain
	}
	return DefaultDIDDomain
}
