package auth

import "cargo-charter/charterdesk/internal/models/entities"

// MakeClaimsFromKey converts an api_keys row into request claims.
func MakeClaimsFromKey(key *entities.ApiKey) *APIKeyClaims {
	return &APIKeyClaims{
		KeyIDValue: key.ApiKey,
		LabelValue: key.Label,
		AdminValue: key.IsAdmin,
	}
}
