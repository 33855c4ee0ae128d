package config

import (
	"errors"

	"github.com/leofalp/aistream/providers/ai"
)

// Chain asks several credential providers in order. The first one returning
// an API key wins for credentials; provider configs are merged field by field
// with earlier providers taking precedence.
type Chain []ai.CredentialProvider

// Credentials returns the first non-empty key. A preferred model set by an
// earlier provider is kept even if the key comes from a later one.
func (c Chain) Credentials(id ai.ProviderID) (ai.Credentials, error) {
	var result ai.Credentials
	var errs []error
	for _, provider := range c {
		creds, err := provider.Credentials(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if result.Model == "" {
			result.Model = creds.Model
		}
		if creds.APIKey != "" {
			result.APIKey = creds.APIKey
			return result, nil
		}
	}
	if len(errs) > 0 && len(errs) == len(c) {
		return ai.Credentials{}, errors.Join(errs...)
	}
	return result, nil
}

// ProviderConfig merges every provider's config for id.
func (c Chain) ProviderConfig(id ai.ProviderID) (ai.ProviderConfig, error) {
	var merged ai.ProviderConfig
	var errs []error
	for _, provider := range c {
		cfg, err := provider.ProviderConfig(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if merged.Endpoint == "" {
			merged.Endpoint = cfg.Endpoint
		}
		if merged.DefaultModel == "" {
			merged.DefaultModel = cfg.DefaultModel
		}
		if len(merged.Models) == 0 {
			merged.Models = cfg.Models
		}
	}
	if len(errs) > 0 && len(errs) == len(c) {
		return ai.ProviderConfig{}, errors.Join(errs...)
	}
	return merged, nil
}
