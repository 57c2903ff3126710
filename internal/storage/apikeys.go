package storage

import (
	"fmt"
	"sort"
)

// DefaultKeyName is used when a caller saves a key without naming it.
const DefaultKeyName = "default"

// UniqueKey builds the record key an API key is stored under.
func UniqueKey(provider, keyName string) string {
	return fmt.Sprintf("%s_%s", provider, keyName)
}

// FormattedAPIKey is the listing projection of an API key record. The
// secret itself is never included.
type FormattedAPIKey struct {
	UniqueKey   string `json:"unique_key"`
	KeyName     string `json:"key_name"`
	Provider    string `json:"provider"`
	CreditLimit any    `json:"credit_limit"`
	UpdatedAt   any    `json:"updated_at"`
}

// SaveAPIKey stores an API key record for a user, fully overwriting any
// record with the same (provider, keyName). updated_at is refreshed on
// every save. Returns false (and logs) on failure.
func (s *Store) SaveAPIKey(userID, keyName, provider, apiKey string, creditLimit *float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(s.apiKeysFile)
	if _, ok := doc[userID]; !ok {
		doc[userID] = Partition{}
	}

	var limit any
	if creditLimit != nil {
		limit = *creditLimit
	}

	doc[userID][UniqueKey(provider, keyName)] = map[string]any{
		"key_name":     keyName,
		"provider":     provider,
		"api_key":      apiKey,
		"credit_limit": limit,
		"updated_at":   s.timestamp(),
	}

	if err := s.save(s.apiKeysFile, doc); err != nil {
		s.logger.Error("save api key failed", "user_id", userID, "error", err)
		return false
	}
	return true
}

// GetAPIKey returns the stored secret for a record keyed exactly by
// provider. Note the asymmetry with SaveAPIKey, which keys records by
// provider_keyName: this lookup only hits records whose unique key equals
// the bare provider name. The original backend had the same convention and
// existing data files depend on it.
func (s *Store) GetAPIKey(userID, provider string) (string, bool) {
	doc := s.load(s.apiKeysFile)
	record, ok := doc[userID][provider]
	if !ok {
		return "", false
	}
	key, ok := record["api_key"].(string)
	return key, ok
}

// GetAllAPIKeys returns every API key record for a user, keyed by unique
// key. Unknown users get an empty partition.
func (s *Store) GetAllAPIKeys(userID string) Partition {
	doc := s.load(s.apiKeysFile)
	partition, ok := doc[userID]
	if !ok {
		return Partition{}
	}
	return partition
}

// GetAPIKeysFormatted returns all of a user's keys as a list sorted by
// (provider, key_name), with missing name fields defaulted to "Unknown".
func (s *Store) GetAPIKeysFormatted(userID string) []FormattedAPIKey {
	partition := s.GetAllAPIKeys(userID)

	formatted := make([]FormattedAPIKey, 0, len(partition))
	for uniqueKey, record := range partition {
		formatted = append(formatted, FormattedAPIKey{
			UniqueKey:   uniqueKey,
			KeyName:     stringField(record, "key_name", "Unknown"),
			Provider:    stringField(record, "provider", "Unknown"),
			CreditLimit: record["credit_limit"],
			UpdatedAt:   record["updated_at"],
		})
	}

	sort.Slice(formatted, func(i, j int) bool {
		if formatted[i].Provider != formatted[j].Provider {
			return formatted[i].Provider < formatted[j].Provider
		}
		return formatted[i].KeyName < formatted[j].KeyName
	})
	return formatted
}

// GetAPIKeyByName looks up a record by its (provider, keyName) composite
// key. The returned copy is annotated with its own unique_key. Returns nil
// when absent.
func (s *Store) GetAPIKeyByName(userID, keyName, provider string) map[string]any {
	doc := s.load(s.apiKeysFile)
	uniqueKey := UniqueKey(provider, keyName)
	record, ok := doc[userID][uniqueKey]
	if !ok {
		return nil
	}

	out := make(map[string]any, len(record)+1)
	for k, v := range record {
		out[k] = v
	}
	out["unique_key"] = uniqueKey
	return out
}

// DeleteAPIKey removes the record keyed exactly by provider (same bare-key
// convention as GetAPIKey). The user partition is dropped when its last
// record goes. Returns false when nothing was deleted.
func (s *Store) DeleteAPIKey(userID, provider string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(s.apiKeysFile)
	partition, ok := doc[userID]
	if !ok {
		return false
	}
	if _, ok := partition[provider]; !ok {
		return false
	}

	delete(partition, provider)
	if len(partition) == 0 {
		delete(doc, userID)
	}

	if err := s.save(s.apiKeysFile, doc); err != nil {
		s.logger.Error("delete api key failed", "user_id", userID, "error", err)
		return false
	}
	return true
}

func stringField(record map[string]any, field, fallback string) string {
	if v, ok := record[field].(string); ok && v != "" {
		return v
	}
	return fallback
}
