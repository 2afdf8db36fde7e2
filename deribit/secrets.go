// Copyright (c) 2025 cdrappi

package deribit

import (
	"encoding/json"
	"os"
)

// Credentials holds the API access key and secret. Keys can be created at
// the exchange's account page.
type Credentials struct {
	Key    string
	Secret string
}

// CredentialsFromFile reads API credentials from a JSON file.
func CredentialsFromFile(fpath string) (*Credentials, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}
	s := new(Credentials)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}
