// Copyright (c) 2025 cdrappi

package deribit

import (
	"crypto/sha256"
	"encoding/base64"
	"sort"
	"strconv"
	"strings"
)

// sign computes the signature for a private endpoint call. The signing
// string is the key-sorted "k=v" join of the request parameters merged with
// the credentials, the action and the millisecond timestamp. Callers must
// not use the reserved "_", "_ackey", "_acsec" or "_action" parameter names.
func (c *Client) sign(action string, params Params, tstamp int64) string {
	merged := Params{
		"_":       Int(tstamp),
		"_ackey":  String(c.key),
		"_acsec":  String(c.secret),
		"_action": String(action),
	}
	for k, v := range params {
		merged[k] = v
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+merged[k].text())
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "&")))
	digest := base64.StdEncoding.EncodeToString(sum[:])
	return c.key + "." + strconv.FormatInt(tstamp, 10) + "." + digest
}
