package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

const (
	// RecordPrefix and RecordSuffix frame the timestamp in a record file name
	RecordPrefix = "deploy-"
	RecordSuffix = ".json"
)

// Well-known record fields. Everything else holding an address is a deployed contract.
const (
	fieldTimestamp = "timestamp"
	fieldDeployer  = "deployer"
	fieldDMTOwner  = "dmtOwner"
)

// DeploymentRecord is the result file written by the deploy script after a successful run.
// The set of contract fields varies by script version (vault, dmt, token, ...), so contracts
// are kept as a name -> address map rather than a fixed schema.
//
// A decoded record marshals back to the exact document it was decoded from, whatever its
// shape. The typed fields are a read-only view used for rendering and validation.
type DeploymentRecord struct {
	Timestamp int64             `json:"timestamp"`
	Deployer  string            `json:"deployer"`
	Contracts map[string]string `json:"-"`
	DMTOwner  string            `json:"dmtOwner,omitempty"`

	// Extra keeps fields that are neither well-known nor contract addresses, verbatim
	Extra map[string]json.RawMessage `json:"-"`

	raw json.RawMessage
}

// UnmarshalJSON keeps the document as-is and fills the typed view from the fields it
// recognizes. Only malformed JSON is an error: schema mismatches are left to Validate.
func (r *DeploymentRecord) UnmarshalJSON(data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("deployment record is not valid JSON")
	}

	*r = DeploymentRecord{
		Contracts: make(map[string]string),
		Extra:     make(map[string]json.RawMessage),
		raw:       slices.Clone(data),
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Not an object
		return nil
	}

	for key, value := range fields {
		switch key {
		case fieldTimestamp:
			if ts, ok := decodeTimestamp(value); ok {
				r.Timestamp = ts
				continue
			}
		case fieldDeployer:
			if json.Unmarshal(value, &r.Deployer) == nil {
				continue
			}
		case fieldDMTOwner:
			if json.Unmarshal(value, &r.DMTOwner) == nil {
				continue
			}
		default:
			var s string
			if err := json.Unmarshal(value, &s); err == nil && common.IsHexAddress(s) {
				r.Contracts[key] = s
				continue
			}
		}
		r.Extra[key] = value
	}

	return nil
}

// MarshalJSON returns the decoded document untouched. Records built in code are
// encoded from their fields, leaving out the well-known fields that are unset.
func (r DeploymentRecord) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}

	out := make(map[string]any, len(r.Contracts)+len(r.Extra)+3)
	for key, value := range r.Extra {
		out[key] = value
	}
	for name, addr := range r.Contracts {
		out[name] = addr
	}
	if r.Timestamp != 0 {
		out[fieldTimestamp] = r.Timestamp
	}
	if r.Deployer != "" {
		out[fieldDeployer] = r.Deployer
	}
	if r.DMTOwner != "" {
		out[fieldDMTOwner] = r.DMTOwner
	}
	return json.Marshal(out)
}

// IsObject reports whether the record is a JSON object, as deploy scripts write it
func (r *DeploymentRecord) IsObject() bool {
	if r.raw == nil {
		return true
	}
	trimmed := bytes.TrimSpace(r.raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// ContractNames returns the contract names in stable order
func (r *DeploymentRecord) ContractNames() []string {
	names := lo.Keys(r.Contracts)
	slices.Sort(names)
	return names
}

// CreatedAt converts the millisecond timestamp to a time
func (r *DeploymentRecord) CreatedAt() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// Validate checks that every address in the record is a well formed hex address
func (r *DeploymentRecord) Validate() error {
	if !r.IsObject() {
		return fmt.Errorf("record is not a JSON object")
	}
	for _, key := range []string{fieldTimestamp, fieldDeployer, fieldDMTOwner} {
		if _, ok := r.Extra[key]; ok {
			return fmt.Errorf("%s: unexpected value %s", key, r.Extra[key])
		}
	}
	if !common.IsHexAddress(r.Deployer) {
		return fmt.Errorf("deployer %q: not a hex address", r.Deployer)
	}
	if r.DMTOwner != "" && !common.IsHexAddress(r.DMTOwner) {
		return fmt.Errorf("dmtOwner %q: not a hex address", r.DMTOwner)
	}
	for _, name := range r.ContractNames() {
		if !common.IsHexAddress(r.Contracts[name]) {
			return fmt.Errorf("contract %s %q: not a hex address", name, r.Contracts[name])
		}
	}
	return nil
}

// RecordFileName returns the file name a record with the given timestamp is stored under
func RecordFileName(timestamp int64) string {
	return RecordPrefix + strconv.FormatInt(timestamp, 10) + RecordSuffix
}

// IsRecordFileName reports whether name follows the deploy-<...>.json convention
func IsRecordFileName(name string) bool {
	return strings.HasPrefix(name, RecordPrefix) && strings.HasSuffix(name, RecordSuffix)
}

// ParseRecordFileName extracts the embedded millisecond timestamp from a record file name
func ParseRecordFileName(name string) (int64, bool) {
	if !IsRecordFileName(name) || len(name) < len(RecordPrefix)+len(RecordSuffix) {
		return 0, false
	}
	ts, err := strconv.ParseInt(strings.TrimSuffix(strings.TrimPrefix(name, RecordPrefix), RecordSuffix), 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}

// CompareRecordFileNames orders record file names oldest first.
// Names without a numeric timestamp rank before all others, in byte order. Names with one
// compare numerically, then by byte order.
func CompareRecordFileNames(a, b string) int {
	ta, okA := ParseRecordFileName(a)
	tb, okB := ParseRecordFileName(b)
	switch {
	case okA != okB:
		if okA {
			return 1
		}
		return -1
	case okA && ta != tb:
		if ta < tb {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// decodeTimestamp accepts a JSON number, fractional milliseconds truncated, or a
// string holding an integer
func decodeTimestamp(value json.RawMessage) (int64, bool) {
	var str string
	if json.Unmarshal(value, &str) == nil {
		ts, err := strconv.ParseInt(str, 10, 64)
		return ts, err == nil
	}

	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return 0, false
	}
	if ts, err := n.Int64(); err == nil {
		return ts, true
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return int64(f), true
}
