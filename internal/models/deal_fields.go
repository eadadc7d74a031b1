package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AddressList is a set of shipping address ids stored as a bracketed,
// comma-joined list ("[3,7,9]"). The format predates deal_links and is not
// JSON-encoded on write.
type AddressList []uint

func (a AddressList) Value() (driver.Value, error) {
	var b strings.Builder
	b.WriteByte('[')
	for i, id := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	b.WriteByte(']')
	return b.String(), nil
}

func (a *AddressList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("available_addresses: unsupported type %T", src)
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		*a = nil
		return nil
	}

	var ids []uint
	if err := json.Unmarshal([]byte(trimmed), &ids); err != nil {
		return fmt.Errorf("available_addresses: %w", err)
	}
	*a = ids
	return nil
}

// DealLink is one entry of a deal's link list. Its keys are free-form.
type DealLink map[string]interface{}

// DealLinks is stored as a JSON array, or NULL when the list is empty.
type DealLinks []DealLink

func (l DealLinks) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("deal_links: %w", err)
	}
	return string(b), nil
}

func (l *DealLinks) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = DealLinks{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("deal_links: unsupported type %T", src)
	}

	var links DealLinks
	if err := json.Unmarshal(raw, &links); err != nil {
		return fmt.Errorf("deal_links: %w", err)
	}
	if links == nil {
		links = DealLinks{}
	}
	*l = links
	return nil
}

// MarshalJSON renders an absent list as [] rather than null.
func (l DealLinks) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]DealLink(l))
}
