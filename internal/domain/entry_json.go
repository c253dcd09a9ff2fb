package domain

import (
	"encoding/json"
	"fmt"
)

type entryWire struct {
	BaseEntry
	Type    EntryType       `json:"type"`
	Details json.RawMessage `json:"details"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entryWire{BaseEntry: e.BaseEntry, Type: e.Type(), Details: details})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var w entryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	details, err := DecodeDetails(w.Type, w.Details)
	if err != nil {
		return err
	}
	e.BaseEntry = w.BaseEntry
	e.Details = details
	return nil
}

// DecodeDetails decodes the variant payload for the given discriminant.
func DecodeDetails(t EntryType, raw []byte) (Details, error) {
	if len(raw) == 0 || string(raw) == "null" {
		raw = []byte("{}")
	}
	switch t {
	case EntryTypeMember:
		var d MemberDetails
		err := json.Unmarshal(raw, &d)
		return d, err
	case EntryTypeVendor:
		var d VendorDetails
		err := json.Unmarshal(raw, &d)
		return d, err
	case EntryTypeStaff:
		var d StaffDetails
		err := json.Unmarshal(raw, &d)
		return d, err
	case EntryTypeSecurity:
		var d SecurityDetails
		err := json.Unmarshal(raw, &d)
		return d, err
	}
	return nil, fmt.Errorf("unknown entry type %q", t)
}
