package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Wire names of the typed link fields.
const (
	fieldID        = "id"
	fieldHouseName = "house_name"
	fieldLink      = "link"
	fieldStatus    = "status"
	fieldIsRec     = "is_recommended"
)

// LinkEntry is one promotional link. Fields other than the four typed ones
// are kept verbatim in Extra and written back next to them.
type LinkEntry struct {
	ID        string
	HouseName string
	Link      string
	Status    string
	Extra     map[string]json.RawMessage
}

// NewLinkID returns a fresh random identifier.
func NewLinkID() string {
	return uuid.NewString()
}

// Clone returns a copy that shares no Extra storage with l.
func (l LinkEntry) Clone() LinkEntry {
	out := l
	if l.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(l.Extra))
		for k, v := range l.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

func (l LinkEntry) fields() map[string]interface{} {
	m := make(map[string]interface{}, len(l.Extra)+4)
	for k, v := range l.Extra {
		m[k] = v
	}
	m[fieldID] = l.ID
	m[fieldHouseName] = l.HouseName
	m[fieldLink] = l.Link
	m[fieldStatus] = l.Status
	return m
}

// MarshalJSON writes the typed fields and Extra as one flat object.
func (l LinkEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.fields())
}

// UnmarshalJSON splits an object into typed fields and Extra, dropping is_recommended.
func (l *LinkEntry) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("link entry must be an object")
	}
	var out LinkEntry
	targets := map[string]*string{
		fieldID:        &out.ID,
		fieldHouseName: &out.HouseName,
		fieldLink:      &out.Link,
		fieldStatus:    &out.Status,
	}
	for k, v := range raw {
		if dst, ok := targets[k]; ok {
			if err := decodeString(k, v, dst); err != nil {
				return err
			}
			continue
		}
		if k == fieldIsRec {
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]json.RawMessage)
		}
		out.Extra[k] = v
	}
	*l = out
	return nil
}

func decodeString(field string, v json.RawMessage, dst *string) error {
	if isNull(v) {
		*dst = ""
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("field %q must be a string", field)
	}
	return nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// DashboardLink is a link as shown on the public dashboard.
type DashboardLink struct {
	LinkEntry
	IsRecommended bool
}

// MarshalJSON adds is_recommended to the link's fields.
func (d DashboardLink) MarshalJSON() ([]byte, error) {
	m := d.LinkEntry.fields()
	m[fieldIsRec] = d.IsRecommended
	return json.Marshal(m)
}

// LinkPatch is the caller-supplied body of a link create or update.
// Typed fields are nil when absent and point at "" when sent as null;
// "id" is never accepted from callers.
type LinkPatch struct {
	HouseName *string
	Link      *string
	Status    *string
	Extra     map[string]json.RawMessage
}

// UnmarshalJSON records which typed fields were sent and keeps the rest in Extra.
func (p *LinkPatch) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var out LinkPatch
	targets := map[string]**string{
		fieldHouseName: &out.HouseName,
		fieldLink:      &out.Link,
		fieldStatus:    &out.Status,
	}
	for k, v := range raw {
		if dst, ok := targets[k]; ok {
			var s string
			if isNull(v) {
				*dst = &s
				continue
			}
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("field %q must be a string", k)
			}
			*dst = &s
			continue
		}
		if k == fieldID || k == fieldIsRec {
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]json.RawMessage)
		}
		out.Extra[k] = v
	}
	*p = out
	return nil
}

// Empty reports whether the patch carries nothing to apply.
func (p LinkPatch) Empty() bool {
	return p.HouseName == nil && p.Link == nil && p.Status == nil && len(p.Extra) == 0
}

// MissingRequired lists the required create fields absent from the body.
// Empty values count as present.
func (p LinkPatch) MissingRequired() []string {
	var missing []string
	if p.HouseName == nil {
		missing = append(missing, fieldHouseName)
	}
	if p.Link == nil {
		missing = append(missing, fieldLink)
	}
	if p.Status == nil {
		missing = append(missing, fieldStatus)
	}
	return missing
}

// Apply shallow-merges the patch into l. The id is left untouched.
func (p LinkPatch) Apply(l *LinkEntry) {
	if p.HouseName != nil {
		l.HouseName = *p.HouseName
	}
	if p.Link != nil {
		l.Link = *p.Link
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	for k, v := range p.Extra {
		if l.Extra == nil {
			l.Extra = make(map[string]json.RawMessage)
		}
		l.Extra[k] = append(json.RawMessage(nil), v...)
	}
}

// NewLinkEntry builds a link from a create patch with a fresh id.
func NewLinkEntry(p LinkPatch) LinkEntry {
	l := LinkEntry{ID: NewLinkID()}
	p.Apply(&l)
	return l
}
