package dashboard

import "encoding/json"

// OptionalID distinguishes an absent field from an explicit null.
type OptionalID struct {
	Set   bool
	Value *string
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if isNull(b) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// DailyDataPatch holds the admin-updatable daily fields. last_updated is not
// among them; anything outside this list is ignored.
type DailyDataPatch struct {
	Balance           *float64   `json:"balance"`
	Winners           *int       `json:"winners"`
	BestTimes         *string    `json:"best_times"`
	GoodMoment        *bool      `json:"good_moment"`
	RecommendedLinkID OptionalID `json:"recommended_link_id"`

	// number of keys in the body, allow-listed or not
	keys int
}

// UnmarshalJSON decodes the allow-listed fields and counts every key sent.
func (p *DailyDataPatch) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	type plain DailyDataPatch
	var out plain
	if raw != nil {
		if err := json.Unmarshal(b, &out); err != nil {
			return err
		}
	}
	out.keys = len(raw)
	*p = DailyDataPatch(out)
	return nil
}

// NoFields reports whether the body was null or an empty object.
func (p DailyDataPatch) NoFields() bool {
	return p.keys == 0 && !p.hasAllowed()
}

// Empty reports whether no allow-listed field was supplied.
func (p DailyDataPatch) Empty() bool {
	return !p.hasAllowed()
}

func (p DailyDataPatch) hasAllowed() bool {
	return !(p.Balance == nil && p.Winners == nil && p.BestTimes == nil &&
		p.GoodMoment == nil && !p.RecommendedLinkID.Set)
}

// Apply writes the supplied fields into dd.
func (p DailyDataPatch) Apply(dd *DailyData) {
	if p.Balance != nil {
		dd.Balance = *p.Balance
	}
	if p.Winners != nil {
		dd.Winners = *p.Winners
	}
	if p.BestTimes != nil {
		dd.BestTimes = *p.BestTimes
	}
	if p.GoodMoment != nil {
		dd.GoodMoment = *p.GoodMoment
	}
	if p.RecommendedLinkID.Set {
		if p.RecommendedLinkID.Value == nil {
			dd.RecommendedLinkID = nil
		} else {
			v := *p.RecommendedLinkID.Value
			dd.RecommendedLinkID = &v
		}
	}
}
