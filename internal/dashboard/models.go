package dashboard

import "time"

// DateLayout is the on-disk format of DailyData.LastUpdated.
const DateLayout = "2006-01-02"

// DefaultBestTimes is the best_times text of a freshly initialized document.
const DefaultBestTimes = "Manhã (9h-11h), Noite (20h-22h)"

// Document is the whole persisted state. It is always read and written as one unit.
type Document struct {
	ScratchLinks     []LinkEntry      `json:"scratch_links"`
	DailyData        DailyData        `json:"daily_data"`
	AdminCredentials AdminCredentials `json:"admin_credentials"`
}

// DailyData is the block of fictitious statistics shown on the dashboard.
type DailyData struct {
	LastUpdated       *string `json:"last_updated"`
	Balance           float64 `json:"balance"`
	Winners           int     `json:"winners"`
	BestTimes         string  `json:"best_times"`
	GoodMoment        bool    `json:"good_moment"`
	RecommendedLinkID *string `json:"recommended_link_id"`
}

// AdminCredentials are written once when the document is created.
type AdminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewDocument returns the default document used when no state exists yet.
func NewDocument(creds AdminCredentials, seed []LinkEntry) *Document {
	links := make([]LinkEntry, 0, len(seed))
	links = append(links, seed...)
	return &Document{
		ScratchLinks: links,
		DailyData: DailyData{
			BestTimes: DefaultBestTimes,
		},
		AdminCredentials: creds,
	}
}

// Normalize replaces a null link list with an empty one so it encodes as [].
func (d *Document) Normalize() {
	if d.ScratchLinks == nil {
		d.ScratchLinks = []LinkEntry{}
	}
}

// FindLink returns the index of the link with id, or -1.
func (d *Document) FindLink(id string) int {
	for i := range d.ScratchLinks {
		if d.ScratchLinks[i].ID == id {
			return i
		}
	}
	return -1
}

// HasLink reports whether a link with id exists.
func (d *Document) HasLink(id string) bool {
	return d.FindLink(id) >= 0
}

// Clone returns a deep copy so callers never alias stored state.
func (d *Document) Clone() *Document {
	out := *d
	out.ScratchLinks = make([]LinkEntry, len(d.ScratchLinks))
	for i, l := range d.ScratchLinks {
		out.ScratchLinks[i] = l.Clone()
	}
	out.DailyData = d.DailyData.Clone()
	return &out
}

func (dd DailyData) Clone() DailyData {
	out := dd
	if dd.LastUpdated != nil {
		v := *dd.LastUpdated
		out.LastUpdated = &v
	}
	if dd.RecommendedLinkID != nil {
		v := *dd.RecommendedLinkID
		out.RecommendedLinkID = &v
	}
	return out
}

// LastUpdatedDate parses LastUpdated. ok is false when absent or malformed.
func (dd DailyData) LastUpdatedDate(loc *time.Location) (time.Time, bool) {
	if dd.LastUpdated == nil {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, *dd.LastUpdated, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsRecommended reports whether id is the current recommendation.
func (dd DailyData) IsRecommended(id string) bool {
	return dd.RecommendedLinkID != nil && *dd.RecommendedLinkID == id
}

// View is the public dashboard payload.
type View struct {
	ScratchLinks []DashboardLink `json:"scratch_links"`
	DailyData    DailyData       `json:"daily_data"`
	TotalHouses  int             `json:"total_houses"`
}

// NewView annotates every link with its recommendation flag.
func NewView(d *Document) *View {
	links := make([]DashboardLink, 0, len(d.ScratchLinks))
	for _, l := range d.ScratchLinks {
		links = append(links, DashboardLink{LinkEntry: l.Clone(), IsRecommended: d.DailyData.IsRecommended(l.ID)})
	}
	return &View{
		ScratchLinks: links,
		DailyData:    d.DailyData.Clone(),
		TotalHouses:  len(d.ScratchLinks),
	}
}

// StringPtr is a small helper for optional string fields.
func StringPtr(s string) *string { return &s }
