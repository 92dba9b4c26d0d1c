package service

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/scratchboard/dashboard/internal/dashboard"
)

// Bounds of the generated daily statistics.
const (
	minBalance = 1000.0
	maxBalance = 50000.0
	minWinners = 50
	maxWinners = 500
)

// Refresher regenerates the daily statistics once per calendar day. The
// clock, random source and time zone are injectable for tests.
type Refresher struct {
	now func() time.Time
	rnd *rand.Rand
	loc *time.Location
}

// NewRefresher uses the wall clock and a time-seeded random source.
func NewRefresher(loc *time.Location) *Refresher {
	seed := uint64(time.Now().UnixNano())
	return NewRefresherWith(loc, time.Now, rand.New(rand.NewPCG(seed, seed>>1|1)))
}

// NewRefresherWith takes an explicit clock and random source.
func NewRefresherWith(loc *time.Location, now func() time.Time, rnd *rand.Rand) *Refresher {
	if loc == nil {
		loc = time.Local
	}
	return &Refresher{now: now, rnd: rnd, loc: loc}
}

// Today returns the current calendar date in the refresher's time zone.
func (r *Refresher) Today() string {
	return r.now().In(r.loc).Format(dashboard.DateLayout)
}

// Stale reports whether dd was last generated before today. A missing or
// unreadable date counts as stale; a date in the future does not.
func (r *Refresher) Stale(dd dashboard.DailyData) bool {
	last, ok := dd.LastUpdatedDate(r.loc)
	if !ok {
		return true
	}
	n := r.now().In(r.loc)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, r.loc)
	return last.Before(today)
}

// Regenerate draws new statistics into doc and stamps today's date.
func (r *Refresher) Regenerate(doc *dashboard.Document) {
	dd := &doc.DailyData
	balance := minBalance + r.rnd.Float64()*(maxBalance-minBalance)
	dd.Balance = math.Round(balance*100) / 100
	dd.Winners = minWinners + r.rnd.IntN(maxWinners-minWinners+1)
	dd.GoodMoment = r.rnd.IntN(2) == 1
	if n := len(doc.ScratchLinks); n > 0 {
		id := doc.ScratchLinks[r.rnd.IntN(n)].ID
		dd.RecommendedLinkID = &id
	} else {
		dd.RecommendedLinkID = nil
	}
	today := r.Today()
	dd.LastUpdated = &today
}

// Apply regenerates doc when stale and reports whether it did.
func (r *Refresher) Apply(doc *dashboard.Document) bool {
	if !r.Stale(doc.DailyData) {
		return false
	}
	r.Regenerate(doc)
	return true
}
