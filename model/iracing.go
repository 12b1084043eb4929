package model

// License category ids as used by the iRacing Data API.
const (
	CategoryOval = 1
	CategoryRoad = 2
)

// License is one discipline's license block inside a member summary.
type License struct {
	CategoryID   int     `json:"category_id"`
	LicenseLevel int     `json:"license_level"`
	SafetyRating float64 `json:"safety_rating"`
	IRating      int     `json:"irating"`
}

// MemberSummary is the stats bundle returned for a single customer id.
type MemberSummary struct {
	CustID      int       `json:"cust_id"`
	DisplayName string    `json:"display_name"`
	Licenses    []License `json:"licenses"`
}

// License returns the license for the given category, if present.
func (m *MemberSummary) License(categoryID int) (License, bool) {
	for _, l := range m.Licenses {
		if l.CategoryID == categoryID {
			return l, true
		}
	}
	return License{}, false
}

// DriverSearchResult is one candidate from a driver lookup.
type DriverSearchResult struct {
	CustID      int    `json:"cust_id"`
	DisplayName string `json:"display_name"`
}

// RecentRace is one entry from a member's recent race history.
type RecentRace struct {
	SubsessionID   int    `json:"subsession_id"`
	SeriesName     string `json:"series_name"`
	Track          Track  `json:"track"`
	StartTime      string `json:"start_time"`
	FinishPosition int    `json:"finish_position"`
	Incidents      int    `json:"incidents"`
}

// Track identifies the circuit a race ran on.
type Track struct {
	TrackName string `json:"track_name"`
}
