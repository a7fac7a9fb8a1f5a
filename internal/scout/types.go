// Package scout holds the user-authored entities of the scouting
// dashboard: location lists, scouting trips, attachments, comments,
// hidden POIs, point categories, and drawn shapes. Everything here is
// plain data persisted as JSON blobs; behavior lives in the store layer.
package scout

// Trip statuses. Transitions are linear: draft -> submitted -> approved
// or rejected. Approved and rejected are terminal.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// ListItem references a POI by its derived placeId plus denormalized
// display fields, so a list renders without re-resolving the source data.
type ListItem struct {
	PlaceID string  `json:"placeId"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
	AddedAt string  `json:"addedAt"`
}

// DrawnAreaItem references a user-drawn shape attached to a list.
type DrawnAreaItem struct {
	AreaID  string `json:"areaId"`
	Name    string `json:"name"`
	Kind    string `json:"kind"` // polygon|circle|rectangle
	AddedAt string `json:"addedAt"`
}

type VisitPlan struct {
	Date  string `json:"date"`
	Notes string `json:"notes,omitempty"`
}

type LocationList struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CreatedAt   string          `json:"createdAt"`
	Items       []ListItem      `json:"items"`
	DrawnAreas  []DrawnAreaItem `json:"drawnAreas"`
	VisitPlan   *VisitPlan      `json:"visitPlan,omitempty"`
	Attachments []Attachment    `json:"attachments,omitempty"`
}

// Attachment is an uploaded file stored inline as base64. Size reflects
// the pre-compression original, not the stored payload.
type Attachment struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Data          string `json:"data"`
	ThumbnailData string `json:"thumbnailData,omitempty"`
	Size          int64  `json:"size"`
	AddedAt       string `json:"addedAt"`
}

type ChecklistItem struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	IsChecked bool   `json:"isChecked"`
	Notes     string `json:"notes,omitempty"`
	IsDefault bool   `json:"isDefault"`
}

// LinkedItem is a reference from a scouting trip to a POI or drawn area.
type LinkedItem struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Kind string  `json:"kind"` // poi|area
	Lat  float64 `json:"lat,omitempty"`
	Lng  float64 `json:"lng,omitempty"`
}

// LeaseBrief captures the commercial terms gathered on site.
type LeaseBrief struct {
	AskingRent      float64 `json:"askingRent,omitempty"`
	SizeSqm         float64 `json:"sizeSqm,omitempty"`
	LeaseTermMonths int     `json:"leaseTermMonths,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

type ScoutingTrip struct {
	ID             string          `json:"id"`
	CityID         string          `json:"cityId"`
	Status         string          `json:"status"`
	Property       *LinkedItem     `json:"property"`
	RelatedPlaces  []LinkedItem    `json:"relatedPlaces"`
	Checklist      []ChecklistItem `json:"checklist"`
	Attachments    []Attachment    `json:"attachments"`
	Lease          LeaseBrief      `json:"lease"`
	SubmittedAt    string          `json:"submittedAt,omitempty"`
	ReviewedAt     string          `json:"reviewedAt,omitempty"`
	ReviewedBy     string          `json:"reviewedBy,omitempty"`
	RejectionNotes string          `json:"rejectionNotes,omitempty"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

type PoiComment struct {
	ID         string `json:"id"`
	EntityID   string `json:"entityId"`
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
	CreatedAt  string `json:"createdAt"`
}

// PointCategory labels custom drawn points. System categories ship with
// the app and cannot be deleted.
type PointCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	IsSystem  bool   `json:"isSystem"`
	CreatedAt string `json:"createdAt"`
}

// Shape is the metadata for a user-drawn point or area on the map.
// Geometry for non-point kinds is kept as raw GeoJSON text so the drawing
// plugin round-trips it untouched.
type Shape struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"` // point|polygon|circle|rectangle
	CategoryID string  `json:"categoryId,omitempty"`
	Lat        float64 `json:"lat,omitempty"`
	Lng        float64 `json:"lng,omitempty"`
	Geometry   string  `json:"geometry,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

// CanTransition reports whether a trip may move from one status to another.
func CanTransition(from, to string) bool {
	switch to {
	case StatusSubmitted:
		// Re-submitting an already submitted trip is allowed and
		// idempotent on shape; only the timestamp refreshes.
		return from == StatusDraft || from == StatusSubmitted
	case StatusApproved, StatusRejected:
		return from == StatusSubmitted
	}
	return false
}

// HasLinked reports whether id is already referenced by the trip, either
// as the property or among related places.
func (t *ScoutingTrip) HasLinked(id string) bool {
	if t.Property != nil && t.Property.ID == id {
		return true
	}
	for _, p := range t.RelatedPlaces {
		if p.ID == id {
			return true
		}
	}
	return false
}
