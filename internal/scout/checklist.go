package scout

// DefaultChecklistQuestions is the fixed on-site due-diligence question
// set seeded into every new scouting trip. Seeded items carry
// IsDefault=true and cannot be deleted.
var DefaultChecklistQuestions = []string{
	"Is the storefront visible from the main footfall axis?",
	"What is the condition of the facade and entrance?",
	"Are there direct competitors within a two-minute walk?",
	"How is the noise level at peak hours?",
	"Is there step-free access for deliveries?",
	"What transit stops serve the block?",
	"Does the interior need structural work?",
	"Are neighboring units occupied?",
}

// DefaultChecklist builds the seeded checklist for a new trip. IDs are
// assigned by the caller so the store controls id generation.
func DefaultChecklist(newID func() string) []ChecklistItem {
	items := make([]ChecklistItem, len(DefaultChecklistQuestions))
	for i, q := range DefaultChecklistQuestions {
		items[i] = ChecklistItem{
			ID:        newID(),
			Question:  q,
			IsDefault: true,
		}
	}
	return items
}

// SystemCategories are the built-in point categories every workspace
// starts with. They are protected from deletion.
var SystemCategories = []PointCategory{
	{ID: "cat-property", Name: "Property", Color: "#d33", IsSystem: true},
	{ID: "cat-competitor", Name: "Competitor", Color: "#36c", IsSystem: true},
	{ID: "cat-landmark", Name: "Landmark", Color: "#393", IsSystem: true},
}
