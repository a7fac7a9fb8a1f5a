package server

// Blob migrations. Each persisted envelope carries a version integer;
// on load the steps below are applied in order until the envelope is at
// the current version. Steps are pure map transforms so each one is
// independently testable. Policy is best-effort and non-destructive:
// missing fields default to empty collections, unparseable records are
// dropped, and there is no rollback.

// Current blob versions.
const (
	listsVersion = 2
	tripsVersion = 2
	blobVersion  = 1 // everything else
)

type migrationStep struct {
	to int
	// needed, when set, forces the step even if the stored version
	// claims to be current. Used for legacy shapes that predate
	// version stamping, e.g. trips still carrying a flat linkedItems
	// array.
	needed func(env map[string]any) bool
	up     func(env map[string]any) map[string]any
}

func envVersion(env map[string]any) int {
	if v, ok := env["version"].(float64); ok && v >= 1 {
		return int(v)
	}
	return 1
}

func applyMigrations(env map[string]any, current int, steps []migrationStep) map[string]any {
	v := envVersion(env)
	for _, st := range steps {
		if v < st.to || (st.needed != nil && st.needed(env)) {
			env = st.up(env)
			if v < st.to {
				v = st.to
			}
		}
	}
	if v < current {
		v = current
	}
	env["version"] = v
	return env
}

var listMigrations = []migrationStep{
	{to: 2, up: listsV1toV2},
}

// listsV1toV2 introduces drawnAreas; v1 lists had items only.
func listsV1toV2(env map[string]any) map[string]any {
	records, _ := env["lists"].([]any)
	for _, r := range records {
		rec, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := rec["drawnAreas"]; !ok {
			rec["drawnAreas"] = []any{}
		}
		if _, ok := rec["items"]; !ok {
			rec["items"] = []any{}
		}
	}
	return env
}

var tripMigrations = []migrationStep{
	{to: 2, needed: tripsHaveLinkedItems, up: tripsV1toV2},
}

func tripsHaveLinkedItems(env map[string]any) bool {
	records, _ := env["trips"].([]any)
	for _, r := range records {
		if rec, ok := r.(map[string]any); ok {
			if _, legacy := rec["linkedItems"]; legacy {
				return true
			}
		}
	}
	return false
}

// tripsV1toV2 collapses the flat linkedItems array into the
// property/relatedPlaces split: the first linked item becomes the
// property, the rest related places. A record that already defines
// property (even as null) keeps it; the step then only defaults
// relatedPlaces, checklist, and attachments to empty collections.
func tripsV1toV2(env map[string]any) map[string]any {
	records, _ := env["trips"].([]any)
	for _, r := range records {
		rec, ok := r.(map[string]any)
		if !ok {
			continue
		}

		if _, hasProperty := rec["property"]; !hasProperty {
			linked, _ := rec["linkedItems"].([]any)
			if len(linked) > 0 {
				rec["property"] = linked[0]
				rec["relatedPlaces"] = append([]any{}, linked[1:]...)
			} else {
				rec["property"] = nil
			}
		}
		delete(rec, "linkedItems")

		if _, ok := rec["relatedPlaces"]; !ok {
			rec["relatedPlaces"] = []any{}
		}
		if _, ok := rec["checklist"]; !ok {
			rec["checklist"] = []any{}
		}
		if _, ok := rec["attachments"]; !ok {
			rec["attachments"] = []any{}
		}
	}
	return env
}
