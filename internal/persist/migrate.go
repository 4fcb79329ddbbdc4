package persist

import (
	"encoding/json"
	"fmt"

	"github.com/five82/streamcard/internal/transform"
)

// CurrentVersion is the schema version Encode writes.
const CurrentVersion = 3

// LegacySpecialText is what the old "special" tag rendered as.
const LegacySpecialText = "???"

// migrations[i] upgrades a document from version i to i+1.
var migrations = []func(doc map[string]any) error{
	defaultImageTransform,
	defaultBackgroundTransform,
	specialTagToCustom,
}

func migrate(doc map[string]any) error {
	version, err := docVersion(doc)
	if err != nil {
		return err
	}
	for v := version; v < len(migrations); v++ {
		if err := migrations[v](doc); err != nil {
			return fmt.Errorf("migrate v%d to v%d: %w", v, v+1, err)
		}
	}
	if version < CurrentVersion {
		doc["version"] = json.Number(fmt.Sprint(CurrentVersion))
	}
	return nil
}

func docVersion(doc map[string]any) (int, error) {
	raw, ok := doc["version"]
	if !ok || raw == nil {
		return 0, nil
	}
	n, ok := raw.(json.Number)
	if !ok {
		return 0, fmt.Errorf("version is %T, want number", raw)
	}
	v, err := n.Int64()
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid version %q", n)
	}
	return int(v), nil
}

func defaultImageTransform(doc map[string]any) error {
	if falsy(doc["imageTransform"]) {
		doc["imageTransform"] = transform.DefaultImage()
	}
	return nil
}

func defaultBackgroundTransform(doc map[string]any) error {
	if falsy(doc["backgroundTransform"]) {
		doc["backgroundTransform"] = transform.DefaultBackground()
	}
	return nil
}

// specialTagToCustom rewrites tags.special into a custom tag. Shapes it does
// not recognise are left for the decoder to reject.
func specialTagToCustom(doc map[string]any) error {
	week, ok := doc["schedule"].(map[string]any)
	if !ok {
		return nil
	}
	for _, day := range week {
		entries, ok := day.([]any)
		if !ok {
			continue
		}
		for _, e := range entries {
			entry, ok := e.(map[string]any)
			if !ok {
				continue
			}
			tags, ok := entry["tags"].(map[string]any)
			if !ok {
				continue
			}
			special, _ := tags["special"].(bool)
			delete(tags, "special")
			if !special {
				continue
			}
			tags["custom"] = true
			if text, _ := tags["customText"].(string); text == "" {
				tags["customText"] = LegacySpecialText
			}
		}
	}
	return nil
}

func falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	}
	return false
}
