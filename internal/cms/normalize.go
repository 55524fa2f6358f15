package cms

// The content API has returned entries in two historically different shapes:
// a legacy one nesting every field under an "attributes" map and a flat one
// where fields are siblings of "id". This file is the single point that
// absorbs that variability; everything downstream works with flat Records.

// envelopeKind discriminates the two entry shapes.
type envelopeKind int

const (
	envelopeFlat envelopeKind = iota
	envelopeWrapped
)

func classify(item map[string]any) envelopeKind {
	if _, ok := item["attributes"].(map[string]any); ok {
		return envelopeWrapped
	}
	return envelopeFlat
}

// Normalize unwraps a decoded response body. The result is either a single
// Record or an ordered list, depending on what sat under "data". A missing or
// null "data" field yields nil results rather than an error; malformed values
// pass through untouched.
func Normalize(body map[string]any, mediaHost string) (one Record, list []Record, isList bool) {
	if body == nil {
		return nil, nil, false
	}
	switch data := body["data"].(type) {
	case []any:
		return nil, normalizeList(data, mediaHost), true
	case map[string]any:
		return NormalizeItem(data, mediaHost), nil, false
	}
	return nil, nil, false
}

// NormalizeItem flattens a single raw entry into a Record and rewrites any
// media URLs it carries to absolute form.
func NormalizeItem(item map[string]any, mediaHost string) Record {
	if item == nil {
		return nil
	}

	var base Record
	switch classify(item) {
	case envelopeWrapped:
		attrs := item["attributes"].(map[string]any)
		base = make(Record, len(attrs)+1)
		base["id"] = item["id"]
		for k, v := range attrs {
			base[k] = v
		}
	default:
		base = make(Record, len(item))
		for k, v := range item {
			base[k] = v
		}
	}

	for key, value := range base {
		switch v := value.(type) {
		case map[string]any:
			// Legacy relation/media envelope: {data: {...}} or {data: [...]}.
			switch inner := v["data"].(type) {
			case []any:
				base[key] = normalizeRelatedList(inner, mediaHost)
			case map[string]any:
				base[key] = normalizeRelated(inner, mediaHost)
			default:
				// Already-flat media object.
				base[key] = resolveMediaField(v, mediaHost)
			}
		case []any:
			base[key] = resolveMediaSlice(v, mediaHost)
		}
	}

	return base
}

func normalizeList(data []any, mediaHost string) []Record {
	out := make([]Record, 0, len(data))
	for _, item := range data {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, NormalizeItem(m, mediaHost))
	}
	return out
}

// normalizeRelated unwraps a relation/media node. Unlike top-level entries,
// an unwrapped node that is itself a media record carries its url directly,
// so resolve it here.
func normalizeRelated(item map[string]any, mediaHost string) Record {
	rec := NormalizeItem(item, mediaHost)
	if u, ok := rec["url"].(string); ok {
		rec["url"] = ResolveMediaURL(mediaHost, u)
	}
	return rec
}

func normalizeRelatedList(data []any, mediaHost string) []Record {
	out := make([]Record, 0, len(data))
	for _, item := range data {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, normalizeRelated(m, mediaHost))
	}
	return out
}

// resolveMediaField rewrites the "url" field of a flat media object in place.
// Objects without a url are returned unchanged.
func resolveMediaField(v map[string]any, mediaHost string) map[string]any {
	if u, ok := v["url"].(string); ok {
		v["url"] = ResolveMediaURL(mediaHost, u)
	}
	return v
}

func resolveMediaSlice(items []any, mediaHost string) []any {
	for i, item := range items {
		if m, ok := item.(map[string]any); ok {
			if _, hasURL := m["url"]; hasURL {
				items[i] = resolveMediaField(m, mediaHost)
			}
		}
	}
	return items
}
