package content

// Story is the optional interactive narrative attached to a concept.
// Characters maps a character name to its role in the story; Mapping
// translates story terms back to the technical terms they stand for.
// Key order in both maps carries no meaning.
type Story struct {
	Title      string            `json:"title"`
	Scene      string            `json:"scene"`
	Problem    string            `json:"problem"`
	Solution   string            `json:"solution"`
	Characters map[string]string `json:"characters,omitempty"`
	Mapping    map[string]string `json:"mapping,omitempty"`
	RealWorld  string            `json:"realWorld"`
}

// StoryFromMap builds a Story from untrusted decoded JSON, typically the
// parsed output of an LLM response. Missing or mistyped fields fall back
// to the provided default story field-by-field, so a partially valid
// response still yields a complete story.
func StoryFromMap(m map[string]any, fallback Story) Story {
	s := fallback
	if v, ok := m["title"].(string); ok && v != "" {
		s.Title = v
	}
	if v, ok := m["scene"].(string); ok && v != "" {
		s.Scene = v
	}
	if v, ok := m["problem"].(string); ok && v != "" {
		s.Problem = v
	}
	if v, ok := m["solution"].(string); ok && v != "" {
		s.Solution = v
	}
	if v, ok := m["realWorld"].(string); ok && v != "" {
		s.RealWorld = v
	}
	if chars := stringMap(m["characters"]); len(chars) > 0 {
		s.Characters = chars
	}
	if mapping := stringMap(m["mapping"]); len(mapping) > 0 {
		s.Mapping = mapping
	}
	return s
}

// stringMap extracts a map[string]string from a decoded JSON value,
// skipping entries whose values are not strings.
func stringMap(v any) map[string]string {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, val := range raw {
		if s, ok := val.(string); ok {
			out[k] = s
		}
	}
	return out
}
