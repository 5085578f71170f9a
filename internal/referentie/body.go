package referentie

// Accessors over decoded JSON bodies. Missing keys yield zero values; shape
// validation has already guaranteed the required fields exist.

func bodyString(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}

func bodyBool(body map[string]any, key string) bool {
	b, _ := body[key].(bool)
	return b
}

func bodyBoolPtr(body map[string]any, key string) *bool {
	if raw, ok := body[key]; ok {
		if b, ok := raw.(bool); ok {
			return &b
		}
	}
	return nil
}

func bodyInt(body map[string]any, key string) int {
	f, _ := body[key].(float64)
	return int(f)
}

func bodyStrings(body map[string]any, key string) []string {
	raw, _ := body[key].([]any)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func bodyObject(body map[string]any, key string) map[string]any {
	obj, _ := body[key].(map[string]any)
	return obj
}
