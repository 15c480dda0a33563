package core

// Compile deep-merges the given payloads left to right into a single payload.
//
// Merge semantics:
//   - For a key present in more than one payload, the later payload wins.
//   - When both sides hold a mapping, the merge recurses key by key.
//   - Any non-mapping value (sequences included) replaces an earlier value
//     wholesale. Sequences are never concatenated.
//
// Compile never mutates its inputs and the result shares no memory with
// them; compiling a single payload returns a deep copy.
func Compile(payloads ...Payload) Payload {
	out := make(Payload)
	for _, p := range payloads {
		mergeInto(out, p)
	}
	return out
}

// mergeInto applies src over dst in place. dst is always a private copy
// owned by Compile, so descending into it is safe.
func mergeInto(dst map[string]any, src map[string]any) {
	for k, v := range src {
		sub, ok := asMapping(v)
		if !ok {
			dst[k] = copyValue(v)
			continue
		}
		cur, ok := asMapping(dst[k])
		if !ok {
			cur = make(map[string]any, len(sub))
			dst[k] = cur
		}
		mergeInto(cur, sub)
	}
}

// asMapping unifies the named map types callers hand us with the plain
// maps serializers produce.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Payload:
		return m, true
	case Metadata:
		return m, true
	}
	return nil, false
}

// copyValue deep-copies mappings and []any sequences. Scalars and any
// other value types are returned as-is.
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = copyValue(vv)
		}
		return out
	case Payload:
		return copyValue(map[string]any(t))
	case Metadata:
		return copyValue(map[string]any(t))
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = copyValue(vv)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}
