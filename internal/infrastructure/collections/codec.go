// Package collections implementa los puertos de persistencia tipados
// (businesses, owners, staff, consultants, audit) sobre el DocumentStore
// genérico. La validación y el tipado ocurren aquí, en el borde: el store
// nunca conoce esquemas (schema-on-read).
package collections

import "time"

// Los documentos guardan fechas como RFC3339; un valor ausente o corrupto
// se lee como zero time, no como error (schema-on-read).
func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func decodeStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		out := make([]string, len(vv))
		copy(out, vv)
		return out
	case []any:
		var out []string
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
