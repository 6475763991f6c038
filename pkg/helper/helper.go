package helper

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
)

// SnakeCase converts a camelCase mapper name into the table-name form:
// an underscore before every uppercase letter, everything lowercased,
// a leading underscore stripped. UserProfile -> user_profile.
func SnakeCase(name string) string {
	var sb strings.Builder

	for _, r := range name {
		if unicode.IsUpper(r) {
			sb.WriteByte('_')
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}

	return strings.TrimPrefix(sb.String(), "_")
}

// DeepCopyQuery clones an abstract query so compilation can consume keys
// without mutating the caller's object.
func DeepCopyQuery(query map[string]any) map[string]any {
	if query == nil {
		return map[string]any{}
	}

	return deepcopy.Copy(query).(map[string]any)
}

// CoerceProps prepares a record's values for binding: nested objects and
// arrays become JSON text, booleans become 0/1 (sqlite has no boolean
// storage class). The input map is left untouched.
func CoerceProps(props map[string]any) (map[string]any, error) {
	row := make(map[string]any, len(props))

	for key, val := range props {
		switch v := val.(type) {
		case map[string]any, []any:
			data, err := json.Marshal(v)
			if err != nil {
				return nil, errors.Wrapf(err, "error while encoding field %s", key)
			}
			row[key] = string(data)
		case bool:
			if v {
				row[key] = 1
			} else {
				row[key] = 0
			}
		default:
			row[key] = val
		}
	}

	return row, nil
}
