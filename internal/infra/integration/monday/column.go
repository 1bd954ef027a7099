package monday

import "encoding/json"

// encodeColumnValues produces the column_values argument for create_item.
// Monday expects a JSON object serialized into a JSON string literal inside
// the mutation, so the payload is encoded twice. The double encoding is the
// remote protocol, not an implementation shortcut; keep it confined here so
// the rest of the service deals in structured values only.
func encodeColumnValues(columns map[string]any) (string, error) {
	inner, err := json.Marshal(columns)
	if err != nil {
		return "", err
	}
	outer, err := json.Marshal(string(inner))
	if err != nil {
		return "", err
	}
	return string(outer), nil
}
