// internal/repository/sqlrepo/encode.go
package sqlrepo

import (
	"encoding/json"
	"fmt"
)

// encodeList and decodeList are the single serialize/deserialize pair for
// list-valued columns. Order is preserved; nil encodes as the empty list.
func encodeList(values []string) (string, error) {
	if values == nil {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}

func decodeList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	values := []string{}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	return values, nil
}
