package ami

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TailWindow is the number of trailing bytes PatchTail rewrites.
//
// The locator ends its row array with a trailing comma, which makes the
// document invalid JSON. The comma always sits in the last few bytes, so
// only that window is touched.
const TailWindow = 10

// PatchTail returns a copy of body with every ',' in the last TailWindow
// bytes replaced by a space. The length of the document is preserved.
func PatchTail(body []byte) ([]byte, error) {
	if len(body) <= TailWindow {
		return nil, fmt.Errorf("%w: body is %d bytes, need more than %d", ErrMalformedPayload, len(body), TailWindow)
	}

	out := make([]byte, len(body))
	copy(out, body)

	tail := out[len(out)-TailWindow:]
	for i, b := range tail {
		if b == ',' {
			tail[i] = ' '
		}
	}
	return out, nil
}

// DecodeCatalog parses a patched locator document into records.
//
// The document must be an object with exactly one property whose value is
// an array of rows, and every row must be an array of exactly eight strings.
func DecodeCatalog(data []byte) ([]Record, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: top level is not an object: %v", ErrDecode, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: top level is null", ErrDecode)
	}

	switch len(top) {
	case 0:
		return nil, fmt.Errorf("%w: top-level object has no properties", ErrDecode)
	case 1:
	default:
		return nil, fmt.Errorf("%w: top-level object has %d properties, want 1", ErrDecode, len(top))
	}

	var rowsRaw json.RawMessage
	for _, v := range top {
		rowsRaw = v
	}

	var rows []json.RawMessage
	if !isJSONArray(rowsRaw) {
		return nil, fmt.Errorf("%w: top-level property is not an array", ErrDecode)
	}
	if err := json.Unmarshal(rowsRaw, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	records := make([]Record, 0, len(rows))
	for i, raw := range rows {
		fields, err := decodeRow(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rec, err := recordFromRow(fields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// decodeRow checks that raw is an array of exactly recordFields strings.
func decodeRow(raw json.RawMessage) ([]string, error) {
	if !isJSONArray(raw) {
		return nil, fmt.Errorf("%w: row is not an array", ErrDecode)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(elems) != recordFields {
		return nil, fmt.Errorf("%w: row has %d fields, want %d", ErrDecode, len(elems), recordFields)
	}

	fields := make([]string, len(elems))
	for i, e := range elems {
		// null would silently decode into "", so require a string literal
		if !bytes.HasPrefix(bytes.TrimSpace(e), []byte(`"`)) {
			return nil, fmt.Errorf("%w: field %d is not a string", ErrDecode, i)
		}
		if err := json.Unmarshal(e, &fields[i]); err != nil {
			return nil, fmt.Errorf("%w: field %d: %v", ErrDecode, i, err)
		}
	}
	return fields, nil
}

func isJSONArray(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}
