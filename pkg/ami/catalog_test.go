package ami

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchTail(t *testing.T) {
	body := []byte(`{"a": [["x"],["yyyy"],` + "\n]}")
	patched, err := PatchTail(body)
	require.NoError(t, err)

	assert.Len(t, patched, len(body))
	assert.Equal(t, `{"a": [["x"],["yyyy"] `+"\n]}", string(patched))

	// input is left untouched
	assert.Contains(t, string(body), `["yyyy"],`)
}

func TestPatchTail_OnlyTouchesWindow(t *testing.T) {
	body := []byte(`[1,2,3,4,5,6,7,8,9]` + strings.Repeat(" ", 12))
	patched, err := PatchTail(body)
	require.NoError(t, err)
	assert.Equal(t, body, patched)

	body = []byte(`{"k":[["a","b"],` + "\n]}")
	patched, err = PatchTail(body)
	require.NoError(t, err)
	assert.Equal(t, `{"k":[["a" "b"] `+"\n]}", string(patched))
}

func TestPatchTail_TooShort(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "below window", body: "{,}"},
		{name: "exactly window", body: strings.Repeat("x", TailWindow)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PatchTail([]byte(tt.body))
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}

	_, err := PatchTail([]byte(strings.Repeat("x", TailWindow+1)))
	assert.NoError(t, err)
}

func TestDecodeCatalog(t *testing.T) {
	patched, err := PatchTail(catalogBody(scenarioRows))
	require.NoError(t, err)

	records, err := DecodeCatalog(patched)
	require.NoError(t, err)
	require.Len(t, records, len(scenarioRows))

	for i, row := range scenarioRows {
		rec := records[i]
		assert.Equal(t, row, []string{
			rec.Region, rec.ReleaseName, rec.ReleaseNumber, rec.Architecture,
			rec.InstanceType, rec.PublishDate, rec.ImageMarkup, rec.HVM,
		})
	}
}

func TestDecodeCatalog_Empty(t *testing.T) {
	records, err := DecodeCatalog([]byte(`{"aaData": []}`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeCatalog_RawBodyFails(t *testing.T) {
	// without the tail patch the trailing comma is a syntax error
	_, err := DecodeCatalog(catalogBody(scenarioRows))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeCatalog_Errors(t *testing.T) {
	row := func(n int) string {
		fields := make([]string, n)
		for i := range fields {
			fields[i] = "f"
		}
		data, _ := json.Marshal(fields)
		return string(data)
	}

	tests := []struct {
		name string
		doc  string
	}{
		{name: "array at top level", doc: `[["a"]]`},
		{name: "string at top level", doc: `"aaData"`},
		{name: "null at top level", doc: `null`},
		{name: "no properties", doc: `{}`},
		{name: "two properties", doc: `{"a": [], "b": []}`},
		{name: "property is a number", doc: `{"aaData": 1}`},
		{name: "property is an object", doc: `{"aaData": {}}`},
		{name: "row is not an array", doc: `{"aaData": ["x"]}`},
		{name: "row too short", doc: `{"aaData": [` + row(7) + `]}`},
		{name: "row too long", doc: `{"aaData": [` + row(9) + `]}`},
		{name: "numeric field", doc: `{"aaData": [["a","b","c","d","e",20200101,"g","h"]]}`},
		{name: "null field", doc: `{"aaData": [["a","b","c","d","e","f",null,"h"]]}`},
		{name: "second row bad", doc: `{"aaData": [` + row(8) + `,` + row(3) + `]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := DecodeCatalog([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrDecode)
			assert.Nil(t, records)
		})
	}
}

func TestDecodeCatalog_ReportsRowIndex(t *testing.T) {
	_, err := DecodeCatalog([]byte(`{"aaData": [["a","b","c","d","e","f","g","h"],["x"]]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}
