package ami

import (
	"encoding/json"
	"strings"
)

// scenarioRows are two bionic amd64 builds published in January and March 2020.
var scenarioRows = [][]string{
	{"us-east-1", "bionic", "18.04", "amd64", "hvm:ebs-ssd", "20200101", `<a href="u">ami-111</a>`, "hvm"},
	{"us-east-1", "bionic", "18.04", "amd64", "hvm:ebs-ssd", "20200301", `<a href="u">ami-222</a>`, "hvm"},
}

// catalogBody renders rows the way the locator does, trailing comma included.
func catalogBody(rows [][]string) []byte {
	var b strings.Builder
	b.WriteString("{\"aaData\": [\n")
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			panic(err)
		}
		b.Write(data)
		b.WriteString(",\n")
	}
	b.WriteString("]\n}\n")
	return []byte(b.String())
}
