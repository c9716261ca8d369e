package tabular

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/usestring/salesdash-mcp/pkg/payload"
)

func decode(t *testing.T, doc string) payload.Value {
	t.Helper()
	v, err := payload.Decode([]byte(doc), nil)
	require.NoError(t, err)
	return v
}

const (
	scenarioA = `{"OVERALL":{"FY25":{"PREDICTION11":{"OCTOBER":{"LSCO":{"GLOBAL":536963416.6231}}}}}}`

	scenarioD = `{
		"RETAIL":{"FY25":{"PLAN":{"OCT":{"NET":{"PC1":{"CL1":1,"CL2":2}}}}}},
		"ECOM":{"FY25":{"PLAN":{"GROSS":{"OCT":{"NET":{"PC1":{"CL1":3}}}}}}}
	}`

	sevenDeep = `{
		"RETAIL":{"FY25":{"PLAN":{
			"OCT":{"NET":{"PC1":{"CL1":10,"CL2":20}}},
			"NOV":{"NET":{"PC1":{"CL1":30}}}
		}}}
	}`
)

// fixtures covers every shape family the backend has produced plus a few
// degenerate ones.
var fixtures = map[string]string{
	"scenario A":         scenarioA,
	"scenario D":         scenarioD,
	"seven":              sevenDeep,
	"text only":          `{"response":"Hello"}`,
	"empty":              `{}`,
	"flat channel":       `{"DTC":{"TOTAL":100},"WHOLESALE":{"TOTAL":200}}`,
	"single level":       `{"JAN":1,"FEB":2}`,
	"strings only":       `{"a":"x","b":{"c":"y"}}`,
	"arrays only":        `{"a":[1,2,3],"b":{"c":[4]}}`,
	"mixed generic":      `{"A":{"X":{"M1":1,"M2":2}},"B":{"Y":{"M1":3}},"C":5}`,
	"nested single leaf": `{"TOTAL CHANNEL":{"FY25":{"ACT":{"Q1":{"REV":{"EMEA":{"VALUE":12.5}}}}}}}`,
}
