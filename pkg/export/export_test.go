package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/salesdash-mcp/pkg/tabular"
)

const regional = `{"OVERALL":{"FY25":{"PREDICTION11":{"OCTOBER":{"LSCO":{"GLOBAL":536963416.6231}}}}}}`

func parsed(t *testing.T, doc string) tabular.ParsedData {
	t.Helper()
	pd, err := tabular.Parse([]byte(doc), nil)
	require.NoError(t, err)
	return pd
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, parsed(t, regional)))
	assert.Equal(t,
		"Channel,Year,Scenario,Period,Metric,Region,Value (USD)\n"+
			`"OVERALL","FY25","PREDICTION11","OCTOBER","LSCO","GLOBAL",536963416.6231`+"\n",
		buf.String())
}

func TestCSV_EscapesQuotes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, parsed(t, `{"say \"hi\"":{"JAN":1}}`)))
	assert.Contains(t, buf.String(), `"say ""hi""","JAN",1`)
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, parsed(t, regional)))
	assert.True(t, strings.HasPrefix(buf.String(), "[\n  {\n    \"Channel\": \"OVERALL\""))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 536963416.6231, rows[0]["Value (USD)"])
}

func TestXML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XML(&buf, parsed(t, regional)))

	doc, err := xmlquery.Parse(&buf)
	require.NoError(t, err)
	period := xmlquery.FindOne(doc, `//row/cell[@column="Period"]`)
	require.NotNil(t, period)
	assert.Equal(t, "OCTOBER", period.InnerText())
	assert.Equal(t, "536963416.6231", xmlquery.FindOne(doc, "//row/value").InnerText())
	assert.Len(t, xmlquery.Find(doc, "//row/cell"), 6)
}

func TestNoData(t *testing.T) {
	for _, f := range []Format{FormatCSV, FormatJSON, FormatXML} {
		t.Run(string(f), func(t *testing.T) {
			err := Write(&bytes.Buffer{}, f, tabular.Empty())
			assert.ErrorIs(t, err, ErrNoData)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	at := time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "salesdash_export_20251001T093000.csv", Filename(FormatCSV, at))
}

func TestJSON_KeepsMetricSeparator(t *testing.T) {
	pd := tabular.ParsedData{
		HasData: true,
		Headers: []string{tabular.PeriodColumn, "Metric", tabular.ValueColumn},
		Rows: []tabular.Row{{
			Columns:    []string{tabular.PeriodColumn, "Metric", tabular.ValueColumn},
			Dimensions: []string{"JAN", "Y > M > R"},
			Value:      10,
		}},
	}
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, pd))
	assert.Contains(t, buf.String(), `"Metric": "Y > M > R"`)
	assert.NotContains(t, buf.String(), `\u003e`)
}
