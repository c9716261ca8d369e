package tabular

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/salesdash-mcp/pkg/payload"
)

func TestMaterialize_ScenarioA(t *testing.T) {
	v := decode(t, scenarioA)
	assert.True(t, IsChartable(v))

	pd, err := Materialize(v)
	require.NoError(t, err)
	require.True(t, pd.HasData)
	require.Len(t, pd.Rows, 1)
	assert.Equal(t, ConventionRegional, pd.Convention)

	row := pd.Rows[0]
	scenario, _ := row.Dimension("Scenario")
	period, _ := row.Dimension("Period")
	assert.Equal(t, "PREDICTION11", scenario)
	assert.Equal(t, "OCTOBER", period)
	assert.Equal(t, 536963416.6231, row.Value)

	got, ok := row.Get(ValueColumn)
	require.True(t, ok)
	assert.Equal(t, 536963416.6231, got)
}

func TestMaterialize_ScenarioB(t *testing.T) {
	v := decode(t, `{"response":"Hello"}`)
	assert.False(t, IsChartable(v))
	assert.True(t, IsTextOnly(v))

	msg, ok := TextResponse(v)
	require.True(t, ok)
	assert.Equal(t, "Hello", msg)

	pd, err := Materialize(v)
	require.NoError(t, err)
	assert.False(t, pd.HasData)
}

func TestMaterialize_ScenarioC(t *testing.T) {
	pd, err := Materialize(decode(t, `{}`))
	require.NoError(t, err)
	assert.False(t, pd.HasData)
	assert.Equal(t, []string{}, pd.Headers)
	assert.Equal(t, []Row{}, pd.Rows)

	b, err := json.Marshal(pd)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows":[],"headers":[],"hasData":false,"convention":"none","dropped":0}`, string(b))
}

func TestMaterialize_ScenarioD(t *testing.T) {
	pd, err := Materialize(decode(t, scenarioD))
	require.NoError(t, err)

	assert.Equal(t, ConventionEight, pd.Convention)
	assert.Len(t, pd.Headers, 9)
	require.Len(t, pd.Rows, 1)
	assert.Equal(t, 2, pd.Dropped)
	assert.Equal(t, []string{"ECOM", "FY25", "PLAN", "GROSS", "OCT", "NET", "PC1", "CL1"}, pd.Rows[0].Dimensions)
	assert.Equal(t, 3.0, pd.Rows[0].Value)
}

func TestMaterialize_SevenKeepsDocumentOrder(t *testing.T) {
	pd, err := Materialize(decode(t, sevenDeep))
	require.NoError(t, err)
	require.Len(t, pd.Rows, 3)
	assert.Equal(t, ConventionSeven, pd.Convention)

	var clusters []string
	for _, r := range pd.Rows {
		c, _ := r.Dimension("Cluster")
		p, _ := r.Dimension("Period")
		clusters = append(clusters, p+"/"+c)
	}
	assert.Equal(t, []string{"OCT/CL1", "OCT/CL2", "NOV/CL1"}, clusters)
	assert.Equal(t, []float64{10, 20, 30}, []float64{pd.Rows[0].Value, pd.Rows[1].Value, pd.Rows[2].Value})
}

func TestMaterialize_ClassifierAgreement(t *testing.T) {
	for name, doc := range fixtures {
		t.Run(name, func(t *testing.T) {
			v := decode(t, doc)
			pd, err := Materialize(v)
			require.NoError(t, err)
			assert.Equal(t, IsChartable(v), pd.HasData)
		})
	}
}

func TestMaterialize_Idempotent(t *testing.T) {
	for name, doc := range fixtures {
		t.Run(name, func(t *testing.T) {
			v := decode(t, doc)
			first, err := Materialize(v)
			require.NoError(t, err)
			second, err := Materialize(v)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestMaterialize_RowShape(t *testing.T) {
	for name, doc := range fixtures {
		t.Run(name, func(t *testing.T) {
			pd, err := Materialize(decode(t, doc))
			require.NoError(t, err)
			for _, row := range pd.Rows {
				assert.Len(t, row.Dimensions, len(pd.Headers)-1)
				assert.Equal(t, pd.Headers, row.Columns)
			}
			if pd.HasData {
				assert.Equal(t, ValueColumn, pd.Headers[len(pd.Headers)-1])
			}
		})
	}
}

func TestMaterialize_ValueFidelity(t *testing.T) {
	values := []float64{536963416.6231, -0.000001, 1e21, 0, 123456789.987654321}
	obj := payload.NewObject()
	for i, f := range values {
		obj.Set(string(rune('A'+i)), payload.Number(f))
	}

	pd, err := Materialize(payload.ObjectValue(obj))
	require.NoError(t, err)
	require.Len(t, pd.Rows, len(values))
	for i, f := range values {
		assert.Equal(t, f, pd.Rows[i].Value)
	}
}

func TestMaterialize_Malformed(t *testing.T) {
	root := payload.ObjectValue(payload.NewObject().Set("a", payload.Number(1)).Set("b", payload.Number(2)))
	for range 70 {
		root = payload.ObjectValue(payload.NewObject().Set("k", root))
	}

	pd, err := Materialize(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, payload.ErrMalformed)
	assert.False(t, pd.HasData)
	assert.False(t, IsChartable(root))
}

func TestMaterialize_Generic(t *testing.T) {
	pd, err := Materialize(decode(t, fixtures["mixed generic"]))
	require.NoError(t, err)
	assert.Equal(t, ConventionGeneric, pd.Convention)
	assert.Equal(t, []string{"Channel", "Period", "Metric", "Value (USD)"}, pd.Headers)
	assert.Equal(t, 1, pd.Dropped)
	require.Len(t, pd.Rows, 3)
	assert.Equal(t, []string{"B", "Y", "M1"}, pd.Rows[2].Dimensions)
}

func TestParse(t *testing.T) {
	pd, err := Parse([]byte(scenarioA), nil)
	require.NoError(t, err)
	assert.True(t, pd.HasData)

	deep := strings.Repeat(`{"k":`, 5) + `{"a":1,"b":2}` + strings.Repeat("}", 5)
	_, err = Parse([]byte(deep), &Options{MaxDepth: 3})
	assert.ErrorIs(t, err, payload.ErrMalformed)

	_, err = Parse([]byte(`not json`), nil)
	assert.ErrorIs(t, err, payload.ErrMalformed)

	pd, err = Parse(nil, nil)
	require.NoError(t, err)
	assert.False(t, pd.HasData)
}

func TestRow_MarshalJSONKeepsColumnOrder(t *testing.T) {
	pd, err := Materialize(decode(t, scenarioA))
	require.NoError(t, err)

	b, err := json.Marshal(pd.Rows[0])
	require.NoError(t, err)
	assert.Equal(t,
		`{"Channel":"OVERALL","Year":"FY25","Scenario":"PREDICTION11","Period":"OCTOBER","Metric":"LSCO","Region":"GLOBAL","Value (USD)":536963416.6231}`,
		string(b))
}

func TestRow_MarshalJSONLeavesCellTextUnescaped(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want string
	}{
		{
			name: "metric path",
			row: Row{
				Columns:    []string{PeriodColumn, "Metric", ValueColumn},
				Dimensions: []string{"JAN", "Y > M > R"},
				Value:      1.5,
			},
			want: `{"Period":"JAN","Metric":"Y > M > R","Value (USD)":1.5}`,
		},
		{
			name: "ampersand and angle brackets",
			row: Row{
				Columns:    []string{"Metric", ValueColumn},
				Dimensions: []string{"SG&A <net>"},
				Value:      2,
			},
			want: `{"Metric":"SG&A <net>","Value (USD)":2}`,
		},
		{
			name: "escaped backslash before u",
			row: Row{
				Columns:    []string{"Metric", ValueColumn},
				Dimensions: []string{`a\u003e`},
				Value:      3,
			},
			want: `{"Metric":"a\\u003e","Value (USD)":3}`,
		},
		{
			name: "missing dimension",
			row: Row{
				Columns: []string{"Metric", ValueColumn},
				Value:   4,
			},
			want: `{"Metric":"` + Placeholder + `","Value (USD)":4}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.row.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))

			var back map[string]any
			require.NoError(t, json.Unmarshal(b, &back))
			assert.Len(t, back, len(tt.row.Columns))
		})
	}
}
