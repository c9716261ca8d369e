package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/salesdash-mcp/pkg/client"
)

func TestDefaults(t *testing.T) {
	for _, account := range Accounts() {
		t.Run(account, func(t *testing.T) {
			qs := Defaults(account)
			require.Len(t, qs, 3)
			for _, q := range qs {
				assert.NotEmpty(t, q.Text)
				assert.NotEmpty(t, q.TabInformation)
			}
		})
	}
}

func TestDefaults_IDs(t *testing.T) {
	qs := Defaults("COST OF GOODS SOLD TOTAL")
	assert.Equal(t, "default-COST-OF-GOODS-SOLD-TOTAL-1", qs[0].ID)
	assert.Equal(t, "default-COST-OF-GOODS-SOLD-TOTAL-3", qs[2].ID)
}

func TestDefaults_UnknownAccountFallsBack(t *testing.T) {
	qs := Defaults("GROSS MARGIN")
	require.Len(t, qs, 3)
	assert.Equal(t, Defaults(OrganicNetRevenues)[0].Text, qs[0].Text)
	assert.Equal(t, "default-GROSS-MARGIN-1", qs[0].ID)

	assert.Equal(t, "default-ORGANIC-NET-REVENUES-1", Defaults("")[0].ID)
}

func TestDefaults_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Defaults(EBIT)[0].Text, Defaults(" ebit ")[0].Text)
}

func TestQuery(t *testing.T) {
	assert.Equal(t, "tab", Query(client.SuggestedQuestion{Text: "q", TabInformation: "tab"}))
	assert.Equal(t, "q", Query(client.SuggestedQuestion{Text: "q", TabInformation: "  "}))
}
