package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const chainDoc = `{
  "network": {
    "variables": {"x": 2},
    "regulations": [
      {
        "target": "x",
        "regulators": [{"variable": "x", "thresholds": [1, 2]}],
        "contexts": [
          {"intervals": [1], "target_value": 1},
          {"intervals": [2], "target_value": 2},
          {"intervals": ["*"], "target_value": 2}
        ]
      }
    ]
  },
  "formula": "x >= 2",
  "init_states": [{"x": [0]}]
}`

func TestLoad_DecodesAndValidates(t *testing.T) {
	doc, err := Load(strings.NewReader(chainDoc))
	require.NoError(t, err)
	require.Equal(t, "x >= 2", doc.Formula)
	require.Len(t, doc.InitStates, 1)
	require.Equal(t, []int{0}, doc.InitStates[0]["x"])

	varNames, maxima := doc.Network.Variables()
	require.Equal(t, []string{"x"}, varNames)
	require.Equal(t, 2, maxima["x"])
}

func TestLoad_RejectsMissingNetwork(t *testing.T) {
	_, err := Load(strings.NewReader(`{"formula": "true"}`))
	require.Error(t, err)
}

func TestLoad_RejectsMalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`not json`))
	require.Error(t, err)
}

func TestLoad_RejectsInitStateOutOfRange(t *testing.T) {
	doc := strings.Replace(chainDoc, `"x": [0]`, `"x": [99]`, 1)
	_, err := Load(strings.NewReader(doc))
	require.Error(t, err)
}
