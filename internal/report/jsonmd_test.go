package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertJSONToMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "scalar string",
			input: `"hello"`,
			want:  "hello",
		},
		{
			name:  "scalar number keeps raw form",
			input: `1.50`,
			want:  "1.50",
		},
		{
			name:  "literals",
			input: `[true, false, null]`,
			want:  "true\nfalse\nnull\n",
		},
		{
			name:  "flat object keeps key order",
			input: `{"zeta": "z", "alpha": 1}`,
			want:  "## zeta\nz\n## alpha\n1\n",
		},
		{
			name:  "nested",
			input: `{"policy": {"name": "PII", "groups": ["GDPR", "PCI"]}}`,
			want:  "## policy\n## name\nPII\n## groups\nGDPR\nPCI\n\n\n",
		},
		{
			name:  "empty containers",
			input: `{"a": {}, "b": []}`,
			want:  "## a\n\n## b\n\n",
		},
		{
			name:  "escaped string is unescaped",
			input: `{"k": "line\nbreak é"}`,
			want:  "## k\nline\nbreak é\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertJSONToMarkdown([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseJSON_Kinds(t *testing.T) {
	node, err := ParseJSON(strings.NewReader(`{"list": [1, {"x": "y"}], "n": 3}`))
	require.NoError(t, err)

	require.Equal(t, KindObject, node.Kind)
	require.Len(t, node.Members, 2)
	assert.Equal(t, "list", node.Members[0].Key)

	list := node.Members[0].Value
	require.Equal(t, KindArray, list.Kind)
	require.Len(t, list.Items, 2)
	assert.Equal(t, KindScalar, list.Items[0].Kind)
	assert.Equal(t, "1", list.Items[0].Text)
	assert.Equal(t, KindObject, list.Items[1].Kind)

	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "array", KindArray.String())
	assert.Equal(t, "scalar", KindScalar.String())
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "truncated object", input: `{"a": 1`},
		{name: "trailing value", input: `{} {}`},
		{name: "bare word", input: `nope`},
		{name: "truncated array", input: `[1, 2`},
		{name: "key without value", input: `{"a"`},
		{name: "key without colon", input: `{"a" 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON(strings.NewReader(tt.input))
			require.Error(t, err)
		})
	}
}

func TestRenderMarkdown_NilNode(t *testing.T) {
	assert.Empty(t, RenderMarkdown(nil))
}

func TestParseJSON_KeysSurviveNestedValues(t *testing.T) {
	input := `{"first": {"inner": [1, 2, {"deep": true}]}, "second": "s", "third": [[], {}]}`

	var node *Node
	require.NotPanics(t, func() {
		var err error
		node, err = ParseJSON(strings.NewReader(input))
		require.NoError(t, err)
	})

	require.Len(t, node.Members, 3)
	assert.Equal(t, "first", node.Members[0].Key)
	assert.Equal(t, "second", node.Members[1].Key)
	assert.Equal(t, "third", node.Members[2].Key)

	inner := node.Members[0].Value.Members[0]
	assert.Equal(t, "inner", inner.Key)
	require.Len(t, inner.Value.Items, 3)
	assert.Equal(t, "deep", inner.Value.Items[2].Members[0].Key)
	assert.Equal(t, "true", inner.Value.Items[2].Members[0].Value.Text)
}
