package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllTools(t *testing.T) {
	specs := AllTools()
	require.Len(t, specs, 3)

	seen := map[string]bool{}
	for _, spec := range specs {
		t.Run(spec.Name, func(t *testing.T) {
			assert.False(t, seen[spec.Name], "duplicate tool name")
			seen[spec.Name] = true

			assert.NotEmpty(t, spec.Method)
			assert.NotEmpty(t, spec.Title)
			assert.NotEmpty(t, spec.Category)
			assert.NotEmpty(t, spec.FailurePhrase)
			assert.Contains(t, spec.Description, "USE WHEN:")
			assert.Contains(t, spec.Description, "PARAMETERS:")
			assert.True(t, spec.ReadOnly)
			assert.True(t, spec.OpenWorld)
		})
	}
}

func TestAllTools_ReturnsCopy(t *testing.T) {
	specs := AllTools()
	specs[0].Name = "renamed"
	specs[0].FailurePhrase = ""

	fresh := AllTools()
	assert.Equal(t, "search_wikipedia", fresh[0].Name)
	assert.NotEmpty(t, fresh[0].FailurePhrase)

	_, ok := ToolByName("renamed")
	assert.False(t, ok)
}

func TestToolsByCategory(t *testing.T) {
	tests := []struct {
		category string
		want     []string
	}{
		{"search", []string{"search_wikipedia"}},
		{"read", []string{"get_wikipedia_article"}},
		{"discovery", []string{"get_random_wikipedia"}},
		{"write", nil},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			var names []string
			for _, spec := range ToolsByCategory(tt.category) {
				names = append(names, spec.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestToolByName(t *testing.T) {
	spec, ok := ToolByName("get_random_wikipedia")
	require.True(t, ok)
	assert.Equal(t, "ランダム記事取得に失敗しました", spec.FailurePhrase)
	assert.False(t, spec.Idempotent)

	_, ok = ToolByName("get_page")
	assert.False(t, ok)
}

func TestSchemas(t *testing.T) {
	t.Run("search", func(t *testing.T) {
		s, err := searchSchema()
		require.NoError(t, err)
		assert.Equal(t, []string{"query"}, s.Required)
		assert.JSONEq(t, `"ja"`, string(s.Properties["lang"].Default))
		assert.JSONEq(t, `5`, string(s.Properties["limit"].Default))
		require.NotNil(t, s.Properties["query"].MinLength)
		assert.Equal(t, 1, *s.Properties["query"].MinLength)
		require.NotNil(t, s.Properties["limit"].Minimum)
		assert.Equal(t, 1.0, *s.Properties["limit"].Minimum)
	})

	t.Run("article", func(t *testing.T) {
		s, err := articleSchema()
		require.NoError(t, err)
		assert.Equal(t, []string{"title"}, s.Required)
		assert.JSONEq(t, `false`, string(s.Properties["include_content"].Default))
		assert.JSONEq(t, `"ja"`, string(s.Properties["lang"].Default))
	})

	t.Run("random", func(t *testing.T) {
		s, err := randomSchema()
		require.NoError(t, err)
		assert.Empty(t, s.Required)
		assert.JSONEq(t, `5`, string(s.Properties["count"].Default))
	})

	t.Run("serializes", func(t *testing.T) {
		s, err := searchSchema()
		require.NoError(t, err)
		raw, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"default":"ja"`)
	})
}

func TestInputSchema_UnknownProperty(t *testing.T) {
	type args struct {
		A string `json:"a"`
	}
	_, err := inputSchema[args](map[string]property{"b": textProperty})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"b"`)
}

func TestInputSchemas(t *testing.T) {
	schemas, err := InputSchemas()
	require.NoError(t, err)
	require.Len(t, schemas, len(toolTable))
	for _, spec := range toolTable {
		assert.NotNil(t, schemas[spec.Name], spec.Name)
	}
}
