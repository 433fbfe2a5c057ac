package wikipedia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/olgasafonova/wikipedia-mcp-server/internal/errors"
)

func TestValidateLang(t *testing.T) {
	tests := []struct {
		lang    string
		wantErr bool
	}{
		{"ja", false},
		{"en", false},
		{"zh-yue", false},
		{"simple", false},
		{"zz", false}, // unknown codes are left to the remote side
		{"", true},
		{"en.evil.com/", true},
		{"en/../x", true},
		{"en wiki", true},
		{"ja?x=1", true},
		{"evil.com#", true},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			err := ValidateLang(tt.lang)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apierrors.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSearchArgs_Normalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		args, err := SearchArgs{Query: "東京"}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, "ja", args.Lang)
		assert.Equal(t, 5, args.Limit)
	})

	t.Run("explicit values kept", func(t *testing.T) {
		args, err := SearchArgs{Query: "Go", Lang: "en", Limit: 2}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, "en", args.Lang)
		assert.Equal(t, 2, args.Limit)
	})

	t.Run("empty query", func(t *testing.T) {
		_, err := SearchArgs{Query: "   "}.Normalize()
		require.Error(t, err)
		assert.True(t, apierrors.IsValidation(err))
		assert.Contains(t, err.Error(), "query")
	})

	t.Run("negative limit", func(t *testing.T) {
		_, err := SearchArgs{Query: "Go", Limit: -1}.Normalize()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "limit")
	})

	t.Run("bad lang", func(t *testing.T) {
		_, err := SearchArgs{Query: "Go", Lang: "en.example.com/"}.Normalize()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lang")
	})
}

func TestGetArticleArgs_Normalize(t *testing.T) {
	args, err := GetArticleArgs{Title: "東京"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "ja", args.Lang)
	assert.False(t, args.IncludeContent)

	_, err = GetArticleArgs{}.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestRandomArgs_Normalize(t *testing.T) {
	args, err := RandomArgs{}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "ja", args.Lang)
	assert.Equal(t, 5, args.Count)

	args, err = RandomArgs{Lang: "en", Count: 1}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, 1, args.Count)

	_, err = RandomArgs{Count: -3}.Normalize()
	assert.Error(t, err)
}
