package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool(t *testing.T) {
	tests := []struct {
		name    string
		words   []Word
		wantErr error
	}{
		{name: "empty", words: nil},
		{name: "valid", words: []Word{{"cat", "猫"}, {"dog", "狗"}}},
		{name: "empty term", words: []Word{{" ", "猫"}}, wantErr: ErrEmptyTerm},
		{name: "empty meaning", words: []Word{{"cat", ""}}, wantErr: ErrEmptyMeaning},
		{name: "duplicate", words: []Word{{"cat", "猫"}, {"cat", "猫咪"}}, wantErr: ErrDuplicateTerm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPool(tt.words)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.words), p.Len())
		})
	}
}

func TestPoolLookup(t *testing.T) {
	p, err := NewPool([]Word{{"cat", "猫"}, {"dog", "狗"}})
	require.NoError(t, err)

	i, ok := p.IndexOf("dog")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, "狗", p.At(i).Meaning)
	assert.False(t, p.Contains("bird"))

	words := p.Words()
	words[0].Term = "changed"
	assert.Equal(t, "cat", p.At(0).Term, "Words must return a copy")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "valid", input: `[{"word":"cat","meaning":"猫"},{"word":"dog","meaning":"狗"}]`, want: 2},
		{name: "malformed json", input: `[{"word":`, wantErr: true},
		{name: "not an array", input: `{"word":"cat","meaning":"猫"}`, wantErr: true},
		{name: "empty array", input: `[]`, wantErr: true},
		{name: "missing meaning", input: `[{"word":"cat"}]`, wantErr: true},
		{name: "empty word", input: `[{"word":"","meaning":"猫"}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := Parse([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, words, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("default list", func(t *testing.T) {
		words, err := Load("")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(words), 4)

		_, err = NewPool(words)
		assert.NoError(t, err)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "words.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"word":"cat","meaning":"猫"}]`), 0o644))

		words, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []Word{{Term: "cat", Meaning: "猫"}}, words)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}
