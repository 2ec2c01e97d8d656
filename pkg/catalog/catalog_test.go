package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cbodonnell/memoryline/pkg/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, RequiredCategories, c.Names())
	result := c.Validate(MinValues)
	assert.True(t, result.Valid(), result.Errors)
	assert.Empty(t, result.Warnings)

	text, err := c.Category(CategoryText)
	require.NoError(t, err)
	assert.Equal(t, memory.KindText, text.Kind)
	assert.Equal(t, "Words", text.Title)
	assert.Contains(t, text.Values, memory.Value("hot / cold"))

	sounds, err := c.Category(CategorySounds)
	require.NoError(t, err)
	assert.Equal(t, memory.KindSound, sounds.Kind)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "values and pairs",
			data: `
[categories.text]
kind = "text"
values = ["x"]
pairs = [["a", "1"], ["b", "2"]]
`,
		},
		{
			name: "bad kind",
			data: `
[categories.text]
kind = "video"
values = ["x"]
`,
			wantErr: true,
		},
		{
			name: "bad pair",
			data: `
[categories.text]
kind = "text"
pairs = [["a", "1", "!"]]
`,
			wantErr: true,
		},
		{
			name:    "not toml",
			data:    `[categories`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			text, err := c.Category("text")
			require.NoError(t, err)
			assert.Equal(t, []memory.Value{"x", "a / 1", "b / 2"}, text.Values)
			assert.Equal(t, "text", text.Title)
		})
	}
}

func TestCatalog_Category_unknown(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, err = c.Category("colors")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCatalog_Validate(t *testing.T) {
	c, err := Parse([]byte(`
[categories.text]
kind = "text"
values = ["a", "b", "a"]

[categories.images]
kind = "image"
values = ["1.png", "2.png"]

[categories.colors]
kind = "text"
values = ["red", "blue"]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"text", "images", "colors"}, c.Names())

	result := c.Validate(2)
	assert.False(t, result.Valid())
	assert.Equal(t, []string{`missing required category "sounds"`}, result.Errors)
	assert.Equal(t, []string{`category "text" lists "a" 2 times`}, result.Warnings)

	result = c.Validate(3)
	assert.Len(t, result.Errors, 4)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, defaultCatalog, 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Names(), 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
