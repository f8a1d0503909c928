package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStringList_Nil(t *testing.T) {
	assert.Equal(t, []string{}, NormalizeStringList(nil))
}

func TestNormalizeStringList_StringList(t *testing.T) {
	input := []any{"Go", "  SQL  ", ""}
	assert.Equal(t, []string{"Go", "SQL"}, NormalizeStringList(input))
}

func TestNormalizeStringList_DictElements(t *testing.T) {
	input := []any{
		map[string]any{"skill": "Go", "level": "expert"},
		"Python",
	}
	result := NormalizeStringList(input)

	// Mapping values join sorted by key: level before skill
	assert.Equal(t, []string{"expert - Go", "Python"}, result)
}

func TestNormalizeStringList_TopLevelDict(t *testing.T) {
	input := map[string]any{
		"b": "second",
		"a": "first",
		"c": []any{"third", "fourth"},
	}
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, NormalizeStringList(input))
}

func TestNormalizeStringList_BareString(t *testing.T) {
	assert.Equal(t, []string{"single"}, NormalizeStringList("single"))
	assert.Equal(t, []string{}, NormalizeStringList("   "))
}

func TestNormalizeStringList_Scalars(t *testing.T) {
	assert.Equal(t, []string{"42"}, NormalizeStringList(float64(42)))
	assert.Equal(t, []string{"true"}, NormalizeStringList(true))
}

func TestNormalizeStringList_Deterministic(t *testing.T) {
	input := map[string]any{"z": "last", "a": "first", "m": "middle"}
	first := NormalizeStringList(input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, NormalizeStringList(input))
	}
}

func TestNormalizeString_Dict(t *testing.T) {
	input := map[string]any{"city": "Berlin", "country": "Germany"}
	assert.Equal(t, "Berlin - Germany", NormalizeString(input))
}

func TestNormalizeString_List(t *testing.T) {
	assert.Equal(t, "a b", NormalizeString([]any{"a", "", "b"}))
}

func TestNormalizeString_Scalars(t *testing.T) {
	assert.Equal(t, "", NormalizeString(nil))
	assert.Equal(t, "trimmed", NormalizeString("  trimmed  "))
	assert.Equal(t, "3.5", NormalizeString(3.5))
}
