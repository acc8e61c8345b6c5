package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kvbind/internal/testutil/testlog"
)

func TestDistance(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Hello", "hello", 1},
		{"tromsø", "tromso", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Distance(tt.a, tt.b), "%q/%q", tt.a, tt.b)
		assert.Equal(t, tt.want, Distance(tt.b, tt.a), "%q/%q symmetric", tt.a, tt.b)
	}
}

func TestFold(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	assert.Equal(t, "valuetransformer", Fold("value_transformer"))
	assert.Equal(t, "valuetransformer", Fold("ValueTransformer"))
	assert.Equal(t, "valuetransformer", Fold("value-transformer"))
}

func TestSimilarity(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, Similarity("NegateBoolean", "negate_boolean"), 1e-9)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 1e-9)
}

func TestSuggest(t *testing.T) {
	t.Parallel()
	testlog.Start(t)

	names := []string{"Identity", "IsNil", "IsNotNil", "NegateBoolean", "percent"}

	assert.Equal(t, []string{"percent"}, Suggest("percnt", names, 3))
	assert.Equal(t, []string{"IsNil"}, Suggest("isnill", names, 1))
	assert.Empty(t, Suggest("zzz", names, 3))
	assert.Empty(t, Suggest("percent", names, 3))
}
