package classify

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		expected Result
	}{
		{
			name:  "mixed numbers letters and special",
			items: []string{"a", "1", "334", "4", "R", "$"},
			expected: Result{
				OddNumbers:        []string{"1"},
				EvenNumbers:       []string{"334", "4"},
				Alphabets:         []string{"A", "R"},
				SpecialCharacters: []string{"$"},
				Sum:               "339",
				ConcatString:      "Ra",
			},
		},
		{
			name:  "multiple special characters",
			items: []string{"2", "a", "y", "4", "&", "-", "*", "5"},
			expected: Result{
				OddNumbers:        []string{"5"},
				EvenNumbers:       []string{"2", "4"},
				Alphabets:         []string{"A", "Y"},
				SpecialCharacters: []string{"&", "-", "*"},
				Sum:               "11",
				ConcatString:      "Ya",
			},
		},
		{
			name:  "empty string item",
			items: []string{""},
			expected: Result{
				OddNumbers:        []string{},
				EvenNumbers:       []string{},
				Alphabets:         []string{},
				SpecialCharacters: []string{""},
				Sum:               "0",
				ConcatString:      "",
			},
		},
		{
			name:  "all numeric",
			items: []string{"10", "21"},
			expected: Result{
				OddNumbers:        []string{"21"},
				EvenNumbers:       []string{"10"},
				Alphabets:         []string{},
				SpecialCharacters: []string{},
				Sum:               "31",
				ConcatString:      "",
			},
		},
		{
			name:  "no items",
			items: []string{},
			expected: Result{
				OddNumbers:        []string{},
				EvenNumbers:       []string{},
				Alphabets:         []string{},
				SpecialCharacters: []string{},
				Sum:               "0",
				ConcatString:      "",
			},
		},
		{
			name:  "leading zeros keep original form",
			items: []string{"007", "000"},
			expected: Result{
				OddNumbers:        []string{"007"},
				EvenNumbers:       []string{"000"},
				Alphabets:         []string{},
				SpecialCharacters: []string{},
				Sum:               "7",
				ConcatString:      "",
			},
		},
		{
			name:  "signed and decimal numerics are special",
			items: []string{"-5", "+3", "2.5", "1e3"},
			expected: Result{
				OddNumbers:        []string{},
				EvenNumbers:       []string{},
				Alphabets:         []string{},
				SpecialCharacters: []string{"-5", "+3", "2.5", "1e3"},
				Sum:               "0",
				ConcatString:      "",
			},
		},
		{
			name:  "mixed alphanumeric is special",
			items: []string{"abc123", "1a"},
			expected: Result{
				OddNumbers:        []string{},
				EvenNumbers:       []string{},
				Alphabets:         []string{},
				SpecialCharacters: []string{"abc123", "1a"},
				Sum:               "0",
				ConcatString:      "",
			},
		},
		{
			name:  "non-ascii letters are special",
			items: []string{"é", "日本", "ß"},
			expected: Result{
				OddNumbers:        []string{},
				EvenNumbers:       []string{},
				Alphabets:         []string{},
				SpecialCharacters: []string{"é", "日本", "ß"},
				Sum:               "0",
				ConcatString:      "",
			},
		},
		{
			name:  "multi character alphabetic items",
			items: []string{"abC", "De"},
			expected: Result{
				OddNumbers:        []string{},
				EvenNumbers:       []string{},
				Alphabets:         []string{"ABC", "DE"},
				SpecialCharacters: []string{},
				Sum:               "0",
				// "abCDe" reversed is "eDCba", recased "EdCbA".
				ConcatString: "EdCbA",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.items)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestClassifySumDoesNotOverflow(t *testing.T) {
	// Two values each beyond int64 range.
	big1 := "92233720368547758079"
	big2 := "18446744073709551616"

	result := Classify([]string{big1, big2})

	expected := new(big.Int)
	a, ok := new(big.Int).SetString(big1, 10)
	require.True(t, ok)
	b, ok := new(big.Int).SetString(big2, 10)
	require.True(t, ok)
	expected.Add(a, b)

	assert.Equal(t, expected.String(), result.Sum)
	assert.Equal(t, []string{big1}, result.OddNumbers)
	assert.Equal(t, []string{big2}, result.EvenNumbers)
}

func TestClassifyPartitionProperty(t *testing.T) {
	items := []string{
		"a", "1", "334", "4", "R", "$", "", "abc123",
		"-7", "BZ", "0", "007", "é", "HELLO", "9.9",
	}

	result := Classify(items)

	total := len(result.OddNumbers) + len(result.EvenNumbers) +
		len(result.Alphabets) + len(result.SpecialCharacters)
	assert.Equal(t, len(items), total, "every item must land in exactly one category")
}

func TestClassifyConcatLengthProperty(t *testing.T) {
	items := []string{"abc", "1", "De", "$$", "XYZ"}

	result := Classify(items)

	want := len("abc") + len("De") + len("XYZ")
	assert.Len(t, result.ConcatString, want)
}

func TestClassifyIdempotence(t *testing.T) {
	items := []string{"a", "1", "334", "4", "R", "$"}

	first := Classify(items)
	second := Classify(items)

	assert.Equal(t, first, second)
}

func TestClassifyOutputsNeverNil(t *testing.T) {
	result := Classify(nil)

	assert.NotNil(t, result.OddNumbers)
	assert.NotNil(t, result.EvenNumbers)
	assert.NotNil(t, result.Alphabets)
	assert.NotNil(t, result.SpecialCharacters)
	assert.Equal(t, "0", result.Sum)
}

func TestReverseAlternateCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"single letter", "a", "A"},
		{"two letters", "aR", "Ra"},
		{"preserves nothing of original case", "AbCdE", "EdCbA"},
		{"long run", "abcdef", "FeDcBa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, reverseAlternateCase(tt.input))
		})
	}
}

func TestIsASCIIDigits(t *testing.T) {
	assert.True(t, isASCIIDigits("0"))
	assert.True(t, isASCIIDigits("007"))
	assert.False(t, isASCIIDigits(""))
	assert.False(t, isASCIIDigits("-1"))
	assert.False(t, isASCIIDigits("1.5"))
	assert.False(t, isASCIIDigits("1a"))
	// Arabic-Indic digit.
	assert.False(t, isASCIIDigits("٣"))
}

func TestIsASCIILetters(t *testing.T) {
	assert.True(t, isASCIILetters("a"))
	assert.True(t, isASCIILetters("AbZ"))
	assert.False(t, isASCIILetters(""))
	assert.False(t, isASCIILetters("a b"))
	assert.False(t, isASCIILetters("a1"))
	assert.False(t, isASCIILetters("é"))
}

func BenchmarkClassify(b *testing.B) {
	items := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		switch i % 3 {
		case 0:
			items = append(items, "12345")
		case 1:
			items = append(items, strings.Repeat("ab", 5))
		default:
			items = append(items, "$%^")
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Classify(items)
	}
}
