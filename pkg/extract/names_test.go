package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"plain", "John Smith", "John Smith"},
		{"uppercase", "JOHN SMITH", "John Smith"},
		{"leading honorific", "Mr John Smith", "John Smith"},
		{"honorific with dot", "Mrs. Jane Doe", "Jane Doe"},
		{"surname first", "SMITH/JOHN", "John Smith"},
		{"surname first with honorific", "SMITH/JOHN MR", "John Smith"},
		{"surname first with middle", "SMITH/JOHN ROBERT", "John Robert Smith"},
		{"parenthetical stripped", "John Smith (ADT)", "John Smith"},
		{"trailing flight text", "John Smith flight EK202", "John Smith"},
		{"multiple passengers keeps first", "John Smith\nJane Doe", "John Smith"},
		{"apostrophe surname", "O'BRIEN/MARY", "Mary O'brien"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.raw))
		})
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	raws := []string{
		"SMITH/JOHN MR",
		"Mr John Smith",
		"JANE DOE (CHD)",
		"O'BRIEN/MARY MRS",
	}

	for _, raw := range raws {
		once := NormalizeName(raw)
		assert.Equal(t, once, NormalizeName(once), "raw=%q", raw)
	}
}

func TestFirstNameToken(t *testing.T) {
	assert.Equal(t, "John", FirstNameToken("John Smith"))
	assert.Equal(t, "Jane", FirstNameToken("Jane"))
	assert.Equal(t, "", FirstNameToken(""))
	assert.Equal(t, "", FirstNameToken("   "))
}
