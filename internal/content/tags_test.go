package content

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "no hashtags",
			raw:      "전기차 보조금은 지역마다 다릅니다.",
			expected: "",
		},
		{
			name:     "short tags only",
			raw:      "#EV #car #ab",
			expected: "",
		},
		{
			name:     "keeps order and drops duplicates",
			raw:      "#Tesla and #Hyundai then #Tesla again",
			expected: "Tesla, Hyundai",
		},
		{
			name:     "strips digits and punctuation",
			raw:      "#EV_2024 #(Subsidy) #Ioniq5",
			expected: "Subsidy, Ioniq",
		},
		{
			name:     "cleaned tags must stay longer than three letters",
			raw:      "#a1b2c3 #long_term",
			expected: "longterm",
		},
		{
			name:     "heading hashes are trimmed",
			raw:      "##Overview\n###Details",
			expected: "Overview, Details",
		},
		{
			name:     "korean hashtags are ignored",
			raw:      "#전기차 #보조금",
			expected: "",
		},
		{
			name:     "empty input",
			raw:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractTags(tt.raw))
		})
	}
}

func TestExtractTags_OutputAlphabet(t *testing.T) {
	got := ExtractTags("#Hello_World1 #x #ab(cd)ef #999 #Road-Trip")

	assert.Regexp(t, regexp.MustCompile(`^[a-zA-Z, ]*$`), got)
	for _, tag := range SplitTags(got) {
		assert.Greater(t, len(tag), 3, tag)
	}
}

func TestSplitTags(t *testing.T) {
	assert.Nil(t, SplitTags(""))
	assert.Equal(t, []string{"Tesla", "Hyundai"}, SplitTags("Tesla, Hyundai"))
}
