package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMBTI(t *testing.T) {
	tests := []struct {
		input string
		want  MBTIType
		ok    bool
	}{
		{"intj", INTJ, true},
		{"  Enfp ", ENFP, true},
		{"ESTP", ESTP, true},
		{"ABCD", "ABCD", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMBTI(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}

	assert.Len(t, AllMBTITypes(), 16)
	assert.Equal(t, "intj_name", INTJ.NameKey())
}

func TestRecommendationData_Lookup(t *testing.T) {
	data, err := LoadRecommendationData()
	require.NoError(t, err)

	ko, ok := data.Lookup(INTJ, "ko")
	require.True(t, ok)
	assert.Equal(t, "ko", ko.Locale)
	require.Len(t, ko.Attractions, 12)
	assert.Equal(t, "범어사", ko.Attractions[0].Name)

	en, ok := data.Lookup(INTJ, "en")
	require.True(t, ok)
	assert.Equal(t, "en", en.Locale)
	assert.Equal(t, "Beomeosa Temple", en.Attractions[0].Name)

	ja, ok := data.Lookup(INTJ, "ja")
	require.True(t, ok)
	assert.Equal(t, "ko", ja.Locale)
	assert.Equal(t, ko.Attractions, ja.Attractions)

	_, ok = data.Lookup("XXXX", "ko")
	assert.False(t, ok)

	// callers get their own copy
	ko.Attractions[0].Name = "changed"
	again, _ := data.Lookup(INTJ, "ko")
	assert.Equal(t, "범어사", again.Attractions[0].Name)
}

func TestRecommendationData_Entries(t *testing.T) {
	data, err := LoadRecommendationData()
	require.NoError(t, err)

	entries := data.Entries()
	require.NotEmpty(t, entries)
	assert.Equal(t, "ko", entries[0].Locale)

	types := map[MBTIType]bool{}
	for _, e := range entries {
		types[e.Type] = true
	}
	assert.Len(t, types, 16)
}

func TestRecommendation_FindAttraction(t *testing.T) {
	rec := &Recommendation{Attractions: []Attraction{
		{Name: "UN평화공원", Category: "공원"},
		{Name: "Haeundae Beach", Category: "Beach"},
	}}

	a, ok := rec.FindAttraction("un 평화공원")
	require.True(t, ok)
	assert.Equal(t, "UN평화공원", a.Name)

	_, ok = rec.FindAttraction("haeundae-beach")
	assert.True(t, ok)

	_, ok = rec.FindAttraction("광안리")
	assert.False(t, ok)

	var nilRec *Recommendation
	_, ok = nilRec.FindAttraction("x")
	assert.False(t, ok)
}

func TestTexts_Get(t *testing.T) {
	texts, err := LoadTexts()
	require.NoError(t, err)

	assert.Equal(t, "MBTI별 부산 관광지 추천", texts.Get("ko", "title"))
	assert.Equal(t, "Busan Tourist Spots by MBTI", texts.Get("en", "title"))
	assert.Equal(t, texts.Get("ko", "title"), texts.Get("fr", "title"))
	assert.Equal(t, "no_such_key", texts.Get("en", "no_such_key"))

	var nilTexts *Texts
	assert.Equal(t, "title", nilTexts.Get("ko", "title"))

	for _, locale := range []string{"ko", "en", "ja", "zh"} {
		for _, mbti := range AllMBTITypes() {
			assert.NotEqual(t, mbti.NameKey(), texts.Get(locale, mbti.NameKey()), "%s %s", locale, mbti)
		}
	}
}

func TestAttractionDetails_Find(t *testing.T) {
	details, err := LoadAttractionDetails()
	require.NoError(t, err)

	d := details.Find("범어사")
	require.NotNil(t, d)
	assert.NotEmpty(t, d.Description)

	assert.Nil(t, details.Find("존재하지 않는 곳"))

	var nilDetails *AttractionDetails
	assert.Nil(t, nilDetails.Find("범어사"))
}

func TestCommandType(t *testing.T) {
	assert.True(t, CommandRecommend.IsValid())
	assert.True(t, CommandUnknown.IsValid())
	assert.False(t, CommandType("schedule").IsValid())
	assert.Equal(t, "detail", CommandDetail.String())
}
