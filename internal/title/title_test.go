package title

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"card-listing/internal/card"
)

func janeDoe() card.Card {
	return card.Card{
		"year":            "2023",
		"brand":           "Topps",
		"set":             "Chrome",
		"player_first":    "Jane",
		"player_last":     "Doe",
		"card_number":     "15",
		"serial_number":   "1/99",
		"team_city":       "Chicago",
		"team_name":       "Bulls",
		"rookie":          "RC",
		"grading_company": "",
		"numerical_grade": false,
	}
}

func TestBuildEndToEnd(t *testing.T) {
	res, err := Build(janeDoe(), DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, "2023 Topps Chrome Jane Doe 15 1/99 Chicago Bulls RC", res.Title)
	assert.Empty(t, res.Dropped)
	assert.NotNil(t, res.Dropped)
}

func TestBuildOptionalGroupOrder(t *testing.T) {
	c := card.Card{
		"year": "2021", "brand": "Panini", "set": "Prizm",
		"player_first": "A", "player_last": "B", "card_number": "1",
		"rc": "RC", "team": "Bulls", "team_city": "Chicago", "grade": "9",
		"grader": "BGS", "serial": "5/5", "auto_patch_type": "Auto",
		"variety": "Silver", "insert_set": "Kaboom",
	}
	res, err := Build(c, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, "2021 Panini Prizm A B 1 Kaboom Silver Auto 5/5 BGS 9 Chicago Bulls RC", res.Title)
}

func TestBuildCollapsesWhitespaceAndStringifiesNumbers(t *testing.T) {
	c := card.Card{
		"year": float64(2020), "brand": "  Upper   Deck ", "set_name": "Young\tGuns",
		"player_first_name": "Connor", "player_last_name": "McDavid", "card_no": float64(201),
		"parallel": "  Clear   Cut ",
	}
	res, err := Build(c, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, "2020 Upper Deck Young Guns Connor McDavid 201 Clear Cut", res.Title)
}

func TestBuildSkipsNormalizedBlanks(t *testing.T) {
	c := janeDoe()
	c["rookie"] = "no"
	c["team_city"] = "N/A"
	c["parallel"] = true
	c["serial_number"] = "numbered"
	res, err := Build(c, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, "2023 Topps Chrome Jane Doe 15 Bulls", res.Title)
}

func TestBuildDropsInPriorityOrder(t *testing.T) {
	c := card.Card{
		"year": "2023", "brand": "Topps", "set": "Chrome",
		"player_first": "Jane", "player_last": "Doe", "card_number": "15",
		"insert": "Future Stars Showcase", "parallel": "Refractor", "serial_number": "50/99",
		"grading_company": "PSA", "numerical_grade": "10",
		"team_city": "San Francisco", "team_name": "Valkyries", "rookie": "Rookie",
	}
	res, err := Build(c, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, "2023 Topps Chrome Jane Doe 15 Future Stars Showcase Refractor /99 PSA 10 Rookie", res.Title)
	assert.Equal(t, []Group{GroupTeamCity, GroupTeamName}, res.Dropped)
}

func TestBuildDropsSkipAbsentGroups(t *testing.T) {
	c := card.Card{
		"year": "2023", "brand": "Panini", "set": "Prizm Draft Picks",
		"player_first": "Christopher", "player_last": "Montgomery", "card_number": "123",
		"insert": "Stained Glass", "parallel": "Gold Shimmer", "auto_patch": "Patch Auto",
		"serial_number": "7/10", "grading_company": "PSA", "numerical_grade": "10",
		"team_city": "Los Angeles", "team_name": "Lakers", "rookie": "RC",
	}
	res, err := Build(c, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, "2023 Panini Prizm Draft Picks Christopher Montgomery 123 Patch Auto /10 RC", res.Title)
	assert.Equal(t, []Group{
		GroupTeamCity, GroupTeamName, GroupNumericalGrade,
		GroupGradingCompany, GroupParallel, GroupInsert,
	}, res.Dropped)

	delete(c, "team_city")
	res, err = Build(c, DefaultRules())
	require.NoError(t, err)
	assert.NotContains(t, res.Dropped, GroupTeamCity)
	assert.Equal(t, GroupTeamName, res.Dropped[0])
}

func TestBuildDroppedIsPriorityPrefix(t *testing.T) {
	c := card.Card{
		"year": "2023", "brand": "Panini", "set": "Prizm Draft Picks",
		"player_first": "Christopher", "player_last": "Montgomery", "card_number": "123",
		"insert": "Stained Glass", "parallel": "Gold Shimmer", "auto_patch": "Patch Auto",
		"serial_number": "7/10", "grading_company": "PSA", "numerical_grade": "10",
		"team_city": "Los Angeles", "team_name": "Lakers", "rookie": "RC",
	}
	res, err := Build(c, DefaultRules())
	require.NoError(t, err)
	prio := DefaultRules().DropPriority
	for i, g := range res.Dropped {
		assert.Equal(t, prio[i], g)
	}
}

func TestBuildOverflow(t *testing.T) {
	c := card.Card{
		"year": "2023", "brand": "Panini",
		"set":          "Prizm Draft Picks Collegiate Championship Edition",
		"player_first": "Christopher", "player_last": "Montgomery", "card_number": "123",
		"rookie": "RC",
	}
	_, err := Build(c, DefaultRules())
	require.Error(t, err)
	var overflow *OverflowError
	require.True(t, errors.As(err, &overflow))
	assert.Equal(t, 88, overflow.Length)
	assert.Equal(t, MaxLen, overflow.Max)
	assert.Equal(t, "2023 Panini Prizm Draft Picks Collegiate Championship Edition Christopher Montgomery 123", overflow.Title)
	assert.Contains(t, err.Error(), "88")
}

func TestBuildLengthInvariant(t *testing.T) {
	base := janeDoe()
	for n := 0; n < 60; n += 3 {
		c := card.Card{}
		for k, v := range base {
			c[k] = v
		}
		c["insert"] = strings.Repeat("x", n)
		c["parallel"] = strings.Repeat("é", n)
		res, err := Build(c, DefaultRules())
		require.NoError(t, err)
		assert.LessOrEqual(t, utf8.RuneCountInString(res.Title), MaxLen)
		assert.True(t, strings.HasPrefix(res.Title, "2023 Topps Chrome Jane Doe 15"))
	}
}

func TestBuildMeasuresRunes(t *testing.T) {
	c := card.Card{
		"year": "2023", "brand": "Épée", "set": strings.Repeat("é", 60),
		"player_first": "A", "player_last": "B", "card_number": "1",
	}
	res, err := Build(c, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, 76, utf8.RuneCountInString(res.Title))
	assert.Greater(t, len(res.Title), MaxLen)
}

func TestBuildIsDeterministic(t *testing.T) {
	first, err := Build(janeDoe(), DefaultRules())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Build(janeDoe(), DefaultRules())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildHonoursCustomMaxLen(t *testing.T) {
	res, err := Build(janeDoe(), Rules{MaxLen: 40})
	require.NoError(t, err)
	assert.Equal(t, "2023 Topps Chrome Jane Doe 15 1/99 RC", res.Title)
	assert.Equal(t, []Group{GroupTeamCity, GroupTeamName}, res.Dropped)
}

func TestBuildEmptyMandatoryTokens(t *testing.T) {
	res, err := Build(card.Card{"brand": "Topps", "rookie": "RC"}, DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, "Topps RC", res.Title)
}
