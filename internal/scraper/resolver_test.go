package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidates(texts ...string) []Candidate {
	cands := make([]Candidate, 0, len(texts))
	for _, t := range texts {
		cands = append(cands, Candidate{Text: t})
	}
	return cands
}

func activateText(c Candidate) (string, error) {
	return c.Text, nil
}

func TestResolve_OrdinalSelectsByPosition(t *testing.T) {
	cands := candidates("Prices", "Exchange Rates", "Money Supply")

	for n := 1; n <= len(cands); n++ {
		got, err := Resolve(ByOrdinal(n), cands, activateText)
		require.NoError(t, err)
		assert.Equal(t, cands[n-1].Text, got)
	}
}

func TestResolve_OrdinalOutOfRange(t *testing.T) {
	cands := candidates("Prices", "Exchange Rates")

	activated := false
	activate := func(c Candidate) (string, error) {
		activated = true
		return c.Text, nil
	}

	for _, n := range []int{0, -1, 3, 100} {
		_, err := Resolve(ByOrdinal(n), cands, activate)
		require.Error(t, err)
		assert.True(t, IsSelectionNotFound(err))
	}
	assert.False(t, activated)
}

func TestResolve_OrdinalOutOfRangeFallsBackToText(t *testing.T) {
	// Номер вне диапазона сравнивается дальше как текст
	cands := candidates("2022", "2023")

	got, err := Resolve(ByOrdinal(2023), cands, activateText)
	require.NoError(t, err)
	assert.Equal(t, "2023", got)
}

func TestResolve_ExactMatchBeatsEarlierContainment(t *testing.T) {
	// Первый кандидат подошел бы по вхождению, но точное совпадение
	// дальше по списку имеет приоритет
	cands := candidates("Rates of Exchange", "Rates")

	got, err := Resolve(ByText("Rates"), cands, activateText)
	require.NoError(t, err)
	assert.Equal(t, "Rates", got)
}

func TestResolve_FirstExactMatchInOrder(t *testing.T) {
	// Два кандидата с одинаковым текстом: выбирается первый по порядку
	cands := []Candidate{
		{Text: "CPI", Handle: "first"},
		{Text: "GDP", Handle: "second"},
		{Text: "CPI", Handle: "third"},
	}

	var selected any
	got, err := Resolve(ByText("CPI"), cands, func(c Candidate) (string, error) {
		selected = c.Handle
		return c.Text, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "CPI", got)
	assert.Equal(t, "first", selected)
}

func TestResolve_ContainmentBothDirections(t *testing.T) {
	// Цель — подстрока кандидата
	cands := candidates("Prices", "Exchange Rates", "Money Supply")
	got, err := Resolve(ByText("Rates"), cands, activateText)
	require.NoError(t, err)
	assert.Equal(t, "Exchange Rates", got)

	// Кандидат — подстрока цели (избыточный ввод)
	got, err = Resolve(ByText("Exchange Rates (USD)"), cands, activateText)
	require.NoError(t, err)
	assert.Equal(t, "Exchange Rates", got)
}

func TestResolve_MatchingIsCaseSensitive(t *testing.T) {
	cands := candidates("Prices")

	_, err := Resolve(ByText("prices"), cands, activateText)
	require.Error(t, err)
	assert.True(t, IsSelectionNotFound(err))
}

func TestResolve_NotFoundNeverActivates(t *testing.T) {
	cands := candidates("Prices", "Money Supply")

	activated := false
	_, err := Resolve(ByText("Inflation"), cands, func(c Candidate) (string, error) {
		activated = true
		return c.Text, nil
	})

	require.Error(t, err)
	assert.True(t, IsSelectionNotFound(err))
	assert.False(t, activated)
}

func TestResolve_EmptyCandidates(t *testing.T) {
	_, err := Resolve(ByText("anything"), nil, activateText)
	require.Error(t, err)
	assert.True(t, IsSelectionNotFound(err))
}

func TestResolve_ActivationErrorPropagates(t *testing.T) {
	cands := candidates("Prices")

	_, err := Resolve(ByText("Prices"), cands, func(c Candidate) (string, error) {
		return "", assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
}
