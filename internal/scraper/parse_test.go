package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withReportTable(d *fakeDriver, rows [][]string) {
	d.selectors[selTableContent] = []*fakeEl{{}}
	d.selectors[selTableHeaders] = []*fakeEl{
		{text: "Tarih"}, {text: "TP DK USD A YTL"},
	}
	d.selectors[selScrollContainer] = []*fakeEl{{}}

	for _, cells := range rows {
		row := &fakeEl{}
		d.selectors[selTableRows] = append(d.selectors[selTableRows], row)
		var els []*fakeEl
		for _, text := range cells {
			els = append(els, &fakeEl{text: text})
		}
		d.children[row] = map[string][]*fakeEl{selTableCells: els}
	}
}

func TestParseTable_ReadsUntilBeginDate(t *testing.T) {
	d := newFakeDriver()
	withReportTable(d, [][]string{
		{"03-2023", "19.1"},
		{"02-2023", "18.8"},
		{"01-2023", "18.7"},
	})

	s := newTestSession(d, &Config{})
	s.phase = PhaseReportGenerated

	frame := s.ParseTable(context.Background(), "01-2023")
	require.Len(t, frame.Rows, 3)
	assert.Equal(t, []string{"Tarih", "TP DK USD A YTL"}, frame.Columns)
	assert.Equal(t, "18.7", frame.Rows[2]["TP DK USD A YTL"])
	assert.Zero(t, d.scrolls)
}

func TestParseTable_BudgetExhaustedKeepsAccumulated(t *testing.T) {
	d := newFakeDriver()
	withReportTable(d, [][]string{
		{"03-2023", "19.1"},
	})

	s := newTestSession(d, &Config{ScrollBudget: 4})
	s.phase = PhaseReportGenerated

	// Целевая дата за пределами таблицы: бюджет кончается,
	// накопленные строки не теряются
	frame := s.ParseTable(context.Background(), "01-1990")
	assert.Len(t, frame.Rows, 1)
	assert.Equal(t, 4, d.scrolls)
}

func TestParseTable_EmptyBeforeReport(t *testing.T) {
	d := newFakeDriver()
	withReportTable(d, [][]string{{"01-2023", "18.7"}})

	s := newTestSession(d, &Config{})
	frame := s.ParseTable(context.Background(), "01-2023")
	assert.Empty(t, frame.Rows)
	assert.Empty(t, frame.Columns)
}

func TestParseTable_EmptyWhenTableMissing(t *testing.T) {
	d := newFakeDriver()
	s := newTestSession(d, &Config{})
	s.phase = PhaseReportGenerated

	frame := s.ParseTable(context.Background(), "01-2023")
	require.NotNil(t, frame)
	assert.Empty(t, frame.Rows)
}

func TestParseExplanations_SplitsDescriptionAndCalcType(t *testing.T) {
	d := newFakeDriver()
	d.selectors[selExplanationTab] = []*fakeEl{{}}

	section := &fakeEl{}
	container := &fakeEl{}
	d.selectors[selExplanationSections] = []*fakeEl{section}
	d.children[section] = map[string][]*fakeEl{
		selExplanationCode: {{text: "TP DK USD A YTL"}},
		selExplanationDesc: {container},
	}
	d.children[container] = map[string][]*fakeEl{
		selExplanationText: {{text: "(USD) US Dollar (Buying) - <i>Level</i>"}},
		selExplanationInfo: {{text: "Kaynak: TCMB"}},
	}

	s := newTestSession(d, &Config{})
	expls := s.ParseExplanations(context.Background())
	require.Len(t, expls, 1)

	assert.Equal(t, "TP DK USD A YTL", expls[0].Code)
	assert.Equal(t, "(USD) US Dollar (Buying)", expls[0].Description)
	assert.Equal(t, "Level", expls[0].CalculationType)
	assert.Equal(t, "Kaynak: TCMB", expls[0].AdditionalInfo)
}

func TestParseExplanations_EmptyWhenTabMissing(t *testing.T) {
	d := newFakeDriver()
	s := newTestSession(d, &Config{})

	expls := s.ParseExplanations(context.Background())
	assert.NotNil(t, expls)
	assert.Empty(t, expls)
}

func TestParseExplanations_SkipsBrokenSection(t *testing.T) {
	d := newFakeDriver()
	d.selectors[selExplanationTab] = []*fakeEl{{}}

	// Секция без кода пропускается, не ломая остальные
	broken := &fakeEl{}
	section := &fakeEl{}
	container := &fakeEl{}
	d.selectors[selExplanationSections] = []*fakeEl{broken, section}
	d.children[section] = map[string][]*fakeEl{
		selExplanationCode: {{text: "TP FG J0"}},
		selExplanationDesc: {container},
	}
	d.children[container] = map[string][]*fakeEl{
		selExplanationText: {{text: "Tüketici Fiyat Endeksi - <i>Yüzde Değişim</i>"}},
	}

	s := newTestSession(d, &Config{})
	expls := s.ParseExplanations(context.Background())
	require.Len(t, expls, 1)
	assert.Equal(t, "TP FG J0", expls[0].Code)
}
