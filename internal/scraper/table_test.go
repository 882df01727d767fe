package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// batchFetcher отдает пачки строк по очереди, имитируя прокрутку
// виртуализированной таблицы.
type batchFetcher struct {
	batches [][][]string
	pos     int
}

func (f *batchFetcher) fetch() ([][]string, error) {
	if f.pos >= len(f.batches) {
		return f.batches[len(f.batches)-1], nil
	}
	return f.batches[f.pos], nil
}

func (f *batchFetcher) advance() error {
	if f.pos < len(f.batches)-1 {
		f.pos++
	}
	return nil
}

func TestReadUntil_ScrollsToTarget(t *testing.T) {
	cols := []string{"Tarih", "TP DK USD A YTL"}
	f := &batchFetcher{batches: [][][]string{
		{{"03-2023", "19.1"}, {"02-2023", "18.8"}},
		{{"03-2023", "19.1"}, {"02-2023", "18.8"}, {"01-2023", "18.7"}},
	}}

	frame, err := ReadUntil("01-2023", cols, f.fetch, f.advance, ReadOptions{})
	require.NoError(t, err)
	require.Len(t, frame.Rows, 3)

	// Порядок — порядок первого наблюдения
	assert.Equal(t, "03-2023", frame.Rows[0]["Tarih"])
	assert.Equal(t, "02-2023", frame.Rows[1]["Tarih"])
	assert.Equal(t, "01-2023", frame.Rows[2]["Tarih"])
	assert.Equal(t, "18.7", frame.Rows[2]["TP DK USD A YTL"])
}

func TestReadUntil_DedupIsIdempotent(t *testing.T) {
	cols := []string{"Tarih", "Value"}
	f := &batchFetcher{batches: [][][]string{
		{{"05-2023", "1"}},
		{{"05-2023", "999"}, {"04-2023", "2"}},
		{{"05-2023", "999"}, {"04-2023", "999"}, {"03-2023", "3"}},
	}}

	frame, err := ReadUntil("03-2023", cols, f.fetch, f.advance, ReadOptions{})
	require.NoError(t, err)
	require.Len(t, frame.Rows, 3)

	// Повторное чтение виденного ключа не дублирует и не изменяет строку
	assert.Equal(t, "1", frame.Rows[0]["Value"])
	assert.Equal(t, "2", frame.Rows[1]["Value"])
}

func TestReadUntil_AlternateKeyMonthly(t *testing.T) {
	cols := []string{"Tarih", "Value"}

	// Цель в форме MM-YYYY, таблица отдает YYYY-MM
	f := &batchFetcher{batches: [][][]string{
		{{"2023-02", "2"}, {"2023-01", "1"}},
	}}
	frame, err := ReadUntil("01-2023", cols, f.fetch, f.advance, ReadOptions{})
	require.NoError(t, err)
	assert.Len(t, frame.Rows, 2)
}

func TestReadUntil_AlternateNotDerivedFromSwappedTarget(t *testing.T) {
	cols := []string{"Tarih", "Value"}

	// Цель уже в переставленной форме YYYY-MM: альтернатива не
	// выводится, ключ строки не переставляется — совпадения нет
	f := &batchFetcher{batches: [][][]string{
		{{"01-2023", "1"}},
	}}
	frame, err := ReadUntil("2023-01", cols, f.fetch, f.advance, ReadOptions{ScrollBudget: 3})
	require.Error(t, err)
	assert.Len(t, frame.Rows, 1)
}

func TestReadUntil_MultiHyphenKeyMatchedLiterally(t *testing.T) {
	cols := []string{"Tarih", "Value"}

	// Дневной формат DD-MM-YYYY: альтернативы нет
	f := &batchFetcher{batches: [][][]string{
		{{"15-01-2023", "1"}},
	}}
	frame, err := ReadUntil("15-01-2023", cols, f.fetch, f.advance, ReadOptions{})
	require.NoError(t, err)
	assert.Len(t, frame.Rows, 1)
}

func TestReadUntil_QuarterKeyGetsNoAlternate(t *testing.T) {
	cols := []string{"Tarih", "Value"}

	f := &batchFetcher{batches: [][][]string{
		{{"2023-Q1", "1"}},
	}}
	// Q1-2023 — один дефис, но не форма MM-YYYY
	frame, err := ReadUntil("Q1-2023", cols, f.fetch, f.advance, ReadOptions{ScrollBudget: 2})
	require.Error(t, err)
	assert.Len(t, frame.Rows, 1)
}

func TestReadUntil_ShortRowKeptTruncated(t *testing.T) {
	cols := []string{"Tarih", "A", "B"}

	f := &batchFetcher{batches: [][][]string{
		{{"02-2023", "x"}, {"01-2023", "y", "z"}},
	}}
	frame, err := ReadUntil("01-2023", cols, f.fetch, f.advance, ReadOptions{})
	require.NoError(t, err)
	require.Len(t, frame.Rows, 2)

	// Короткая строка попадает в результат с частичным отображением
	short := frame.Rows[0]
	assert.Equal(t, "02-2023", short["Tarih"])
	assert.Equal(t, "x", short["A"])
	_, hasB := short["B"]
	assert.False(t, hasB)
}

func TestReadUntil_ExtraCellsIgnored(t *testing.T) {
	cols := []string{"Tarih", "A"}

	f := &batchFetcher{batches: [][][]string{
		{{"01-2023", "1", "мусор", "еще мусор"}},
	}}
	frame, err := ReadUntil("01-2023", cols, f.fetch, f.advance, ReadOptions{})
	require.NoError(t, err)
	require.Len(t, frame.Rows, 1)
	assert.Len(t, frame.Rows[0], 2)
}

func TestReadUntil_EmptyKeysSkipped(t *testing.T) {
	cols := []string{"Tarih", "A"}

	f := &batchFetcher{batches: [][][]string{
		{{"", "пусто"}, {"  ", "пробелы"}, {"01-2023", "1"}},
	}}
	frame, err := ReadUntil("01-2023", cols, f.fetch, f.advance, ReadOptions{})
	require.NoError(t, err)
	assert.Len(t, frame.Rows, 1)
}

func TestReadUntil_BudgetExhaustedReturnsAccumulated(t *testing.T) {
	cols := []string{"Tarih", "A"}

	f := &batchFetcher{batches: [][][]string{
		{{"12-2023", "1"}},
	}}
	frame, err := ReadUntil("01-1990", cols, f.fetch, f.advance, ReadOptions{ScrollBudget: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "01-1990")

	// Накопленные строки не теряются
	assert.Len(t, frame.Rows, 1)
}

func TestAlternateKey(t *testing.T) {
	assert.Equal(t, "2023-01", alternateKey("01-2023"))
	assert.Equal(t, "2023-1", alternateKey("1-2023"))
	assert.Equal(t, "", alternateKey("2023-01"))
	assert.Equal(t, "", alternateKey("15-01-2023"))
	assert.Equal(t, "", alternateKey("2023"))
	assert.Equal(t, "", alternateKey("Q1-2023"))
	assert.Equal(t, "", alternateKey("S1-2023"))
}
