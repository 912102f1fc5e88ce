package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
)

func TestNewCardRepository_AssignsIDsByPosition(t *testing.T) {
	repo, err := NewCardRepository([]entities.CardRecord{
		{Word: "coche", Translation: "car", Category: "Noun"},
		{Word: " conducir ", Translation: "to drive", Category: "VERB", Topics: []string{"topic02", " "}},
	})
	require.NoError(t, err)

	require.Equal(t, 2, repo.Len())

	c0, err := repo.GetByID(0)
	require.NoError(t, err)
	assert.Equal(t, "coche", c0.Word)
	assert.Equal(t, "noun", c0.Category)
	assert.Empty(t, c0.SecondaryTranslation)
	assert.Empty(t, c0.Topics)

	c1, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, 1, c1.ID)
	assert.Equal(t, "conducir", c1.Word)
	assert.Equal(t, "verb", c1.Category)
	assert.Equal(t, []string{"topic02"}, c1.Topics)

	_, err = repo.GetByID(2)
	assert.ErrorIs(t, err, ErrCardNotFound)
	assert.False(t, repo.Exists(-1))
}

func TestNewCardRepository_Errors(t *testing.T) {
	_, err := NewCardRepository(nil)
	assert.ErrorIs(t, err, ErrNoCards)

	_, err = NewCardRepository([]entities.CardRecord{
		{Word: "coche", Translation: "car"},
		{Word: "calle"},
	})
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "record 1")
}

func TestCardRepository_CategoriesAndTopics(t *testing.T) {
	repo, err := NewCardRepository([]entities.CardRecord{
		{Word: "a", Translation: "a", Category: "verb", Topics: []string{"topic03"}},
		{Word: "b", Translation: "b", Category: "noun", Topics: []string{"topic01", "topic03"}},
		{Word: "c", Translation: "c"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"noun", "verb"}, repo.Categories())
	assert.Equal(t, []string{"topic01", "topic03"}, repo.Topics())
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.json")
	data := `[
		{"word": "coche", "translation": "car", "perevod": "машина", "category": "noun", "topics": ["topic02"]},
		{"word": "rápido", "translation": "fast", "category": "adjective", "example": "Es muy rápido."}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	repo, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, repo.Len())

	assert.Equal(t, "машина", repo.All()[0].SecondaryTranslation)
	assert.Equal(t, "Es muy rápido.", repo.All()[1].Example)
}

func TestLoadJSON_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadJSON(path)
	assert.Error(t, err)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load("vocabulary.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.xlsx")

	f := excelize.NewFile()
	rows := [][]any{
		{"word", "translation", "perevod", "category", "example", "topics"},
		{"coche", "car", "машина", "Noun", "", "topic02, topic04"},
		{},
		{"calle", "street", "", "noun", "La calle es ancha.", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	repo, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, repo.Len())

	first := repo.All()[0]
	assert.Equal(t, "coche", first.Word)
	assert.Equal(t, "noun", first.Category)
	assert.Equal(t, []string{"topic02", "topic04"}, first.Topics)

	second := repo.All()[1]
	assert.Equal(t, 1, second.ID)
	assert.Equal(t, "La calle es ancha.", second.Example)
	assert.Empty(t, second.Topics)
}
