package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/dgt-vocab-bot/internal/domain/entities"
	"github.com/aliskhannn/dgt-vocab-bot/internal/repository"
	"github.com/aliskhannn/dgt-vocab-bot/internal/service"
	"github.com/aliskhannn/dgt-vocab-bot/internal/storage"
)

func TestRunQuiz_AnswersUntilLastCard(t *testing.T) {
	ctx := context.Background()

	repo, err := repository.NewCardRepository([]entities.CardRecord{
		{Word: "coche", Translation: "car"},
		{Word: "calle", Translation: "street"},
	})
	require.NoError(t, err)

	s, err := service.OpenSession(ctx, repo, storage.NewMemoryStore(), service.SessionOptions{Seed: 9}, nil)
	require.NoError(t, err)

	// Two options: trying 1 then 2 always hits the answer.
	var out bytes.Buffer
	require.NoError(t, runQuiz(ctx, s, strings.NewReader("1\n2\n"), &out))

	assert.Contains(t, out.String(), `What does "coche" mean?`)
	assert.Contains(t, out.String(), "Correct: coche = car")
	assert.Contains(t, out.String(), "One card left, review it as a flashcard: calle = street")
	assert.Equal(t, entities.QuizLastCard, s.QuizStep().State)
}

func TestRunQuiz_InvalidInput(t *testing.T) {
	ctx := context.Background()

	repo, err := repository.NewCardRepository([]entities.CardRecord{
		{Word: "coche", Translation: "car"},
		{Word: "calle", Translation: "street"},
		{Word: "rápido", Translation: "fast"},
	})
	require.NoError(t, err)

	s, err := service.OpenSession(ctx, repo, storage.NewMemoryStore(), service.SessionOptions{Seed: 9}, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runQuiz(ctx, s, strings.NewReader("abc\nq\n"), &out))

	assert.Contains(t, out.String(), "Enter a number from 1 to 3")
	assert.Contains(t, out.String(), "Score: 0/0 (0 attempts)")
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"4", " 7"})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 7}, ids)

	_, err = parseIDs([]string{"-1"})
	assert.Error(t, err)
}

func TestReadSnapshot_Invalid(t *testing.T) {
	_, err := readSnapshot(strings.NewReader(`{"known": [1,`))
	assert.ErrorContains(t, err, "decode snapshot")
}
