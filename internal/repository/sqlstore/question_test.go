package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/edumentor/internal/model"
)

func TestQuestionSave_RoundTrip(t *testing.T) {
	st := newTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")
	math := createTestCategory(t, st, "Math")

	in := &model.Question{
		Title:    "How do I factor a quadratic?",
		Details:  "x^2 + 5x + 6",
		ImageURL: "https://img.example.com/q.png",
		User:     alice.Summary(),
		Category: *math,
	}
	require.NoError(t, st.Questions().Save(ctx, in))

	got, err := st.Questions().FindByID(ctx, in.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Details, got.Details)
	assert.Equal(t, in.ImageURL, got.ImageURL)
	assert.True(t, in.DateCreated.Equal(got.DateCreated))
	assert.Equal(t, model.UserSummary{ID: alice.ID, Username: "alice"}, got.User)
	assert.Equal(t, *math, got.Category)
}

func TestQuestionFinders(t *testing.T) {
	st := newTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")
	bob := createTestUser(t, st, "bob")
	math := createTestCategory(t, st, "Math")
	createTestQuestion(t, st, "Concatenation in Python", alice, nil)
	createTestQuestion(t, st, "Dog facts", bob, math)

	byTitle, err := st.Questions().FindByTitle(ctx, "cat")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Concatenation in Python", byTitle[0].Title)

	byUser, err := st.Questions().FindByUserID(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, "Dog facts", byUser[0].Title)

	byCategory, err := st.Questions().FindByCategoryID(ctx, math.ID)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "bob", byCategory[0].User.Username)

	byDate, err := st.Questions().FindByDate(ctx, fixedNow)
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	none, err := st.Questions().FindByDate(ctx, fixedNow.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQuestionSearch_TitleOrDetails(t *testing.T) {
	st := newTestDB(t)
	ctx := context.Background()
	alice := createTestUser(t, st, "alice")

	for _, q := range []*model.Question{
		{Title: "Recursion", Details: "what is a base case?"},
		{Title: "Base conversion", Details: "binary to hex"},
		{Title: "Loops", Details: "for vs while", DateCreated: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
	} {
		q.User = alice.Summary()
		require.NoError(t, st.Questions().Save(ctx, q))
	}

	found, err := st.Questions().Search(ctx, "base")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Recursion", found[0].Title)
	assert.Equal(t, "Base conversion", found[1].Title)
}
