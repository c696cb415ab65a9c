package cli

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/timekeeper/internal/common"
	"github.com/dmitrijs2005/timekeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2025, 2, 5, 23, 30, 0, 0, time.UTC)

	got, err := parseDate("2025-02-03", now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, loc), got)

	got, err = parseDate("today", now, loc)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Day(), "today is evaluated in loc")

	got, err = parseDate("Yesterday", now, loc)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Day())

	_, err = parseDate("05/02/2025", now, loc)
	require.Error(t, err)
}

func TestParseHourAndRate(t *testing.T) {
	h, err := parseHour("9")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	_, err = parseHour("nine")
	require.Error(t, err)

	r, err := parseRate("$22.5")
	require.NoError(t, err)
	assert.Equal(t, 22.5, r)
	_, err = parseRate("lots")
	require.Error(t, err)
}

func TestFindUser(t *testing.T) {
	users := []models.User{
		{ID: "2", Email: "employee@example.com", FirstName: "John"},
		{ID: "8", Email: "john.smith@example.com", FirstName: "John"},
		{ID: "3", Email: "sarah.wilson@example.com", FirstName: "Sarah"},
	}

	u, err := findUser(users, "3")
	require.NoError(t, err)
	assert.Equal(t, "Sarah", u.FirstName)

	u, err = findUser(users, "SARAH")
	require.NoError(t, err)
	assert.Equal(t, "3", u.ID)

	u, err = findUser(users, "john.smith@example.com")
	require.NoError(t, err)
	assert.Equal(t, "8", u.ID)

	_, err = findUser(users, "john")
	require.ErrorContains(t, err, "ambiguous")

	_, err = findUser(users, "nobody")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
