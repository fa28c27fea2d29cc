package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	t.Run("parse and format", func(t *testing.T) {
		d, err := ParseDate("2024-01-15")
		require.NoError(t, err)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.January, d.Month())
		assert.Equal(t, 15, d.Day())
		assert.Equal(t, "2024-01-15", d.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseDate("15/01/2024")
		assert.Error(t, err)
	})

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(NewDate(2023, time.December, 31))
		require.NoError(t, err)
		assert.JSONEq(t, `"2023-12-31"`, string(data))

		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2023-12-31"`), &d))
		assert.True(t, d.Equal(NewDate(2023, time.December, 31).Time))

		require.NoError(t, json.Unmarshal([]byte(`""`), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("DateOf drops time of day", func(t *testing.T) {
		d := DateOf(time.Date(2024, time.March, 3, 23, 59, 0, 0, time.UTC))
		assert.Equal(t, "2024-03-03", d.String())
		assert.Equal(t, "2024-03-01", d.MonthStart().String())
	})
}

func TestNewGroupID(t *testing.T) {
	now := time.Date(2024, time.July, 4, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "group_20240704093005_3", NewGroupID(now, 3))
}

func TestGroupMembership(t *testing.T) {
	g := &Group{Members: []string{"alice", "bob"}, PendingInvites: []string{"carol"}}
	assert.True(t, g.HasMember("alice"))
	assert.False(t, g.HasMember("Alice"))
	assert.True(t, g.IsInvited("carol"))
	assert.False(t, g.IsInvited("bob"))
}
