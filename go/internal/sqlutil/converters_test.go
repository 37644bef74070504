package sqlutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNullableInts(t *testing.T) {
	assert.False(t, ToSqlInt32(nil).Valid)
	assert.Nil(t, FromSqlInt32(sql.NullInt32{}))

	v := 24
	got := FromSqlInt32(ToSqlInt32(&v))
	if assert.NotNil(t, got) {
		assert.Equal(t, 24, *got)
	}
}

func TestNullableStrings(t *testing.T) {
	assert.Equal(t, "fallback", FromSqlString(sql.NullString{}, "fallback"))
	assert.Nil(t, FromSqlStringPtr(ToSqlString(nil)))

	s := "Ace"
	assert.Equal(t, "Ace", FromSqlString(ToSqlString(&s), "fallback"))
}

func TestFromSqlTimeIsUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	at := time.Date(2025, 12, 20, 12, 0, 0, 0, est)

	got := FromSqlTime(ToSqlTime(&at))
	if assert.NotNil(t, got) {
		assert.Equal(t, time.UTC, got.Location())
		assert.True(t, got.Equal(at))
	}
	assert.Nil(t, FromSqlTime(sql.NullTime{}))
}
