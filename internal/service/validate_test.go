package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("01012345678"))
	assert.True(t, ValidPhone("010-1234-5678"))
	assert.True(t, ValidPhone("021234567"))
	assert.False(t, ValidPhone("123-45"))
	assert.False(t, ValidPhone("12345678"))
	assert.False(t, ValidPhone("010123456789"))
	assert.False(t, ValidPhone(""))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "01012345678", NormalizePhone("010-1234-5678"))
	assert.Equal(t, "01012345678", NormalizePhone(" (010) 1234 5678 "))
	assert.Equal(t, "", NormalizePhone("없음"))
}

func TestIsYMD(t *testing.T) {
	assert.True(t, IsYMD("2025-01-31"))
	assert.False(t, IsYMD("2025-02-30"))
	assert.False(t, IsYMD("2025-1-3"))
	assert.False(t, IsYMD(""))
}

func TestIsHHMM(t *testing.T) {
	assert.True(t, IsHHMM("19:30"))
	assert.True(t, IsHHMM("00:00"))
	assert.False(t, IsHHMM("24:10"))
	assert.False(t, IsHHMM("7:30"))
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-02-29", end)

	_, _, err = MonthRange("2024-13")
	assert.Error(t, err)
}

func TestToday_UsesLocation(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	now := time.Date(2025, 3, 31, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-04-01", Today(now, seoul))
	assert.Equal(t, "2025-03-31", Today(now, time.UTC))
}

func TestValidateStruct_FirstFieldWins(t *testing.T) {
	messages := map[string]string{
		"date":     "날짜를 입력하세요.",
		"time":     "시간을 입력하세요.",
		"location": "장소를 입력하세요.",
	}
	err := ValidateStruct(EventForm{Location: " "}, messages)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)
	assert.Equal(t, "날짜를 입력하세요.", verr.Message)
	assert.True(t, IsValidation(err))
}

func TestValidateStruct_NotBlank(t *testing.T) {
	form := EventForm{Date: "2025-01-01", Time: "19:00", Location: "   ", HostID: "m1", AttendeeIDs: []string{"m1"}}
	err := ValidateStruct(form, map[string]string{"location": "장소를 입력하세요."})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "location", verr.Field)
}

func TestValidateStruct_StatusChange(t *testing.T) {
	require.NoError(t, ValidateStruct(StatusChange{Status: "injured"}, nil))

	err := ValidateStruct(StatusChange{Status: "gone"}, nil)
	assert.True(t, IsValidation(err))

	err = ValidateStruct(StatusChange{Status: "withdrawn", ExitDate: "2025/01/01"}, nil)
	assert.True(t, IsValidation(err))
}
