package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Test case 1: Standard values
	runDate := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	id := "5f3a1c9e-8a1b-4a5e-9f2d-2c7b6d1e0a44"

	token := EncodeToken(runDate, id)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, runDate, decodedDate, "Date should match after decode")
	assert.Equal(t, id, decodedID, "ID should match after decode")

	// Test case 2: Zero time value
	zeroToken := EncodeToken(time.Time{}, "")
	decodedZeroDate, decodedZeroID, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, time.Time{}, decodedZeroDate, "Zero date should match after decode")
	assert.Equal(t, "", decodedZeroID, "Empty ID should match after decode")

	// Test case 3: Current time
	now := time.Now().UTC()
	nowToken := EncodeToken(now, "row-1")
	decodedNow, _, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(decodedNow), "Current date should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	invalidToken := "MjAyMy0wNS0xNVQwMDowMDowMFo=" // Base64 encoded date without separator
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid date format
	invalidDateToken := "bm90YWRhdGV8cm93LTE=" // Base64 encoded "notadate|row-1"
	_, _, err = DecodeToken(invalidDateToken)
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "date parse", "Error should mention date parsing issue")
}

func TestEncodeDateBasedToken(t *testing.T) {
	testDate := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	token := EncodeDateBasedToken(testDate)

	decodedDate, err := DecodeDateBasedToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, testDate, decodedDate, "Date should match after decode")
}
