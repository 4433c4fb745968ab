package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursor(t *testing.T) {
	c := Cursor{
		Order:          "date_desc",
		Date:           time.Date(2024, 7, 1, 15, 4, 5, 0, time.UTC),
		SequenceNumber: 1042,
	}

	token := EncodeCursor(c)
	assert.NotEmpty(t, token, "Token should not be empty")

	got, err := DecodeCursor(token, "date_desc")
	require.NoError(t, err)
	assert.Equal(t, "date_desc", got.Order)
	// Only the calendar date survives the round trip.
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), got.Date)
	assert.Equal(t, int64(1042), got.SequenceNumber)
}

func TestDecodeCursorErrors(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		order   string
		wantErr string
	}{
		{"not base64", "this is not base64!", "date_desc", "base64 decode"},
		{"wrong field count", EncodeMultiFieldToken("date_desc", "2024-01-01"), "date_desc", "split"},
		{"order mismatch", EncodeMultiFieldToken("date_asc", "2024-01-01", "1"), "date_desc", "issued for order"},
		{"bad date", EncodeMultiFieldToken("date_desc", "yesterday", "1"), "date_desc", "date parse"},
		{"bad sequence", EncodeMultiFieldToken("date_desc", "2024-01-01", "x"), "date_desc", "sequence parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCursor(tt.token, tt.order)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEncodeMultiFieldToken(t *testing.T) {
	// Test with simple fields
	fields := []string{"field1", "field2", "field3"}
	token := EncodeMultiFieldToken(fields...)

	decodedFields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, fields, decodedFields, "Fields should match after decode")

	// Test with empty fields
	emptyToken := EncodeMultiFieldToken()
	decodedEmpty, err := DecodeMultiFieldToken(emptyToken)
	assert.NoError(t, err, "Decoding should not return an error")
	// When splitting an empty string with strings.Split, we get a slice with one empty string
	assert.Equal(t, []string{""}, decodedEmpty, "Should decode to slice with one empty string")

	// Test with special characters
	specialFields := []string{"field|with|pipes", "field with spaces"}
	specialToken := EncodeMultiFieldToken(specialFields...)

	decodedSpecial, err := DecodeMultiFieldToken(specialToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Len(t, decodedSpecial, 4, "Should split on all pipe characters")
}
