package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// Cursor is the position of the last entry on a page.
type Cursor struct {
	Order          string
	Date           time.Time
	SequenceNumber int64
}

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}

// EncodeCursor builds the opaque next-page token for an entry listing.
func EncodeCursor(c Cursor) string {
	return EncodeMultiFieldToken(c.Order, c.Date.UTC().Format(dateFormat), strconv.FormatInt(c.SequenceNumber, 10))
}

// DecodeCursor parses a token produced by EncodeCursor. The token must have been
// issued for wantOrder; a cursor from a differently ordered listing is rejected.
func DecodeCursor(token, wantOrder string) (Cursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return Cursor{}, err
	}
	if len(parts) != 3 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}
	if parts[0] != wantOrder {
		return Cursor{}, fmt.Errorf("pagination token was issued for order %q, not %q", parts[0], wantOrder)
	}
	date, err := time.Parse(dateFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	seq, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (sequence parse): %w", err)
	}
	return Cursor{Order: parts[0], Date: date, SequenceNumber: seq}, nil
}
