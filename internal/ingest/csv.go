// Package ingest parses uploaded CSV tables into domain rows. Malformed
// rows are skipped with a warning; they never abort the whole upload.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"realassist/internal/models"

	"github.com/rs/zerolog"
)

// ParseResult carries the valid rows plus per-row warnings for the ones
// that were skipped.
type ParseResult[T any] struct {
	Rows     []T
	Warnings []string
}

// Skipped returns the number of rejected rows.
func (r ParseResult[T]) Skipped() int {
	return len(r.Warnings)
}

// ParseInquiries reads an inquiry upload. Expected header columns:
// "Listing ID", "Inquirer Name", "Inquirer Email", "Message" and the
// optional "Phone Number".
func ParseInquiries(r io.Reader, logger zerolog.Logger) (ParseResult[models.Inquiry], error) {
	result := ParseResult[models.Inquiry]{}

	rows, header, err := readAll(r)
	if err != nil {
		return result, err
	}

	for i, row := range rows {
		get := func(column string) string {
			return strings.TrimSpace(fieldByHeader(header, row, column))
		}

		inquiry := models.Inquiry{
			ListingID: get("Listing ID"),
			Name:      get("Inquirer Name"),
			Email:     get("Inquirer Email"),
			Message:   get("Message"),
		}
		if phone := get("Phone Number"); phone != "" {
			inquiry.PhoneNumber = &phone
		}

		if err := inquiry.Validate(); err != nil {
			warning := fmt.Sprintf("row %d: %v", i+2, err)
			logger.Warn().Str("warning", warning).Msg("Skipping malformed inquiry row")
			result.Warnings = append(result.Warnings, warning)
			continue
		}

		result.Rows = append(result.Rows, inquiry)
	}

	return result, nil
}

// ParseListings reads a listings upload with the columns the index
// builder expects ("Listing ID", "Title", "Address", "City",
// "State/Province", "ZIP/Postal Code", "Price", "Bedrooms", "Bathrooms",
// "Square Footage", "Amenities").
func ParseListings(r io.Reader, logger zerolog.Logger) (ParseResult[models.Listing], error) {
	result := ParseResult[models.Listing]{}

	rows, header, err := readAll(r)
	if err != nil {
		return result, err
	}

	for i, row := range rows {
		get := func(column string) string {
			return strings.TrimSpace(fieldByHeader(header, row, column))
		}

		listing := models.Listing{
			ListingID: get("Listing ID"),
			Title:     get("Title"),
			Address:   get("Address"),
			City:      get("City"),
			State:     get("State/Province"),
			Zip:       get("ZIP/Postal Code"),
			Amenities: get("Amenities"),
		}
		listing.Price, _ = strconv.ParseFloat(strings.ReplaceAll(get("Price"), ",", ""), 64)
		listing.Bedrooms, _ = strconv.Atoi(get("Bedrooms"))
		listing.Bathrooms, _ = strconv.Atoi(get("Bathrooms"))
		listing.SquareFootage, _ = strconv.Atoi(strings.ReplaceAll(get("Square Footage"), ",", ""))

		if listing.ListingID == "" {
			warning := fmt.Sprintf("row %d: missing listing id", i+2)
			logger.Warn().Str("warning", warning).Msg("Skipping malformed listing row")
			result.Warnings = append(result.Warnings, warning)
			continue
		}

		result.Rows = append(result.Rows, listing)
	}

	return result, nil
}

// readAll reads header plus data rows, tolerating ragged records.
func readAll(r io.Reader) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("CSV is empty")
	}

	header := make(map[string]int, len(records[0]))
	for i, column := range records[0] {
		header[strings.TrimSpace(column)] = i
	}

	return records[1:], header, nil
}

func fieldByHeader(header map[string]int, row []string, column string) string {
	idx, ok := header[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
