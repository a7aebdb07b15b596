package utils

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/Dosada05/tournament-engine/models"
)

var ErrInvalidHistory = errors.New("invalid rating history")

// ParseTimeOrZero accepts the loose formats dateparse understands; "" and "null" give the zero time.
func ParseTimeOrZero(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseIn(s, time.UTC)
}

// ReadRatingHistory reads CSV rows of competitor,rating,time and groups them
// per competitor in file order. A first row whose rating column is not a
// number is treated as a header.
func ReadRatingHistory(r io.Reader) (map[models.CompetitorID][]models.RatingRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	histories := make(map[models.CompetitorID][]models.RatingRecord)
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHistory, err)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("%w: line %d: rating %q is not a number", ErrInvalidHistory, line, row[1])
		}

		id := models.CompetitorID(strings.TrimSpace(row[0]))
		if id == "" {
			return nil, fmt.Errorf("%w: line %d: empty competitor", ErrInvalidHistory, line)
		}
		at, err := ParseTimeOrZero(row[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidHistory, line, err)
		}

		histories[id] = append(histories[id], models.RatingRecord{Competitor: id, Rating: value, Time: at})
	}
	return histories, nil
}

// ReadRoster reads competitor IDs separated by newlines or commas.
// Blank entries are skipped; duplicates are kept so callers can reject them.
func ReadRoster(r io.Reader) ([]models.CompetitorID, error) {
	var roster []models.CompetitorID
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		for _, field := range strings.Split(scanner.Text(), ",") {
			if id := strings.TrimSpace(field); id != "" {
				roster = append(roster, models.CompetitorID(id))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return roster, nil
}
