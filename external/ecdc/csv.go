package ecdc

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-tracker/schema"
)

const (
	dateColumn   = "dateRep"
	regionColumn = "countriesAndTerritories"
	casesColumn  = "cases"
	deathsColumn = "deaths"
	geoIDColumn  = "geoId"
)

var dateFormats = []string{
	"02/01/2006",
	"2006-01-02",
}

var (
	ErrMissingColumn = errors.New("missing column")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidNumber = errors.New("invalid number")
)

type columns struct {
	date, region, cases, deaths, geoID int
}

// Parse reads ECDC case records from a csv with a header row. Only the
// consumed columns are looked up, others are ignored.
func Parse(r io.Reader) ([]schema.CaseRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if nil != err {
		return nil, errors.Wrap(err, "read header")
	}

	cols, err := findColumns(header)
	if nil != err {
		return nil, err
	}

	records := make([]schema.CaseRecord, 0)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if nil != err {
			return nil, errors.Wrapf(err, "read line %d", line)
		}

		record, err := parseRow(row, cols)
		if nil != err {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		records = append(records, record)
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"records": len(records),
	}).Debug("parse dataset")

	return records, nil
}

func findColumns(header []string) (columns, error) {
	index := make(map[string]int)
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	cols := columns{geoID: -1}
	for name, target := range map[string]*int{
		dateColumn:   &cols.date,
		regionColumn: &cols.region,
		casesColumn:  &cols.cases,
		deathsColumn: &cols.deaths,
	} {
		i, ok := index[name]
		if !ok {
			return columns{}, errors.Wrap(ErrMissingColumn, name)
		}
		*target = i
	}

	if i, ok := index[geoIDColumn]; ok {
		cols.geoID = i
	}

	return cols, nil
}

func parseRow(row []string, cols columns) (schema.CaseRecord, error) {
	date, err := parseDate(field(row, cols.date))
	if nil != err {
		return schema.CaseRecord{}, err
	}

	cases, err := parseCount(field(row, cols.cases))
	if nil != err {
		return schema.CaseRecord{}, errors.Wrap(err, casesColumn)
	}

	deaths, err := parseCount(field(row, cols.deaths))
	if nil != err {
		return schema.CaseRecord{}, errors.Wrap(err, deathsColumn)
	}

	return schema.CaseRecord{
		Date:   date,
		Region: field(row, cols.region),
		GeoID:  field(row, cols.geoID),
		Cases:  cases,
		Deaths: deaths,
	}, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return schema.Day(t), nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrInvalidDate, "%q", s)
}

// parseCount accepts blank cells as zero. Counts may be negative when the
// source publishes a correction.
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if nil != err {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, errors.Wrapf(ErrInvalidNumber, "%q", s)
		}
		n = int(f)
	}
	return n, nil
}
