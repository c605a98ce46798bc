package ecdc

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/covid-tracker/schema"
)

const (
	logPrefix = "ecdc"

	// DefaultURL is the daily case and death report of EU/EEA countries.
	DefaultURL = "https://opendata.ecdc.europa.eu/covid19/nationalcasedeath_eueea_daily_ei/csv/data.csv"
)

// ErrFetch is matched by every error returned from a Loader.
var ErrFetch = fmt.Errorf("fetch dataset failed")

// Loader - interface to load the daily case dataset
type Loader interface {
	Load(ctx context.Context) ([]schema.CaseRecord, error)
}

// FetchError is a network, read or parse failure of a dataset source.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s from %s: %s", ErrFetch, e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
