package ecdc

import (
	"context"
	"fmt"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-tracker/schema"
)

type httpLoader struct {
	url    string
	client *http.Client
}

// Load downloads and parses the dataset. It is a single attempt without retry.
func (h httpLoader) Load(ctx context.Context) ([]schema.CaseRecord, error) {
	req, err := http.NewRequest(http.MethodGet, h.url, nil)
	if nil != err {
		return nil, &FetchError{Source: h.url, Err: err}
	}

	resp, err := h.client.Do(req.WithContext(ctx))
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "url": h.url, "error": err}).Error("get ecdc dataset")
		return nil, &FetchError{Source: h.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.WithFields(log.Fields{"prefix": logPrefix, "url": h.url, "status": resp.StatusCode}).Error("get ecdc dataset")
		return nil, &FetchError{Source: h.url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	records, err := Parse(resp.Body)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "url": h.url, "error": err}).Error("parse ecdc dataset")
		return nil, &FetchError{Source: h.url, Err: err}
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "url": h.url, "records": len(records)}).Info("loaded ecdc dataset")
	return records, nil
}

// NewHTTPLoader - new loader of a remote csv dataset
func NewHTTPLoader(url string, client *http.Client) Loader {
	if url == "" {
		url = DefaultURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &httpLoader{
		url:    url,
		client: client,
	}
}

type fileLoader struct {
	path string
}

func (f fileLoader) Load(ctx context.Context) ([]schema.CaseRecord, error) {
	file, err := os.Open(f.path)
	if nil != err {
		return nil, &FetchError{Source: f.path, Err: err}
	}
	defer file.Close()

	records, err := Parse(file)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "file": f.path, "error": err}).Error("parse ecdc dataset")
		return nil, &FetchError{Source: f.path, Err: err}
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "file": f.path, "records": len(records)}).Info("loaded ecdc dataset")
	return records, nil
}

// NewFileLoader - new loader of a local csv dataset
func NewFileLoader(path string) Loader {
	return &fileLoader{path: path}
}
