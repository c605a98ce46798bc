package pipeline

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/covid-tracker/external/ecdc"
)

// Session loads the dataset on first use and keeps the resulting pipeline.
// A failed load is not kept, the next call loads again.
type Session struct {
	loader ecdc.Loader
	config Config
	scope  tally.Scope

	mu       sync.Mutex
	pipeline *Pipeline
}

// NewSession - new lazily loaded session
func NewSession(loader ecdc.Loader, config Config, scope tally.Scope) *Session {
	if scope == nil {
		scope = tally.NoopScope
	}

	return &Session{
		loader: loader,
		config: config,
		scope:  scope,
	}
}

// Pipeline returns the loaded pipeline, loading the dataset if needed.
func (s *Session) Pipeline(ctx context.Context) (*Pipeline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pipeline != nil {
		return s.pipeline, nil
	}

	records, err := s.loader.Load(ctx)
	if nil != err {
		s.scope.Tagged(map[string]string{"result": "failure"}).Counter("dataset_load").Inc(1)
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Error("load dataset")
		return nil, err
	}
	s.scope.Tagged(map[string]string{"result": "success"}).Counter("dataset_load").Inc(1)

	s.pipeline = New(records, s.config, s.scope)
	return s.pipeline, nil
}

// Loaded reports whether the dataset has been loaded.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pipeline != nil
}
