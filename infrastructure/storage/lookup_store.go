package storage

import (
	"fmt"
	"os"

	"business_selector/domain/entities"
	"business_selector/domain/errs"
	"business_selector/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LookupStore loads the selector and URL tables on first use and keeps them
// for the lifetime of the store
type LookupStore struct {
	fs               afero.Fs
	selectorFilePath string
	urlFilePath      string
	logger           *logrus.Logger

	// nil until loaded
	selectors *entities.LookupTable
	urls      *entities.LookupTable
}

// NewLookupStore - creates a lookup store reading table files from fs
func NewLookupStore(fs afero.Fs, cfg entities.ContextConfig, logger *logrus.Logger) *LookupStore {
	return &LookupStore{
		fs:               fs,
		selectorFilePath: cfg.SelectorFilePath,
		urlFilePath:      cfg.URLFilePath,
		logger:           logger,
	}
}

// ResolveSelector - returns the CSS selector for a business term
func (s *LookupStore) ResolveSelector(term string) (string, error) {
	table, err := s.selectorTable()
	if err != nil {
		return "", err
	}

	selector, ok := table.Get(term)
	if !ok {
		return "", errs.Newf(errs.TermNotFound, "Selector: %s not found in selectors file", term)
	}
	return selector, nil
}

// ResolveURL - returns the URL fragment for a business term
func (s *LookupStore) ResolveURL(term string) (string, error) {
	table, err := s.urlTable()
	if err != nil {
		return "", err
	}

	url, ok := table.Get(term)
	if !ok {
		return "", errs.Newf(errs.TermNotFound, "URL: %s not found in urls file", term)
	}
	return url, nil
}

func (s *LookupStore) selectorTable() (*entities.LookupTable, error) {
	if s.selectors == nil {
		if s.selectorFilePath == "" {
			return nil, errs.New(errs.Configuration, `Value "selectorFilePath" not set in config`)
		}
		table, err := s.load(entities.SelectorTable, s.selectorFilePath)
		if err != nil {
			return nil, err
		}
		s.selectors = table
	}
	return s.selectors, nil
}

func (s *LookupStore) urlTable() (*entities.LookupTable, error) {
	if s.urls == nil {
		if s.urlFilePath == "" {
			return nil, errs.New(errs.Configuration, `Value "urlFilePath" not set in config`)
		}
		table, err := s.load(entities.URLTable, s.urlFilePath)
		if err != nil {
			return nil, err
		}
		s.urls = table
	}
	return s.urls, nil
}

// load - reads and parses one YAML table file
func (s *LookupStore) load(kind entities.TableKind, path string) (*entities.LookupTable, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.FileNotFound, fmt.Sprintf("File: %s does not exist", path), err)
		}
		return nil, fmt.Errorf("failed to read %s table: %w", kind, err)
	}

	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errs.Wrap(errs.Parse, "Unable to parse "+path, err)
	}
	if len(entries) == 0 {
		return nil, errs.New(errs.Parse, "Unable to parse "+path)
	}

	s.logger.Debugf("Loaded %d %s from %s", len(entries), kind, path)

	return entities.NewLookupTable(entries), nil
}

var _ interfaces.LookupStore = (*LookupStore)(nil)
