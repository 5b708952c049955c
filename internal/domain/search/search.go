package search

import (
	"context"

	"github.com/blevesearch/bleve/v2"
	"github.com/puzpuzpuz/xsync"
	"github.com/RKmodz24/studio/pkg/logger"
	"github.com/RKmodz24/studio/pkg/xcontext"
)

const (
	TaskDoc  = "task"
	OfferDoc = "offer"
)

type TaskData struct {
	Title       string
	Description string
	Type        string
}

type OfferData struct {
	Title string
	Steps string
}

type Index interface {
	Index(document, id string, data any) error
	Delete(document, id string) error
	Search(document, query string, offset, limit int) ([]string, error)
	Close()
}

// bleveIndex keeps one in-memory index per document kind.
type bleveIndex struct {
	logger  logger.Logger
	indexes *xsync.MapOf[string, bleve.Index]
}

func NewBleveIndex(ctx context.Context) *bleveIndex {
	return &bleveIndex{
		logger:  xcontext.Logger(ctx),
		indexes: xsync.NewMapOf[bleve.Index](),
	}
}

func (i *bleveIndex) Index(document, id string, data any) error {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return err
	}

	record, err := index.Document(id)
	if err != nil {
		return err
	}

	// Delete if the record existed.
	if record != nil {
		if err := index.Delete(id); err != nil {
			return err
		}
	}

	return index.Index(id, data)
}

func (i *bleveIndex) Delete(document, id string) error {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return err
	}

	return index.Delete(id)
}

func (i *bleveIndex) Search(document, query string, offset, limit int) ([]string, error) {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return nil, err
	}

	q := bleve.NewDisjunctionQuery(bleve.NewMatchQuery(query), bleve.NewPrefixQuery(query))
	req := bleve.NewSearchRequestOptions(q, limit, offset, false)
	searchResults, err := index.Search(req)
	if err != nil {
		return nil, err
	}

	ids := []string{}
	for _, match := range searchResults.Hits {
		ids = append(ids, match.ID)
	}

	return ids, nil
}

func (i *bleveIndex) Close() {
	i.indexes.Range(func(document string, index bleve.Index) bool {
		if err := index.Close(); err != nil {
			i.logger.Errorf("Cannot close indexer %s: %v", document, err)
		}

		return true
	})
}

func (i *bleveIndex) getIndexByDocument(document string) (bleve.Index, error) {
	index, ok := i.indexes.Load(document)
	if ok {
		return index, nil
	}

	var err error
	index, err = bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, err
	}

	actual, loaded := i.indexes.LoadOrStore(document, index)
	if loaded {
		index.Close()
	} else {
		i.logger.Debugf("A new document index is added: %s", document)
	}

	return actual, nil
}
