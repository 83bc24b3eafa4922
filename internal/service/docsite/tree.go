package docsite

import (
	"context"
	"log/slog"

	"beacon/internal/domain/models"
	"beacon/internal/domain/repositories"
	"beacon/internal/domain/services"
)

// treeService implements the TreeService interface
type treeService struct {
	store         repositories.ContentStore
	defaultLocale string
	logger        *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(store repositories.ContentStore, defaultLocale string, logger *slog.Logger) services.TreeService {
	return &treeService{
		store:         store,
		defaultLocale: defaultLocale,
		logger:        logger,
	}
}

// GetCollectionTree builds the nested unit/topic tree for a collection.
// Documents arrive from the store ordered by slug, topic, locale, so the
// tree is assembled in a single pass.
func (s *treeService) GetCollectionTree(ctx context.Context, collection models.Collection, includeDrafts bool) (*models.CollectionTree, error) {
	docs, err := s.store.ListCollection(ctx, collection)
	if err != nil {
		return nil, err
	}

	tree := &models.CollectionTree{
		Collection: collection,
		Units:      []*models.UnitTreeNode{},
	}

	unitMap := make(map[string]*models.UnitTreeNode)
	topicMap := make(map[string]map[string]*models.TopicTreeNode)

	for _, doc := range docs {
		if doc.Frontmatter.Draft && !includeDrafts {
			continue
		}

		unit, ok := unitMap[doc.Key.Slug]
		if !ok {
			unit = &models.UnitTreeNode{
				Slug:   doc.Key.Slug,
				Topics: []*models.TopicTreeNode{},
			}
			unitMap[doc.Key.Slug] = unit
			topicMap[doc.Key.Slug] = make(map[string]*models.TopicTreeNode)
			tree.Units = append(tree.Units, unit)
		}

		topic, ok := topicMap[doc.Key.Slug][doc.Key.Topic]
		if !ok {
			topic = &models.TopicTreeNode{
				Topic: doc.Key.Topic,
			}
			topicMap[doc.Key.Slug][doc.Key.Topic] = topic
			unit.Topics = append(unit.Topics, topic)
		}
		topic.Locales = append(topic.Locales, doc.Key.Locale)

		// Default-locale titles win; any locale fills a gap so untranslated
		// units still show up named.
		preferred := doc.Key.Locale == s.defaultLocale
		if topic.Title == "" || preferred {
			topic.Title = doc.Frontmatter.Title
		}
		if unit.Title == "" || (preferred && doc.Key.Topic == unit.Topics[0].Topic) {
			unit.Title = doc.Frontmatter.Title
			unit.Banner = doc.Frontmatter.Banner
			unit.Draft = doc.Frontmatter.Draft
		}
	}

	return tree, nil
}
