package models

// CollectionTree represents the navigation tree of one collection:
// its units in slug order, each with its topics and available locales.
type CollectionTree struct {
	Collection Collection      `json:"collection"`
	Units      []*UnitTreeNode `json:"units"`
}

// UnitTreeNode represents one logical content unit (a challenge or a
// course) in the tree. Challenges carry a single unnamed topic; courses
// list one node per topic in source order.
type UnitTreeNode struct {
	Slug   string           `json:"slug"`
	Title  string           `json:"title"`
	Banner string           `json:"banner,omitempty"`
	Draft  bool             `json:"draft,omitempty"`
	Topics []*TopicTreeNode `json:"topics"`
}

// TopicTreeNode represents a topic within a unit (metadata only, no content)
type TopicTreeNode struct {
	Topic   string   `json:"topic,omitempty"`
	Title   string   `json:"title"`
	Locales []string `json:"locales"`
}
