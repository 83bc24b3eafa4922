package render

import (
	"fmt"
	"html"
)

// renderSection renders an ArticleSection as an anchored heading. The id
// is the deep-link target; the self-referencing link is what lets readers
// copy a section URL straight from the heading.
func renderSection(props sectionProps) string {
	id := html.EscapeString(props.ID)
	name := html.EscapeString(props.Name)
	return fmt.Sprintf(
		"<h%d id=%q class=\"article-section\"><a href=\"#%s\">%s</a></h%d>\n",
		props.Level, id, id, name, props.Level,
	)
}
