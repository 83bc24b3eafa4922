package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// codeRenderer renders Codeblock components with chroma highlighting.
type codeRenderer struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

func newCodeRenderer() *codeRenderer {
	return &codeRenderer{
		// Class-based output keeps the HTML identical across chroma style
		// tweaks and lets the site theme the highlighting with CSS.
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
		style:     styles.Get("github"),
	}
}

// render highlights a Codeblock's literal text. Unknown language tags fall
// back to the plaintext lexer, so they degrade to unhighlighted monospace
// output instead of failing.
func (c *codeRenderer) render(props codeProps) (string, error) {
	lexer := lexers.Get(props.Lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, props.Literal)
	if err != nil {
		return "", fmt.Errorf("tokenise: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(`<figure class="codeblock"`)
	if props.Lang != "" {
		fmt.Fprintf(&sb, ` data-lang=%q`, html.EscapeString(props.Lang))
	}
	sb.WriteString(">")
	if props.Title != "" {
		fmt.Fprintf(&sb, "<figcaption>%s</figcaption>", html.EscapeString(props.Title))
	}

	if err := c.formatter.Format(&sb, c.style, iterator); err != nil {
		return "", fmt.Errorf("format: %w", err)
	}

	sb.WriteString("</figure>\n")
	return sb.String(), nil
}
