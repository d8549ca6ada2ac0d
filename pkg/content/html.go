package content

import (
	"fmt"
	"html"
	"strings"
)

// RenderHTML converts a document tree to HTML. The output is not sanitized;
// callers that serve it to a browser should run it through a policy.
func RenderHTML(n *Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	renderNode(&b, n)
	return b.String()
}

func renderNode(b *strings.Builder, n *Node) {
	switch n.Kind {
	case KindDoc:
		renderContent(b, n)
	case KindParagraph:
		wrap(b, n, "<p>", "</p>\n")
	case KindHeading:
		level := headingLevel(n)
		wrap(b, n, fmt.Sprintf("<h%d>", level), fmt.Sprintf("</h%d>\n", level))
	case KindBulletList:
		wrap(b, n, "<ul>\n", "</ul>\n")
	case KindOrderedList:
		wrap(b, n, "<ol>\n", "</ol>\n")
	case KindListItem:
		wrap(b, n, "<li>", "</li>\n")
	case KindBlockquote:
		wrap(b, n, "<blockquote>\n", "</blockquote>\n")
	case KindCodeBlock:
		b.WriteString("<pre><code")
		if lang, ok := n.Attrs["language"].(string); ok && lang != "" {
			fmt.Fprintf(b, ` class="language-%s"`, html.EscapeString(lang))
		}
		b.WriteString(">")
		for _, child := range n.Content {
			b.WriteString(html.EscapeString(child.Text))
		}
		b.WriteString("</code></pre>\n")
	case KindImage:
		renderImage(b, n)
	case KindText:
		b.WriteString(renderText(n.Text, n.Marks))
	case KindHardBreak:
		b.WriteString("<br>")
	case KindHorizontalRule:
		b.WriteString("<hr>\n")
	case KindTable:
		wrap(b, n, "<table>\n", "</table>\n")
	case KindTableRow:
		wrap(b, n, "<tr>\n", "</tr>\n")
	case KindTableHeader:
		wrap(b, n, "<th>", "</th>\n")
	case KindTableCell:
		wrap(b, n, "<td>", "</td>\n")
	}
}

func wrap(b *strings.Builder, n *Node, open, close string) {
	b.WriteString(open)
	renderContent(b, n)
	b.WriteString(close)
}

func renderContent(b *strings.Builder, n *Node) {
	for _, child := range n.Content {
		if child != nil {
			renderNode(b, child)
		}
	}
}

func renderImage(b *strings.Builder, n *Node) {
	src, ok := n.Source()
	if !ok {
		return
	}
	fmt.Fprintf(b, `<img src="%s"`, html.EscapeString(src))
	if alt, ok := n.Attrs[AttrAlt].(string); ok && alt != "" {
		fmt.Fprintf(b, ` alt="%s"`, html.EscapeString(alt))
	}
	if title, ok := n.Attrs[AttrTitle].(string); ok && title != "" {
		fmt.Fprintf(b, ` title="%s"`, html.EscapeString(title))
	}
	b.WriteString(">\n")
}

func headingLevel(n *Node) int {
	level := 1
	switch v := n.Attrs["level"].(type) {
	case float64:
		level = int(v)
	case int:
		level = v
	}
	if level < 1 || level > 6 {
		level = 1
	}
	return level
}

func renderText(text string, marks []Mark) string {
	if text == "" {
		return ""
	}

	out := html.EscapeString(text)

	for i := len(marks) - 1; i >= 0; i-- {
		mark := marks[i]
		switch mark.Type {
		case "bold":
			out = "<strong>" + out + "</strong>"
		case "italic":
			out = "<em>" + out + "</em>"
		case "code":
			out = "<code>" + out + "</code>"
		case "strike":
			out = "<s>" + out + "</s>"
		case "underline":
			out = "<u>" + out + "</u>"
		case "link":
			href, _ := mark.Attrs["href"].(string)
			out = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(href), out)
		}
	}

	return out
}
