// Package preview renders article bodies to sanitized HTML so the editor can
// show how a record will look on the public site.
package preview

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/JaimeStill/portfolio-admin/pkg/content"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Source names what a rendering was produced from.
type Source string

const (
	SourceTree     Source = "tree"
	SourceMarkdown Source = "markdown"
	SourceEmpty    Source = "empty"
)

// Request is an unsaved body. The tree wins over the legacy markdown body
// when it has content.
type Request struct {
	Content   *content.Node `json:"content"`
	ContentMD *string       `json:"content_md"`
}

type Result struct {
	Source Source `json:"source"`
	HTML   string `json:"html"`
}

// Renderer converts trees and markdown to HTML and sanitizes the output.
type Renderer struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

var codeLanguage = regexp.MustCompile(`^language-[a-zA-Z0-9_+-]+$`)

func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(codeLanguage).OnElements("code")
	policy.RequireNoReferrerOnLinks(true)

	return &Renderer{
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:   policy,
	}
}

// Tree renders a document tree.
func (r *Renderer) Tree(n *content.Node) string {
	return r.policy.Sanitize(content.RenderHTML(n))
}

// Markdown renders a legacy markdown body.
func (r *Renderer) Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return string(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// Render picks the tree when it has content, then the markdown body.
func (r *Renderer) Render(req Request) (*Result, error) {
	if req.Content != nil && len(req.Content.Content) > 0 {
		return &Result{Source: SourceTree, HTML: r.Tree(req.Content)}, nil
	}
	if req.ContentMD != nil && *req.ContentMD != "" {
		html, err := r.Markdown(*req.ContentMD)
		if err != nil {
			return nil, err
		}
		return &Result{Source: SourceMarkdown, HTML: html}, nil
	}
	return &Result{Source: SourceEmpty}, nil
}
