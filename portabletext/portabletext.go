// Package portabletext renders the content store's rich-text block arrays
// to HTML as a templ component. It understands the block styles the post
// schema produces (paragraphs, h2-h4, blockquotes, bullet and numbered
// lists), span marks (strong, em, code, link annotations), and embedded
// image blocks, which are resolved to URLs by a caller-supplied function.
package portabletext

import (
	"bytes"
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/vedicsages/vedicweb/content"
)

// ImageURLFunc resolves an embedded image block to an <img src> URL.
// Returning "" skips the block.
type ImageURLFunc func(block content.Block) string

// Render returns a templ.Component that renders blocks as HTML.
func Render(blocks []content.Block, imageURL ImageURLFunc) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		renderBlocks(&buf, blocks, imageURL)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// HTML renders blocks to an HTML string. Exposed for tests and feeds.
func HTML(blocks []content.Block, imageURL ImageURLFunc) string {
	var buf bytes.Buffer
	renderBlocks(&buf, blocks, imageURL)
	return buf.String()
}

func renderBlocks(buf *bytes.Buffer, blocks []content.Block, imageURL ImageURLFunc) {
	openList := "" // "", "bullet" or "number"

	flushList := func() {
		switch openList {
		case "bullet":
			buf.WriteString("</ul>")
		case "number":
			buf.WriteString("</ol>")
		}
		openList = ""
	}

	for _, block := range blocks {
		if block.Type == "image" {
			flushList()
			writeImage(buf, block, imageURL)
			continue
		}
		if block.Type != "block" {
			// Unknown block types degrade to nothing rather than breaking
			// the page.
			continue
		}

		if block.ListItem != "" {
			if openList != block.ListItem {
				flushList()
				if block.ListItem == "number" {
					buf.WriteString("<ol>")
				} else {
					buf.WriteString("<ul>")
				}
				openList = block.ListItem
			}
			buf.WriteString("<li>")
			writeSpans(buf, block)
			buf.WriteString("</li>")
			continue
		}
		flushList()

		tag := styleTag(block.Style)
		buf.WriteString("<" + tag + ">")
		writeSpans(buf, block)
		buf.WriteString("</" + tag + ">")
	}
	flushList()
}

func styleTag(style string) string {
	switch style {
	case "h2", "h3", "h4":
		return style
	case "blockquote":
		return "blockquote"
	default:
		return "p"
	}
}

func writeSpans(buf *bytes.Buffer, block content.Block) {
	for _, span := range block.Children {
		text := html.EscapeString(span.Text)

		var closers []string
		for _, mark := range span.Marks {
			switch mark {
			case "strong":
				buf.WriteString("<strong>")
				closers = append(closers, "</strong>")
			case "em":
				buf.WriteString("<em>")
				closers = append(closers, "</em>")
			case "code":
				buf.WriteString("<code>")
				closers = append(closers, "</code>")
			default:
				if href := linkHref(block, mark); href != "" {
					buf.WriteString(`<a href="` + html.EscapeString(href) + `" rel="noopener noreferrer">`)
					closers = append(closers, "</a>")
				}
			}
		}

		buf.WriteString(text)
		for i := len(closers) - 1; i >= 0; i-- {
			buf.WriteString(closers[i])
		}
	}
}

// linkHref resolves an annotation mark key against the block's markDefs.
func linkHref(block content.Block, key string) string {
	for _, def := range block.MarkDefs {
		if def.Key == key && def.Type == "link" {
			return strings.TrimSpace(def.Href)
		}
	}
	return ""
}

func writeImage(buf *bytes.Buffer, block content.Block, imageURL ImageURLFunc) {
	if imageURL == nil {
		return
	}
	src := imageURL(block)
	if src == "" {
		return
	}
	alt := block.Alt
	if alt == "" {
		alt = "Illustration"
	}
	buf.WriteString(`<figure class="content-image"><img src="` + html.EscapeString(src) +
		`" alt="` + html.EscapeString(alt) + `" loading="lazy"/></figure>`)
}
