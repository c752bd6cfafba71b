package relay

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/samvad-hq/mastodon-relay/internal/domain"
	"github.com/samvad-hq/mastodon-relay/pkg/sources"
)

const maxContentBytes = 64 << 10

// TextExtractor fills Item.Text and Item.Links from the item's status HTML.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor { return &TextExtractor{} }

// Enrich never drops items; content that fails to parse is left as is.
func (t *TextExtractor) Enrich(_ context.Context, _ sources.Source, items []domain.Item) []domain.Item {
	out := make([]domain.Item, len(items))
	for i, item := range items {
		out[i] = item

		content := item.Content()
		if strings.TrimSpace(content) == "" {
			continue
		}
		if len(content) > maxContentBytes {
			content = content[:maxContentBytes]
		}

		parsed, err := parseContent(content, statusURL(item))
		if err != nil {
			continue
		}
		out[i].Text = parsed.Text
		out[i].Links = parsed.Links
	}
	return out
}

type contentText struct {
	Text  string
	Links []string
}

// parseContent flattens status HTML to text. Paragraphs are separated by a
// blank line and <br> becomes a newline. Links exclude mentions and hashtags.
func parseContent(html, base string) (contentText, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return contentText{}, fmt.Errorf("parse html: %w", err)
	}

	var links []string
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if a.HasClass("mention") || a.HasClass("hashtag") {
			return
		}
		if rel, _ := a.Attr("rel"); slices.Contains(strings.Fields(rel), "tag") {
			return
		}
		href, _ := a.Attr("href")
		if link := resolveURL(href, base); link != "" && !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	})

	doc.Find("br").ReplaceWithHtml("\n")

	var paragraphs []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	text := strings.Join(paragraphs, "\n\n")
	if len(paragraphs) == 0 {
		text = strings.TrimSpace(doc.Text())
	}
	return contentText{Text: text, Links: links}, nil
}

func statusURL(item domain.Item) string {
	if s := item.Subject(); s != nil {
		return s.Original().URL
	}
	return ""
}

func resolveURL(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return u.String()
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return ""
	}
	return b.ResolveReference(u).String()
}
