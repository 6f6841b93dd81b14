package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rootOf(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Find("body")
}

func TestLooksLikeName(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"John Smith", true},
		{"John Smith in Washington", true},
		{"Émile Zola", true},
		{"J", false},
		{"misc", false},
		{"John smith", false},
		{"by John Smith", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, LooksLikeName(tt.text))
		})
	}
}

func TestNameHeuristic_Author(t *testing.T) {
	h := NameHeuristic{Container: ".byline", Candidates: "span"}

	t.Run("first_name_like_span_wins", func(t *testing.T) {
		root := rootOf(t, `<div class="byline"><span>J</span><span> John Smith </span><span>misc</span><span>Ann Lee</span></div>`)
		author, ok := h.Author(root)
		assert.True(t, ok)
		assert.Equal(t, "John Smith", author)
	})

	t.Run("no_candidate_matches", func(t *testing.T) {
		root := rootOf(t, `<div class="byline"><span>J</span><span>misc</span></div>`)
		_, ok := h.Author(root)
		assert.False(t, ok)
	})

	t.Run("spans_outside_container_ignored", func(t *testing.T) {
		root := rootOf(t, `<span>John Smith</span><div class="byline"><span>x</span></div>`)
		_, ok := h.Author(root)
		assert.False(t, ok)
	})

	t.Run("no_container", func(t *testing.T) {
		root := rootOf(t, `<span>John Smith</span>`)
		_, ok := h.Author(root)
		assert.False(t, ok)
	})
}

func TestLinkHarvest_Author(t *testing.T) {
	h := LinkHarvest{Container: ".authors"}

	t.Run("joins_links_in_order", func(t *testing.T) {
		root := rootOf(t, `<div class="authors"><a>Kara Deniz</a><a> </a><a>Jo Lee</a><a>Sam</a></div>`)
		author, ok := h.Author(root)
		assert.True(t, ok)
		assert.Equal(t, "Kara Deniz, Jo Lee, Sam", author)
	})

	t.Run("no_links", func(t *testing.T) {
		root := rootOf(t, `<div class="authors">Staff</div>`)
		_, ok := h.Author(root)
		assert.False(t, ok)
	})
}

func TestCreditLine_Author(t *testing.T) {
	h := CreditLine{Selector: "strong, b", Label: "Press Contact:"}

	t.Run("label_stripped", func(t *testing.T) {
		root := rootOf(t, `<p><strong>Note</strong></p><p><b>Press Contact:   Carolyn Bobb </b></p>`)
		author, ok := h.Author(root)
		assert.True(t, ok)
		assert.Equal(t, "Carolyn Bobb", author)
	})

	t.Run("label_only", func(t *testing.T) {
		root := rootOf(t, `<p><strong>Press Contact:</strong></p>`)
		_, ok := h.Author(root)
		assert.False(t, ok)
	})

	t.Run("label_absent", func(t *testing.T) {
		root := rootOf(t, `<p><strong>Contact us</strong></p>`)
		_, ok := h.Author(root)
		assert.False(t, ok)
	})
}

// Contains は Author と同じ条件で著者行を判定する
func TestCreditLine_Contains(t *testing.T) {
	h := CreditLine{Selector: "strong, b", Label: "Press Contact:"}

	testCases := []struct {
		name     string
		html     string
		expected bool
	}{
		{name: "leading_label", html: `<p><strong>Press Contact: Carolyn Bobb</strong></p>`, expected: true},
		{name: "label_in_b", html: `<p>x <b> Press Contact: Sam Ray</b></p>`, expected: true},
		{name: "label_not_leading", html: `<p><strong>See Press Contact: below</strong></p>`, expected: false},
		{name: "label_outside_bold", html: `<p>Press Contact: Sam Ray</p>`, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			block := rootOf(t, tc.html).Find("p").First()
			assert.Equal(t, tc.expected, h.Contains(block))

			_, isAuthor := h.Author(rootOf(t, tc.html))
			assert.Equal(t, tc.expected, isAuthor)
		})
	}
}
