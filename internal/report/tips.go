package report

import (
	"fmt"
	"io"

	"github.com/nao1215/markdown"

	"github.com/gaslint/gaslint/internal/rules"
)

// TipsWriter renders the rule catalog as a standalone Markdown document.
// The output is the reference the scanner's findings point back at: one
// numbered section per tip with the prose, the before/after fragments,
// and the closing credits.
type TipsWriter struct {
	baseWriter
}

// NewTipsWriter creates a TipsWriter that outputs to the given writer.
func NewTipsWriter(output io.Writer) *TipsWriter {
	return &TipsWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteDocument emits the full tips document.
func (w *TipsWriter) WriteDocument() (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Solidity Gas Optimizations")
	md.PlainText("")
	md.PlainText("Every EVM instruction has a price, and storage operations dominate the " +
		"bill. The tips below are the patterns gaslint checks for, each with the " +
		"reasoning behind it and a rewrite where a mechanical one exists.")
	md.PlainText("")

	for _, tip := range rules.Tips() {
		w.writeTip(md, tip)
	}

	w.writeCredits(md)

	return len(md.String()), md.Build()
}

// writeTip writes one numbered tip section.
func (w *TipsWriter) writeTip(md *markdown.Markdown, tip rules.Tip) {
	md.H2(fmt.Sprintf("%d. %s", tip.Number, tip.Title))
	md.PlainText("")
	md.PlainText(tip.Summary)
	md.PlainText("")

	if tip.Impact != "" {
		md.PlainText(tip.Impact)
		md.PlainText("")
	}

	if tip.Recommendation != "" {
		md.PlainText(tip.Recommendation)
		md.PlainText("")
	}

	if tip.Before != "" && tip.After != "" {
		md.PlainText("**Before**")
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlight("solidity"), tip.Before)
		md.PlainText("")
		md.PlainText("**After**")
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlight("solidity"), tip.After)
		md.PlainText("")
	}

	if tip.MinVersion != "" {
		md.PlainTextf("Requires Solidity %s or newer.", tip.MinVersion)
		md.PlainText("")
	}
}

// writeCredits closes the document with the attribution list.
func (w *TipsWriter) writeCredits(md *markdown.Markdown) {
	md.H2("Credits")
	md.PlainText("")

	credits := rules.Credits()
	items := make([]string, 0, len(credits))
	for _, c := range credits {
		items = append(items, fmt.Sprintf("%s (%s)", c.URL, c.Note))
	}
	md.BulletList(items...)
	md.PlainText("")
}
