package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"docsight/internal/client"
)

// RenderSummary renders a completed result for plain non-interactive output,
// using the default theme.
func RenderSummary(width int, res *client.SummaryResult) string {
	return renderSummary(defaultTheme, width, res)
}

// formatConfidence renders an optional confidence score as a round-half-up
// percentage. A present zero renders as "0%"; only a nil score is omitted.
func formatConfidence(c *float64) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%d%%", int(math.Round(*c*100)))
}

// renderSummary builds the full summary display for a completed job. Every
// summary field may be absent: missing narratives render blank and the
// image-analysis block is omitted entirely when there are no entries.
func renderSummary(theme Theme, width int, res *client.SummaryResult) string {
	if width <= 0 {
		width = 80
	}
	cardWidth := width - 4
	if cardWidth < 40 {
		cardWidth = 40
	}

	s := res.Summary
	if s == nil {
		s = &client.Summary{}
	}

	var parts []string

	parts = append(parts, renderCard(theme, cardWidth, "Overview", deref(s.DocumentSummary)))

	var sections strings.Builder
	for i, sec := range s.SectionSummaries {
		if i > 0 {
			sections.WriteString("\n\n")
		}
		sections.WriteString(theme.accentStyle().Render(sec.SectionTitle))
		sections.WriteString("\n")
		sections.WriteString(sec.Summary)
	}
	parts = append(parts, renderCard(theme, cardWidth, "Section Details", sections.String()))

	var points, concepts []string
	if s.KeyInformation != nil {
		points = s.KeyInformation.KeyPoints
		concepts = s.KeyInformation.KeyConcepts
	}
	colWidth := (cardWidth - 2) / 2
	keyCols := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard(theme, colWidth, "Key Points", renderBullets(points)),
		renderCard(theme, colWidth, "Key Concepts", renderBullets(concepts)),
	)
	parts = append(parts, keyCols)

	if len(s.ImageAnalysis) > 0 {
		var images strings.Builder
		for i, img := range s.ImageAnalysis {
			if i > 0 {
				images.WriteString("\n\n")
			}
			images.WriteString(theme.accentStyle().Render("Description: "))
			images.WriteString(img.Description)
			images.WriteString("\n")
			images.WriteString(theme.accentStyle().Render("Relevance: "))
			images.WriteString(img.Relevance)
			if img.Confidence != nil {
				images.WriteString("\n")
				images.WriteString(theme.accentStyle().Render("Confidence: "))
				images.WriteString(formatConfidence(img.Confidence))
			}
		}
		parts = append(parts, renderCard(theme, cardWidth, "Image Analysis", images.String()))
	}

	parts = append(parts, renderCard(theme, cardWidth, "Conclusion", deref(s.Conclusion)))

	return strings.Join(parts, "\n")
}

// renderCard renders a titled, bordered block.
func renderCard(theme Theme, width int, title, body string) string {
	heading := theme.titleStyle().Render(title)
	content := heading + "\n" + body
	return theme.cardStyle().Width(width).Render(content)
}

// renderBullets renders an ordered list of entries as unordered bullets.
func renderBullets(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• ")
		b.WriteString(item)
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
