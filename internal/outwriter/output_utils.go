package outwriter

import (
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/huangsam/gpugrade/internal/contract"
	"github.com/huangsam/gpugrade/schema"
	"golang.org/x/term"
)

// attributeTerm holds one weighted term of a breakdown.
type attributeTerm struct {
	Name  string
	Value float64
}

const (
	termContribMinimum = 1e-9
	topNTerms          = 3
)

// formatTopContributors lists the attributes that moved the score most, largest
// absolute weighted term first, e.g. "price_on_demand > vram > ram".
func formatTopContributors(breakdown map[string]float64) string {
	var terms []attributeTerm
	for k, v := range breakdown {
		if math.Abs(v) >= termContribMinimum {
			terms = append(terms, attributeTerm{Name: k, Value: v})
		}
	}
	if len(terms) == 0 {
		return "No meaningful contributors"
	}

	sort.Slice(terms, func(i, j int) bool {
		ai, aj := math.Abs(terms[i].Value), math.Abs(terms[j].Value)
		if ai != aj {
			return ai > aj
		}
		return terms[i].Name < terms[j].Name
	})

	parts := make([]string, 0, topNTerms)
	for _, t := range terms[:min(len(terms), topNTerms)] {
		parts = append(parts, t.Name)
	}
	return strings.Join(parts, " > ")
}

// attributeNames returns the configured attribute names in scoring order.
func attributeNames(cfg *contract.Config) []string {
	names := make([]string, len(cfg.Attributes))
	for i, spec := range cfg.Attributes {
		names[i] = spec.Name
	}
	return names
}

// gradeLabel returns a colored grade for tables when colors are enabled.
func gradeLabel(g schema.Grade, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(g)
	}
	return string(g)
}

// formatGradeCounts renders counts in grade order, e.g. "A=2 B=0 C=1 D=0 F=3".
func formatGradeCounts(counts map[schema.Grade]int) string {
	parts := make([]string, len(schema.AllGrades))
	for i, g := range schema.AllGrades {
		parts[i] = string(g) + "=" + strconv.Itoa(counts[g])
	}
	return strings.Join(parts, " ")
}

// getMaxTableIDWidth calculates the maximum width for row IDs in table output
// based on terminal width and table configuration.
func getMaxTableIDWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 25 // Rank + Score + Grade with borders/padding

	if cfg.Detail {
		baseWidth += 9 * len(cfg.Attributes) // one normalized column per attribute
	}
	if cfg.Explain {
		baseWidth += 40
	}

	// Reserve space for table borders, separators, and padding
	baseWidth += 20

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
