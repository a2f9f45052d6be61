package narrative

import (
	"fmt"
	"strconv"
	"strings"
)

// Section is one entry of the dashboard menu.
type Section string

const (
	Scenario    Section = "scenario"
	Questions   Section = "questions"
	Analyses    Section = "analyses"
	Models      Section = "models"
	Conclusions Section = "conclusions"
	Suggestions Section = "suggestions"
)

var sections = []Section{Scenario, Questions, Analyses, Models, Conclusions, Suggestions}

var titles = map[Section]string{
	Scenario:    "🌍 Scenario",
	Questions:   "❓ Business questions",
	Analyses:    "📊 Data exploration",
	Models:      "🤖 Predictive modeling",
	Conclusions: "✅ Project conclusions",
	Suggestions: "💡 Business suggestions",
}

// Sections returns the menu in display order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Title returns the heading shown for s.
func (s Section) Title() string {
	if t, ok := titles[s]; ok {
		return t
	}
	return string(s)
}

// Parse accepts a section name (case-insensitive) or its 1-based menu number.
func Parse(s string) (Section, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(v); err == nil {
		if n >= 1 && n <= len(sections) {
			return sections[n-1], nil
		}
		return "", fmt.Errorf("menu number out of range: %d (1-%d)", n, len(sections))
	}
	for _, sec := range sections {
		if string(sec) == v {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown section: %q", s)
}

// Intro is the challenge statement shown above the menu.
func Intro() string {
	return `🎬 MovieScope - final project

You have been hired as a junior data scientist by MovieScope, a company that
analyzes the performance of titles on streaming platforms.

Your mission:
- Analyze data about movies available on digital platforms.
- Identify patterns of success.
- Understand which characteristics influence a movie's rating.
- Build a rating prediction model from historical data.`
}

var texts = map[Section][]string{
	Scenario: {
		"The streaming market is highly competitive, and understanding the factors " +
			"behind a movie's success is essential to direct investment and marketing strategy.",
	},
	Questions: {
		"Some questions guide this analysis:",
		"- Which characteristics are associated with the highest average ratings?\n" +
			"- Do movies with bigger budgets really get better reviews?\n" +
			"- Is there a relationship between popularity and revenue?\n" +
			"- Does the number of votes directly influence the final rating?",
	},
	Conclusions: {
		"The analysis of the MovieScope movie data surfaced relevant performance patterns " +
			"and factors that directly influence the average rating of titles.",
		"Main findings:",
		"- Popularity and vote count are strongly related to the average rating: movies that " +
			"are more discussed and engaged with on the platform tend to reach better ratings.\n" +
			"- Budget and revenue, while important, are not decisive on their own for predicting " +
			"success: big investments do not guarantee good ratings.\n" +
			"- The linear regression model performed consistently and explains part of the " +
			"variation in ratings.",
	},
	Suggestions: {
		"- Catalog curation: titles with high popularity and engagement should get more " +
			"prominence in platform recommendations.\n" +
			"- Targeted marketing: campaigns work better when aligned with movies that have the " +
			"potential to generate votes and discussion.\n" +
			"- Portfolio management: revenue alone should not be the only selection criterion; " +
			"popularity and engagement are more robust indicators of success potential.",
	},
}

// Text returns the fixed paragraphs of a narrative section. Computed sections
// (analyses, models) have none.
func Text(s Section) []string {
	out := make([]string, len(texts[s]))
	copy(out, texts[s])
	return out
}

// IsNarrative reports whether s is a static text section.
func IsNarrative(s Section) bool {
	_, ok := texts[s]
	return ok
}
