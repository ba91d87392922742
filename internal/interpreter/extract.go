package interpreter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/starford/dagaz/internal/models"
)

const dateLayout = "2006-01-02"

var (
	tomorrowRe = regexp.MustCompile(`(?i)\btomorrow\b`)
	todayRe    = regexp.MustCompile(`(?i)\btoday\b`)
	tonightRe  = regexp.MustCompile(`(?i)\btonight\b`)

	// 12/31, 12-31, 12/31/2026.
	explicitDateRe = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\b`)

	// "at 5", "at 5:30pm", "at 17:00".
	timeRe = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)

	lowPriorityRe    = regexp.MustCompile(`(?i)\b(?:with\s+)?(?:low\s+priority|not\s+urgent)\b`)
	mediumPriorityRe = regexp.MustCompile(`(?i)\b(?:with\s+)?medium\s+priority\b`)
	highPriorityRe   = regexp.MustCompile(`(?i)\b(?:with\s+)?(?:high\s+priority|urgent|important)\b`)

	categoryRe = regexp.MustCompile(`(?i)\b(?:for\s+)?(work|personal|shopping|health|medical)\b`)

	trailingByRe = regexp.MustCompile(`(?i)\bby\s+\d{1,2}(?::\d{2})?\s*(?:am|pm)?\s*$`)
	spacesRe     = regexp.MustCompile(`\s+`)
)

// extractModifiers pulls due date, time, priority, and category out of the
// free text of an add or edit command, filling cmd as it goes. Each matched
// phrase is removed; the cleaned-up remainder is returned as the title.
func (p *Parser) extractModifiers(text string, cmd *Command) string {
	text = p.extractRelativeDate(text, cmd)
	text = p.extractExplicitDate(text, cmd)
	text = extractTime(text, cmd)
	text = extractPriority(text, cmd)
	text = extractCategory(text, cmd)
	return cleanTitle(text)
}

// extractRelativeDate resolves tomorrow, today, and tonight against the
// parser's clock. At most one applies, checked in that order. Tonight also
// implies an evening time unless an explicit one follows.
func (p *Parser) extractRelativeDate(text string, cmd *Command) string {
	now := p.now()
	switch {
	case tomorrowRe.MatchString(text):
		cmd.DueDate = now.AddDate(0, 0, 1).Format(dateLayout)
		return tomorrowRe.ReplaceAllString(text, "")
	case todayRe.MatchString(text):
		cmd.DueDate = now.Format(dateLayout)
		return todayRe.ReplaceAllString(text, "")
	case tonightRe.MatchString(text):
		cmd.DueDate = now.Format(dateLayout)
		cmd.DueTime = "20:00"
		return tonightRe.ReplaceAllString(text, "")
	}
	return text
}

// extractExplicitDate handles numeric month/day dates with an optional year.
// A missing year means the current one.
func (p *Parser) extractExplicitDate(text string, cmd *Command) string {
	if cmd.DueDate != "" {
		return text
	}
	m := explicitDateRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year := p.now().Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
	}
	cmd.DueDate = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(dateLayout)
	return strings.Replace(text, m[0], "", 1)
}

// extractTime handles "at H", "at H:MM", and am/pm suffixes. An explicit
// time overrides the default set by "tonight".
func extractTime(text string, cmd *Command) string {
	m := timeRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	switch strings.ToLower(m[3]) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	cmd.DueTime = fmt.Sprintf("%02d:%02d", hour, minute)
	return strings.Replace(text, m[0], "", 1)
}

// extractPriority maps priority phrases to a level. Negated forms are
// checked first so "not urgent" never reads as urgent.
func extractPriority(text string, cmd *Command) string {
	for _, p := range []struct {
		re    *regexp.Regexp
		level models.Priority
	}{
		{lowPriorityRe, models.PriorityLow},
		{mediumPriorityRe, models.PriorityMedium},
		{highPriorityRe, models.PriorityHigh},
	} {
		if p.re.MatchString(text) {
			cmd.Priority = p.level
			return p.re.ReplaceAllString(text, "")
		}
	}
	return text
}

// extractCategory recognizes a fixed keyword set; "medical" folds into the
// health category.
func extractCategory(text string, cmd *Command) string {
	m := categoryRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	cat := strings.ToLower(m[1])
	if cat == "medical" {
		cat = "health"
	}
	cmd.Category = cat
	return strings.Replace(text, m[0], "", 1)
}

// cleanTitle normalizes whatever text the extractors left behind.
func cleanTitle(text string) string {
	text = trailingByRe.ReplaceAllString(text, "")
	text = spacesRe.ReplaceAllString(text, " ")
	return strings.Trim(text, " ,.")
}
