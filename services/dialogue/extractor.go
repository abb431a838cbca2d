// File: skybook/services/dialogue/extractor.go
package dialogue

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"skybook/models"
)

var (
	fromToRe = regexp.MustCompile(`(?i)\bfrom\s+([a-zA-Z]+)\s+to\s+([a-zA-Z]+)\b`)

	dayFirstDateRe  = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{4})\b`)
	yearFirstDateRe = regexp.MustCompile(`\b(\d{4})[/-](\d{1,2})[/-](\d{1,2})\b`)

	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s\-]{6,13}\d`)
	ageRe   = regexp.MustCompile(`(?i)\b(?:age|aged|i am|i'm)\s*:?\s*(\d{1,3})\b`)
	bareNum = regexp.MustCompile(`^\s*(\d{1,3})\s*$`)
	nameRe  = regexp.MustCompile(`(?i)\b(?:my name is|name:?)\s+([a-zA-Z]+(?:\s+[a-zA-Z]+){0,3})`)
	wordRe  = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// ExtractEntities maps raw text to candidate travel entities. It is total:
// any input yields a result, with absence expressed as empty fields. Matching
// is ASCII case-insensitive; now anchors relative dates ("today", "tomorrow").
func ExtractEntities(text string, now time.Time) models.ExtractedEntities {
	var out models.ExtractedEntities
	out.Origin, out.Destination = extractCities(text)
	out.TravelDate = extractDate(text, now)
	return out
}

// extractCities tries the explicit "from A to B" pattern first, then falls
// back to a gazetteer scan. A single gazetteer hit is never enough to guess.
func extractCities(text string) (origin, destination string) {
	if m := fromToRe.FindStringSubmatch(text); m != nil {
		return titleCase(m[1]), titleCase(m[2])
	}
	cities := findCities(strings.ToLower(text))
	if len(cities) >= 2 {
		return cities[0], cities[1]
	}
	return "", ""
}

// extractDate resolves a travel date from text, normalized to YYYY-MM-DD.
// "tomorrow" is checked before "today" since both are matched on whole-word
// tokens. No default is invented here; the state machine decides whether to
// prompt when the date is absent.
func extractDate(text string, now time.Time) string {
	if containsWord(text, "tomorrow") {
		return now.AddDate(0, 0, 1).Format("2006-01-02")
	}
	if containsWord(text, "today") {
		return now.Format("2006-01-02")
	}

	if m := dayFirstDateRe.FindStringSubmatch(text); m != nil {
		if date := normalizeDate(m[3], m[2], m[1]); date != "" {
			return date
		}
	}
	if m := yearFirstDateRe.FindStringSubmatch(text); m != nil {
		if date := normalizeDate(m[1], m[2], m[3]); date != "" {
			return date
		}
	}
	return ""
}

// ExtractPassenger pulls passenger details out of free text. Fields that
// cannot be recognized stay zero; the caller merges results across turns.
func ExtractPassenger(text string) models.PassengerDetails {
	var p models.PassengerDetails

	if m := emailRe.FindString(text); m != "" {
		p.Email = m
	}
	if m := ageRe.FindStringSubmatch(text); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil && age > 0 && age < 120 {
			p.Age = age
		}
	}
	if p.Age == 0 {
		if m := bareNum.FindStringSubmatch(text); m != nil {
			if age, err := strconv.Atoi(m[1]); err == nil && age > 0 && age < 120 {
				p.Age = age
			}
		}
	}
	// Phone after age: a bare short number is an age, not a phone.
	if p.Age == 0 || !bareNum.MatchString(text) {
		if m := phoneRe.FindString(text); m != "" {
			p.Phone = normalizePhone(m)
		}
	}
	if m := nameRe.FindStringSubmatch(text); m != nil {
		p.FullName = titleWords(m[1])
	} else if p.Email == "" && p.Phone == "" && p.Age == 0 {
		if name := looksLikeName(text); name != "" {
			p.FullName = name
		}
	}
	return p
}

// looksLikeName accepts short all-alphabetic phrases of two to four words.
func looksLikeName(text string) string {
	words := strings.Fields(strings.TrimSpace(text))
	if len(words) < 2 || len(words) > 4 {
		return ""
	}
	for _, w := range words {
		if !wordRe.MatchString(w) {
			return ""
		}
	}
	return titleWords(strings.Join(words, " "))
}

func normalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeDate zero-pads month and day and rejects impossible values.
func normalizeDate(year, month, day string) string {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return ""
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return ""
	}
	return fmt.Sprintf("%s-%02d-%02d", year, m, d)
}

// containsWord reports whether text contains the given lowercase word as a
// whole token, ASCII case-insensitively.
func containsWord(text, word string) bool {
	lower := strings.ToLower(text)
	for idx := 0; ; {
		i := strings.Index(lower[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		leftOK := start == 0 || !isWordByte(lower[start-1])
		rightOK := end == len(lower) || !isWordByte(lower[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

func titleWords(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = titleCase(w)
	}
	return strings.Join(words, " ")
}
