package fintrack

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/fintrack/date"
)

// uidTemplate derives occurrence identifiers from a plan, like
// "{plan.description} on {date}".
//
// Placeholders are {index}, the 0-based occurrence index, {date}, the
// occurrence day as "today" or "Jun 07", and {plan.amount},
// {plan.description}, {plan.schedule} and {plan.uid}. {{ and }} are literal
// braces.
type uidTemplate []templatePart

type templatePart struct {
	literal string
	field   string // empty for a literal part.
}

var templateFields = map[string]bool{
	"index":            true,
	"date":             true,
	"plan.amount":      true,
	"plan.description": true,
	"plan.schedule":    true,
	"plan.uid":         true,
}

func parseUIDTemplate(text string) (uidTemplate, error) {
	var (
		parts   uidTemplate
		literal strings.Builder
	)
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '{' && i+1 < len(text) && text[i+1] == '{':
			literal.WriteByte('{')
			i++
		case c == '}' && i+1 < len(text) && text[i+1] == '}':
			literal.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed placeholder in uid template %q", ErrValue, text)
			}
			field := strings.TrimSpace(text[i+1 : i+end])
			if !templateFields[field] {
				return nil, fmt.Errorf("%w: unknown placeholder {%s} in uid template %q", ErrValue, field, text)
			}
			if literal.Len() > 0 {
				parts = append(parts, templatePart{literal: literal.String()})
				literal.Reset()
			}
			parts = append(parts, templatePart{field: field})
			i += end
		case c == '}':
			return nil, fmt.Errorf("%w: single '}' in uid template %q", ErrValue, text)
		default:
			literal.WriteByte(c)
		}
	}
	if literal.Len() > 0 {
		parts = append(parts, templatePart{literal: literal.String()})
	}
	return parts, nil
}

func (t uidTemplate) execute(p PlannedRecord, index int, on time.Time) string {
	var b strings.Builder
	for _, part := range t {
		switch part.field {
		case "":
			b.WriteString(part.literal)
		case "index":
			b.WriteString(strconv.Itoa(index))
		case "date":
			b.WriteString(date.NaturalDay(on, now()))
		case "plan.amount":
			b.WriteString(p.Amount.String())
		case "plan.description":
			b.WriteString(p.Description)
		case "plan.schedule":
			b.WriteString(p.Schedule.String())
		case "plan.uid":
			b.WriteString(p.UID)
		}
	}
	return b.String()
}
