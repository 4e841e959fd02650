package fintrack

import (
	"fmt"
	"time"

	"github.com/etnz/fintrack/schedule"
	"github.com/shopspring/decimal"
)

// PlannedRecord is a template producing records on a schedule.
type PlannedRecord struct {
	Amount      decimal.Decimal
	Description string
	Schedule    schedule.Schedule
	UIDTemplate string
	UID         string

	template uidTemplate
}

var planColumns = []string{"schedule", "amount", "description", "uid"}

// NewPlannedRecord parses the schedule and the uid template with the current
// settings.
func NewPlannedRecord(amount decimal.Decimal, description, scheduleText, uidTemplate string) (PlannedRecord, error) {
	s, err := schedule.Parse(scheduleText, CurrentSettings().Parser())
	if err != nil {
		return PlannedRecord{}, fmt.Errorf("%w: %w", ErrValue, err)
	}
	return newPlannedRecord(amount, description, s, uidTemplate, "")
}

func newPlannedRecord(amount decimal.Decimal, description string, s schedule.Schedule, uidTemplate, uid string) (PlannedRecord, error) {
	tmpl, err := parseUIDTemplate(uidTemplate)
	if err != nil {
		return PlannedRecord{}, err
	}
	if uid == "" {
		uid = newUID()
	}
	return PlannedRecord{
		Amount:      amount,
		Description: description,
		Schedule:    s,
		UIDTemplate: uidTemplate,
		UID:         uid,
		template:    tmpl,
	}, nil
}

// PlannedFromArgs builds a plan from positional arguments:
// amount, description, schedule[, uid template[, uid]].
func PlannedFromArgs(args ...any) (PlannedRecord, error) {
	if len(args) < 3 || len(args) > 5 {
		return PlannedRecord{}, fmt.Errorf("%w: a plan takes amount, description, schedule[, uid template[, uid]], got %d arguments", ErrType, len(args))
	}
	f := Fields{"amount": args[0], "description": args[1], "schedule": args[2]}
	if len(args) > 3 {
		f["uid_template"] = args[3]
	}
	if len(args) > 4 {
		f["uid"] = args[4]
	}
	return PlannedFromFields(f)
}

// PlannedFromFields builds a plan from its keyword form. "uids" is accepted
// as an alias of "uid_template".
func PlannedFromFields(f Fields) (PlannedRecord, error) {
	if v, ok := f["uids"]; ok {
		if _, dup := f["uid_template"]; dup {
			return PlannedRecord{}, fmt.Errorf("plan: %w: both uids and uid_template given", ErrType)
		}
		g := make(Fields, len(f))
		for k, x := range f {
			g[k] = x
		}
		delete(g, "uids")
		g["uid_template"] = v
		f = g
	}
	if err := checkFields(f, []string{"amount", "description", "schedule"}, []string{"uid_template", "uid"}); err != nil {
		return PlannedRecord{}, fmt.Errorf("plan: %w", err)
	}
	amount, err := ParseAmount(f["amount"])
	if err != nil {
		return PlannedRecord{}, fmt.Errorf("plan amount: %w", err)
	}
	description, err := stringField(f, "description")
	if err != nil {
		return PlannedRecord{}, fmt.Errorf("plan: %w", err)
	}

	var s schedule.Schedule
	switch v := f["schedule"].(type) {
	case schedule.Schedule:
		s = v
	case string:
		if s, err = schedule.Parse(v, CurrentSettings().Parser()); err != nil {
			return PlannedRecord{}, fmt.Errorf("plan: %w: %w", ErrValue, err)
		}
	default:
		return PlannedRecord{}, fmt.Errorf("plan: %w: schedule want a string got %T", ErrType, v)
	}

	tmpl, err := stringField(f, "uid_template")
	if err != nil {
		return PlannedRecord{}, fmt.Errorf("plan: %w", err)
	}
	uid, err := stringField(f, "uid")
	if err != nil {
		return PlannedRecord{}, fmt.Errorf("plan: %w", err)
	}
	p, err := newPlannedRecord(amount, description, s, tmpl, uid)
	if err != nil {
		return PlannedRecord{}, fmt.Errorf("plan: %w", err)
	}
	return p, nil
}

// Key returns the next occurrence after now, or the fixed instant. A finished
// schedule has a zero key.
func (p PlannedRecord) Key() time.Time {
	on, _ := p.Schedule.Next(now())
	return on
}

func (p PlannedRecord) Columns() []string { return planColumns }

func (p PlannedRecord) Row() []any {
	return []any{p.Schedule.String(), p.Amount, p.Description, p.UID}
}

// Take expands the plan into records.
//
// Expansion starts at b.Start, or now. Recurring schedules produce the
// instants strictly after the start and strictly before b.Until, at most
// b.Count of them. Without a count nor an until, a recurring schedule that
// does not end by itself is expanded over one month.
//
// A fixed schedule produces its instant when it is within [start, until].
//
// Without a uid template every occurrence carries the plan's own uid.
func (p PlannedRecord) Take(b Bounds) []Record {
	start, until := b.Start, b.Until
	if start.IsZero() {
		start = now()
	}
	if !p.Schedule.Bounded() && b.Count <= 0 && until.IsZero() {
		until = start.AddDate(0, 1, 0)
	}

	var records []Record
	index := 0
	for on := range p.Schedule.Occurrences(start, until, b.Count) {
		uid := p.UID
		if p.template != nil {
			uid = p.template.execute(p, index, on)
		}
		records = append(records, Record{Amount: p.Amount, Description: p.Description, Timestamp: on, UID: uid})
		index++
	}
	return records
}

func (p PlannedRecord) String() string {
	return fmt.Sprintf("plan for %s %s %s", p.Amount, p.Schedule, p.Description)
}

// MarshalJSON writes the plan in its canonical persisted form.
func (p PlannedRecord) MarshalJSON() ([]byte, error) {
	var w fieldWriter
	w.Amount("amount", p.Amount)
	w.Text("description", p.Description)
	w.Text("schedule", p.Schedule.String())
	w.OptionalText("uid_template", p.UIDTemplate)
	w.Text("uid", p.UID)
	return w.MarshalJSON()
}

func (p *PlannedRecord) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	plan, err := PlannedFromFields(f)
	if err != nil {
		return err
	}
	*p = plan
	return nil
}
