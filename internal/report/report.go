// Package report turns a flat list of entries into the grouped receipt
// summary: one item per date in chronological order, broken down by type.
package report

import (
	"strconv"
	"strings"

	"receipts/internal/core"
	"receipts/internal/group"
)

const Greeting = "Please find attached the receipts of the following:"

type (
	// Line is the summary of all entries sharing one type on one date.
	// Unit is the first entry's amount; Sum is the true sum of the group.
	Line struct {
		Type  string     `json:"type"`
		Count int        `json:"count"`
		Unit  core.Money `json:"unit"`
		Sum   core.Money `json:"sum"`
		Text  string     `json:"text"`
	}

	Day struct {
		Date     string     `json:"date"`
		Label    string     `json:"label"`
		Lines    []Line     `json:"lines"`
		Subtotal core.Money `json:"subtotal"`
	}

	Report struct {
		Days      []Day      `json:"days"`
		Total     core.Money `json:"total_amount"`
		TotalText string     `json:"total"`
	}

	// Recipients optionally personalises the copyable text.
	Recipients struct {
		From string
		To   string
	}
)

func (l Line) String() string {
	return l.Text
}

// Single reports whether the day holds a single entry type.
func (d Day) Single() bool {
	return len(d.Lines) == 1
}

// Summary joins the per-type phrases, e.g.
// "2 courts (600 x 2 = 1200), 1 food (300)".
func (d Day) Summary() string {
	parts := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, ", ")
}

// Heading is the list item text: the date label, followed by the summary
// when the day has a single type.
func (d Day) Heading() string {
	if d.Single() {
		return d.Label + " - " + d.Summary()
	}
	return d.Label
}

type Builder struct {
	f *Formatter
}

func NewBuilder(f *Formatter) *Builder {
	if f == nil {
		f = DefaultFormatter()
	}
	return &Builder{f: f}
}

func (b *Builder) Formatter() *Formatter {
	return b.f
}

// Build aggregates entries into a Report. ok is false when there are no
// entries, in which case nothing should be rendered.
func (b *Builder) Build(entries []core.Entry) (r Report, ok bool) {
	if len(entries) == 0 {
		return Report{}, false
	}

	byDate := group.SortByKey(group.By(entries, func(e core.Entry) string { return e.Date.ISO() }))
	r.Days = make([]Day, 0, byDate.Len())
	byDate.Each(func(date string, dayEntries []core.Entry) {
		day := Day{
			Date:     date,
			Label:    b.f.Date(dayEntries[0].Date),
			Subtotal: core.Sum(dayEntries),
		}
		group.By(dayEntries, func(e core.Entry) string { return e.Type }).Each(func(typ string, typed []core.Entry) {
			day.Lines = append(day.Lines, b.line(typ, typed))
		})
		r.Days = append(r.Days, day)
	})

	r.Total = core.Sum(entries)
	r.TotalText = b.f.Money(r.Total)
	return r, true
}

func (b *Builder) line(typ string, entries []core.Entry) Line {
	l := Line{
		Type:  typ,
		Count: len(entries),
		Unit:  entries[0].Amount,
		Sum:   core.Sum(entries),
	}
	var sb strings.Builder
	sb.WriteString(Pluralize(l.Count, typ))
	sb.WriteString(" (")
	sb.WriteString(b.f.Money(l.Unit))
	if l.Count > 1 {
		sb.WriteString(" x ")
		sb.WriteString(strconv.Itoa(l.Count))
		sb.WriteString(" = ")
		sb.WriteString(b.f.Money(l.Sum))
	}
	sb.WriteString(")")
	l.Text = sb.String()
	return l
}

// Text renders the copyable block for pasting into an email.
func (r Report) Text(rc Recipients) string {
	var sb strings.Builder
	if to := strings.TrimSpace(rc.To); to != "" {
		sb.WriteString("Hi " + to + ",\n\n")
	}
	sb.WriteString(Greeting + "\n")
	for i, d := range r.Days {
		sb.WriteString(strconv.Itoa(i+1) + ". " + d.Heading() + "\n")
		if d.Single() {
			continue
		}
		for _, l := range d.Lines {
			sb.WriteString("   - " + l.Text + "\n")
		}
	}
	sb.WriteString("\nTotal: " + r.TotalText + "/-\n")
	if from := strings.TrimSpace(rc.From); from != "" {
		sb.WriteString("\nRegards,\n" + from + "\n")
	}
	return sb.String()
}
