package domain

// Document is the single durable root record. The three sequences keep
// insertion order; no secondary index is persisted.
type Document struct {
	Applications []Application `json:"applications"`
	Tickets      []Ticket      `json:"tickets"`
	Sessions     []DutySession `json:"sessions"`
}

// NewDocument returns an empty document with allocated sequences.
func NewDocument() Document {
	return Document{
		Applications: []Application{},
		Tickets:      []Ticket{},
		Sessions:     []DutySession{},
	}
}

// Clone returns a deep copy so snapshots never alias repository state.
func (d Document) Clone() Document {
	out := Document{
		Applications: make([]Application, len(d.Applications)),
		Tickets:      make([]Ticket, len(d.Tickets)),
		Sessions:     make([]DutySession, len(d.Sessions)),
	}
	for i, app := range d.Applications {
		out.Applications[i] = app.Clone()
	}
	for i, ticket := range d.Tickets {
		out.Tickets[i] = ticket.Clone()
	}
	for i, session := range d.Sessions {
		out.Sessions[i] = session.Clone()
	}
	return out
}

func (a Application) Clone() Application {
	out := a
	if a.Answers != nil {
		out.Answers = make(map[string]string, len(a.Answers))
		for k, v := range a.Answers {
			out.Answers[k] = v
		}
	}
	if a.DecidedAt != nil {
		decidedAt := *a.DecidedAt
		out.DecidedAt = &decidedAt
	}
	if a.DecidedBy != nil {
		decidedBy := *a.DecidedBy
		out.DecidedBy = &decidedBy
	}
	return out
}

func (t Ticket) Clone() Ticket {
	out := t
	if t.ClosedAt != nil {
		closedAt := *t.ClosedAt
		out.ClosedAt = &closedAt
	}
	return out
}

func (s DutySession) Clone() DutySession {
	out := s
	out.Assignments = append([]string(nil), s.Assignments...)
	if s.ClockOut != nil {
		clockOut := *s.ClockOut
		out.ClockOut = &clockOut
	}
	return out
}
