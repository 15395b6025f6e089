package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// eventTable builds an event table. Every event carries an auto-increment
// id, a unique global sequence and a timestamp ahead of its own columns.
// Timestamps are fixed-width UTC text so they sort chronologically.
func eventTable(name string, columns ...*schema.Column) *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	seq := &schema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}
	ts := &schema.Column{Name: "timestamp", Type: field.TypeString}

	cols := append([]*schema.Column{id, seq, ts}, columns...)
	return &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{id},
		Indexes: []*schema.Index{
			{Name: name + "_timestamp", Columns: []*schema.Column{ts}},
		},
	}
}

func stringColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString}
}

func textColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Default: ""}
}

func intColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt, Default: 0}
}

func int64Column(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt64, Default: 0}
}

func boolColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeBool, Default: false}
}

var (
	appStateKey = &schema.Column{Name: "key", Type: field.TypeString, Unique: true}

	appStateTable = &schema.Table{
		Name: "app_state",
		Columns: []*schema.Column{
			appStateKey,
			stringColumn("value"),
			stringColumn("updated_at"),
		},
		PrimaryKey: []*schema.Column{appStateKey},
	}

	sequenceID = &schema.Column{Name: "id", Type: field.TypeInt}

	globalSequenceTable = &schema.Table{
		Name: "global_sequence",
		Columns: []*schema.Column{
			sequenceID,
			{Name: "next_val", Type: field.TypeInt64, Default: 1},
		},
		PrimaryKey: []*schema.Column{sequenceID},
	}

	sessionEventsTable = eventTable("session_events",
		stringColumn("session_id"),
		stringColumn("action"),
		intColumn("plan"),
		intColumn("word_count"),
		intColumn("correct_answers"),
		intColumn("wrong_answers"),
		intColumn("mastered"),
		intColumn("points"),
		boolColumn("goal_reached"),
		intColumn("duration_secs"),
	)

	answerEventsTable = withIndex(eventTable("answer_events",
		stringColumn("session_id"),
		stringColumn("term"),
		stringColumn("question_type"),
		stringColumn("expected"),
		stringColumn("given"),
		boolColumn("correct"),
		int64Column("time_ms"),
	), "answer_events_term", "term")

	masteryEventsTable = eventTable("mastery_events",
		stringColumn("session_id"),
		stringColumn("term"),
		intColumn("total_mastered"),
	)

	llmRequestEventsTable = eventTable("llm_request_events",
		stringColumn("provider"),
		stringColumn("model"),
		stringColumn("purpose"),
		intColumn("input_tokens"),
		intColumn("output_tokens"),
		int64Column("latency_ms"),
		boolColumn("success"),
		textColumn("error_message"),
		textColumn("request_body"),
		textColumn("response_body"),
	)

	// tables lists everything the migrator keeps in sync.
	tables = []*schema.Table{
		appStateTable,
		globalSequenceTable,
		sessionEventsTable,
		answerEventsTable,
		masteryEventsTable,
		llmRequestEventsTable,
	}
)

// withIndex adds a non-unique index over the named column of t.
func withIndex(t *schema.Table, name, column string) *schema.Table {
	for _, c := range t.Columns {
		if c.Name == column {
			t.Indexes = append(t.Indexes, &schema.Index{Name: name, Columns: []*schema.Column{c}})
		}
	}
	return t
}

// columnNames returns the column names of t, skipping the first skip.
func columnNames(t *schema.Table, skip int) []string {
	names := make([]string, 0, len(t.Columns)-skip)
	for _, c := range t.Columns[skip:] {
		names = append(names, c.Name)
	}
	return names
}
