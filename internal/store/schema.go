package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Every event table starts with the same three columns: the row id, the
// global sequence number and the wall-clock timestamp.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}, extra...)
}

var (
	// ProgressColumns holds the columns for the "progress" table.
	ProgressColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "revision", Type: field.TypeInt64},
		{Name: "data", Type: field.TypeJSON},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// ProgressTable holds the schema information for the "progress" table.
	ProgressTable = &schema.Table{
		Name:       "progress",
		Columns:    ProgressColumns,
		PrimaryKey: []*schema.Column{ProgressColumns[0]},
	}

	// AnswerEventsColumns holds the columns for the "answer_events" table.
	AnswerEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "question_index", Type: field.TypeInt},
		&schema.Column{Name: "question_text", Type: field.TypeString},
		&schema.Column{Name: "selected", Type: field.TypeInt},
		&schema.Column{Name: "correct_index", Type: field.TypeInt},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "hearts_remaining", Type: field.TypeInt},
	)
	// AnswerEventsTable holds the schema information for the "answer_events" table.
	AnswerEventsTable = &schema.Table{
		Name:       "answer_events",
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_session_id", Columns: []*schema.Column{AnswerEventsColumns[3]}},
		},
	}

	// HintEventsColumns holds the columns for the "hint_events" table.
	HintEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "query", Type: field.TypeString},
		&schema.Column{Name: "video_id", Type: field.TypeString},
		&schema.Column{Name: "clip_start", Type: field.TypeFloat64},
		&schema.Column{Name: "clip_end", Type: field.TypeFloat64},
		&schema.Column{Name: "source", Type: field.TypeString},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString},
	)
	// HintEventsTable holds the schema information for the "hint_events" table.
	HintEventsTable = &schema.Table{
		Name:       "hint_events",
		Columns:    HintEventsColumns,
		PrimaryKey: []*schema.Column{HintEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "hintevent_session_id", Columns: []*schema.Column{HintEventsColumns[3]}},
		},
	}

	// SessionEventsColumns holds the columns for the "session_events" table.
	SessionEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "video_id", Type: field.TypeString},
		&schema.Column{Name: "total", Type: field.TypeInt},
		&schema.Column{Name: "score", Type: field.TypeInt},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt},
		&schema.Column{Name: "incorrect_answers", Type: field.TypeInt},
		&schema.Column{Name: "hints_used", Type: field.TypeInt},
		&schema.Column{Name: "hearts_remaining", Type: field.TypeInt},
		&schema.Column{Name: "ended_early", Type: field.TypeBool},
	)
	// SessionEventsTable holds the schema information for the "session_events" table.
	SessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Columns: []*schema.Column{SessionEventsColumns[3]}},
			{Name: "sessionevent_action", Columns: []*schema.Column{SessionEventsColumns[4]}},
		},
	}

	// RequestEventsColumns holds the columns for the "request_events" table.
	RequestEventsColumns = eventColumns(
		&schema.Column{Name: "service", Type: field.TypeString},
		&schema.Column{Name: "operation", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "status_code", Type: field.TypeInt},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString},
	)
	// RequestEventsTable holds the schema information for the "request_events" table.
	RequestEventsTable = &schema.Table{
		Name:       "request_events",
		Columns:    RequestEventsColumns,
		PrimaryKey: []*schema.Column{RequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "requestevent_service", Columns: []*schema.Column{RequestEventsColumns[3]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ProgressTable,
		AnswerEventsTable,
		HintEventsTable,
		SessionEventsTable,
		RequestEventsTable,
	}
)
