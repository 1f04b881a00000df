package domain

import "github.com/google/uuid"

// ScriptErrorCheck labels the synthetic alert emitted when a poll cycle
// itself fails, as opposed to a check reported by the node.
const ScriptErrorCheck = "script_error"

// Alert is one message bound for the notification channel. ID correlates
// send attempts in logs; Check is the originating check id.
type Alert struct {
	ID    string
	Check string
	Text  string
}

// NewAlert builds an alert with a fresh correlation id.
func NewAlert(check, text string) Alert {
	return Alert{
		ID:    uuid.NewString(),
		Check: check,
		Text:  text,
	}
}
