// Package alert carries user-facing notifications out of the panel core.
// The display mechanism (snackbar, toast, log line) is out of scope; the
// core only promises a single subscribable stream of human-readable
// messages, each reported exactly once at the point of occurrence.
package alert

import (
	"github.com/rs/zerolog"

	"github.com/yamacbayin/blog-admin-panel/internal/panel/stream"
)

// Kind classifies a notification.
type Kind string

const (
	// KindSuccess confirms a completed mutation.
	KindSuccess Kind = "success"
	// KindValidation is a local field-level rejection; no network call was made.
	KindValidation Kind = "validation"
	// KindBusinessRule is a local rule rejection; no network call was made.
	KindBusinessRule Kind = "business_rule"
	// KindRemote is a network or server failure.
	KindRemote Kind = "remote"
)

// Alert is one user-facing notification.
type Alert struct {
	Kind    Kind
	Message string
}

// Notifier multicasts alerts to subscribers and mirrors them to the log.
type Notifier struct {
	stream *stream.Stream[Alert]
	log    zerolog.Logger
}

func NewNotifier(log zerolog.Logger) *Notifier {
	return &Notifier{stream: stream.New[Alert](), log: log}
}

// Subscribe returns the alert channel and an unsubscribe function.
func (n *Notifier) Subscribe() (<-chan Alert, func()) {
	return n.stream.Subscribe()
}

func (n *Notifier) Success(message string) {
	n.log.Info().Str("kind", string(KindSuccess)).Msg(message)
	n.stream.Publish(Alert{Kind: KindSuccess, Message: message})
}

func (n *Notifier) Validation(message string) {
	n.publishFailure(KindValidation, message)
}

func (n *Notifier) BusinessRule(message string) {
	n.publishFailure(KindBusinessRule, message)
}

func (n *Notifier) Remote(message string) {
	n.publishFailure(KindRemote, message)
}

func (n *Notifier) publishFailure(kind Kind, message string) {
	n.log.Warn().Str("kind", string(kind)).Msg(message)
	n.stream.Publish(Alert{Kind: kind, Message: message})
}
