package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for the chat core, exposed on /metrics by the
// daemon.
var (
	MessagesAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aura_messages_appended_total",
		Help: "Messages appended across all conversations.",
	})
	RepliesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aura_replies_generated_total",
		Help: "Simulated peer replies appended.",
	})
	ReplyFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aura_reply_fallbacks_total",
		Help: "Replies that fell back to the fixed string after a generator failure.",
	})
	RepliesPending = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aura_replies_pending",
		Help: "Reply timers currently in flight.",
	})
	Crystallizations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aura_crystallizations_total",
		Help: "Messages crystallized into artifacts.",
	})
	TagFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aura_tag_fallbacks_total",
		Help: "Artifacts that received the fallback tag after an enrichment failure.",
	})
	ScheduledSends = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aura_scheduled_sends_total",
		Help: "Entries recorded in the scheduled-send queue.",
	})
)
