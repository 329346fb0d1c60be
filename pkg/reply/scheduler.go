package reply

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"aura/pkg/chat"
	"aura/pkg/logger"
	"aura/pkg/models"
	"aura/pkg/telemetry"
	"aura/pkg/utils"
)

// Fallback is appended in place of a generated reply when the generator
// fails.
const Fallback = "The stars are cloudy tonight... (API Error)"

// Default bounds for the artificial think-time before a reply lands. The
// delay is uniform in [min, max).
const (
	DefaultMinDelay = 2 * time.Second
	DefaultMaxDelay = 6 * time.Second
)

// Generator produces a peer reply from a contact, a frozen history
// snapshot and the local user's mood. Implementations may take arbitrary
// wall-clock time; failures are recovered with Fallback, never surfaced.
type Generator interface {
	GenerateReply(ctx context.Context, contact models.Contact, history []models.Message, userMood models.Mood) (string, error)
}

// result travels from a fired timer back to the dispatcher goroutine,
// which performs the actual append.
type result struct {
	convID string
	text   string
}

// Scheduler coordinates deferred reply generation. Every Send of a human
// message to a non-group contact schedules exactly one timer; timers are
// fire-and-forget with no cancellation, so overlapping sends to the same
// conversation race and their replies land in resolution order.
//
// The typing flag for a conversation is raised when a timer is scheduled
// and cleared when any reply for that conversation resolves.
type Scheduler struct {
	engine *chat.Engine
	gen    Generator

	minDelay time.Duration
	maxDelay time.Duration

	mu     sync.RWMutex
	typing map[string]bool

	results chan result
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewScheduler(engine *chat.Engine, gen Generator, minDelay, maxDelay time.Duration) *Scheduler {
	if minDelay <= 0 {
		minDelay = DefaultMinDelay
	}
	if maxDelay <= minDelay {
		maxDelay = minDelay + (DefaultMaxDelay - DefaultMinDelay)
	}
	return &Scheduler{
		engine:   engine,
		gen:      gen,
		minDelay: minDelay,
		maxDelay: maxDelay,
		typing:   make(map[string]bool),
		results:  make(chan result, 64),
	}
}

// Start launches the dispatcher goroutine that applies resolved replies to
// the engine. Appends happen one at a time, in resolution order.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.dispatch()
}

// Stop stops the dispatcher. Pending timers are not cancelled (there is no
// mechanism to), but their results are dropped once the dispatcher exits.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Send appends the human message synchronously and, for non-group
// contacts, schedules one deferred reply over a frozen snapshot of the
// history as it exists right now (later sends do not leak into this
// reply's prompt context).
func (s *Scheduler) Send(convID string, m models.Message) {
	s.engine.Append(convID, m)

	contact, ok := s.engine.Contact(convID)
	if !ok || contact.IsGroup {
		return
	}

	s.setTyping(convID, true)
	snapshot := s.engine.Messages(convID)
	mood := s.engine.UserMood()
	delay := s.minDelay + time.Duration(rand.Int63n(int64(s.maxDelay-s.minDelay)))
	telemetry.RepliesPending.Inc()
	logger.Debug("reply_scheduled", "conversation", convID, "delay", delay)

	go func() {
		time.Sleep(delay)
		text, err := s.gen.GenerateReply(s.ctx, contact, snapshot, mood)
		if err != nil || text == "" {
			logger.Warn("reply_generation_failed", "conversation", convID, "error", err)
			telemetry.ReplyFallbacks.Inc()
			text = Fallback
		}
		select {
		case s.results <- result{convID: convID, text: text}:
		case <-s.ctx.Done():
		}
	}()
}

// Typing reports whether a reply is pending generation for the
// conversation.
func (s *Scheduler) Typing(convID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.typing[convID]
}

func (s *Scheduler) setTyping(convID string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v {
		s.typing[convID] = true
	} else {
		delete(s.typing, convID)
	}
}

func (s *Scheduler) dispatch() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case r := <-s.results:
			reply := models.Message{
				ID:     utils.GenID(),
				Text:   r.text,
				Sender: models.SenderPeer,
				TS:     time.Now().UnixMilli(),
				Status: models.StatusRead,
				Kind:   models.KindText,
			}
			// The append still fires even if the conversation was deleted
			// mid-flight; the continuation resurrects it.
			s.engine.Append(r.convID, reply)
			s.setTyping(r.convID, false)
			telemetry.RepliesPending.Dec()
			telemetry.RepliesGenerated.Inc()
			logger.Info("reply_appended", "conversation", r.convID, "id", reply.ID)
		}
	}
}
