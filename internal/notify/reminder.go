package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"drivelog/internal/drivelog/domain"
	"drivelog/internal/shared/mq"
	"drivelog/internal/shared/util"
)

const reminderQueue = "drive_session_reminders"

// ReminderScheduler watches session events and nudges drivers who forget to
// end a session: when a drive is still in progress after the configured delay,
// a push message is enqueued. Completing, updating away, or deleting the
// session cancels the pending reminder.
type ReminderScheduler struct {
	sessions  domain.SessionRepository
	pub       *mq.Publisher
	ch        *amqp091.Channel
	pushQueue string
	delay     time.Duration
	logger    *util.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewReminderScheduler(
	sessions domain.SessionRepository,
	pub *mq.Publisher,
	ch *amqp091.Channel,
	pushQueue string,
	delay time.Duration,
	logger *util.Logger,
) *ReminderScheduler {
	return &ReminderScheduler{
		sessions:  sessions,
		pub:       pub,
		ch:        ch,
		pushQueue: pushQueue,
		delay:     delay,
		logger:    logger,
		timers:    make(map[string]*time.Timer),
	}
}

// Start binds a durable queue to every session.* event and consumes it in a
// background goroutine.
func (s *ReminderScheduler) Start(ctx context.Context) error {
	if err := s.ch.ExchangeDeclare(mq.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	queue, err := s.ch.QueueDeclare(reminderQueue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare reminder queue: %w", err)
	}

	if err := s.ch.QueueBind(queue.Name, "session.*", mq.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind reminder queue: %w", err)
	}

	deliveries, err := s.ch.Consume(queue.Name, "reminder-scheduler", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume reminder queue: %w", err)
	}

	go s.run(ctx, deliveries)
	return nil
}

func (s *ReminderScheduler) run(ctx context.Context, deliveries <-chan amqp091.Delivery) {
	instance := "ReminderScheduler"
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				s.logger.Warn(instance, "delivery channel closed")
				return
			}

			var event domain.SessionEvent
			if err := json.Unmarshal(delivery.Body, &event); err != nil {
				s.logger.Error(instance, fmt.Errorf("failed to decode event: %w", err))
				continue
			}

			switch event.Type {
			case domain.EventSessionStarted:
				s.schedule(event.SessionID)
			case domain.EventSessionCompleted, domain.EventSessionDeleted:
				s.cancel(event.SessionID)
			}
		}
	}
}

func (s *ReminderScheduler) schedule(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[sessionID]; ok {
		timer.Stop()
	}
	s.timers[sessionID] = time.AfterFunc(s.delay, func() {
		s.remind(sessionID)
	})
	s.logger.Info("ReminderScheduler", fmt.Sprintf("reminder scheduled [session=%s, delay=%s]", sessionID, s.delay))
}

func (s *ReminderScheduler) cancel(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[sessionID]; ok {
		timer.Stop()
		delete(s.timers, sessionID)
	}
}

// remind re-checks the session before sending: a drive that ended or was
// deleted while the timer ran produces no notification.
func (s *ReminderScheduler) remind(sessionID string) {
	instance := "ReminderScheduler.remind"

	s.mu.Lock()
	delete(s.timers, sessionID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		// Deleted sessions are expected here; nothing to send.
		return
	}
	if session.Completed() {
		return
	}

	msg := PushMessage{
		UserID: session.UserID,
		Title:  "Drive in Progress",
		Body: fmt.Sprintf("You've been driving for over %d minutes. Don't forget to end your session!",
			int(s.delay.Minutes())),
		URL:                "/",
		Tag:                "drive-reminder-" + session.ID,
		RequireInteraction: true,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to marshal push message: %w", err))
		return
	}

	if err := s.pub.PublishToQueue(ctx, s.pushQueue, body); err != nil {
		s.logger.Error(instance, fmt.Errorf("failed to enqueue push message: %w", err))
		return
	}
	s.logger.OK(instance, fmt.Sprintf("reminder enqueued [session=%s, user=%s]", session.ID, session.UserID))
}
