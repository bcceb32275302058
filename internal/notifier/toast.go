package notifier

import (
	"go.uber.org/zap"
	"sync"
	"time"
)

type toastNotifier struct {
	logger   *zap.SugaredLogger
	duration time.Duration

	mu     sync.Mutex
	active *Notification
	timer  *time.Timer
	// seq identifies the active toast so a stale timer can't expire its successor
	seq uint64
}

// NewToastNotifier creates a Notifier whose notifications expire after
// duration. A duration <= 0 keeps them until dismissed or replaced.
func NewToastNotifier(logger *zap.SugaredLogger, duration time.Duration) Notifier {
	return &toastNotifier{
		logger:   logger,
		duration: duration,
	}
}

func (t *toastNotifier) Notify(level Level, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopTimer()
	t.seq++
	t.active = &Notification{Level: level, Message: message, CreatedAt: time.Now()}

	if t.duration > 0 {
		id := t.seq
		t.timer = time.AfterFunc(t.duration, func() {
			t.expire(id)
		})
	}

	switch level {
	case LevelError:
		t.logger.Errorw("notification", "level", level, "message", message)
	default:
		t.logger.Infow("notification", "level", level, "message", message)
	}
}

func (t *toastNotifier) Active() (Notification, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return Notification{}, false
	}
	return *t.active, true
}

func (t *toastNotifier) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopTimer()
	t.active = nil
}

func (t *toastNotifier) expire(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.seq != id || t.active == nil {
		return
	}
	t.logger.Debugw("notification expired", "message", t.active.Message)
	t.active = nil
	t.timer = nil
}

// stopTimer must be called with mu held.
func (t *toastNotifier) stopTimer() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
