package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/httpkernel/core/email"
	"github.com/dmitrymomot/httpkernel/core/event"
	"github.com/dmitrymomot/httpkernel/core/exception"
	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/logger"
	"github.com/dmitrymomot/httpkernel/core/storage"
)

// PriorityAlert places the notifier after exception logging and before the
// fallback renderer.
const PriorityAlert = 1024

// Tag is attached to every alert message.
const Tag = "exception-alert"

const (
	defaultCooldown = 5 * time.Minute
	defaultTimeout  = 10 * time.Second
)

// Config configures a Notifier.
type Config struct {
	Sender email.EmailSender
	To     string
	// AppName prefixes the subject.
	AppName string
	// MinSeverity defaults to critical.
	MinSeverity logger.Severity
	Levels      exception.LevelTable
	Policy      exception.Policy
	// Cooldown suppresses repeats of the same error. Zero means five
	// minutes, a negative value disables suppression.
	Cooldown time.Duration
	// Timeout bounds one delivery. Zero means ten seconds.
	Timeout time.Duration
	// Archive, when set, receives a JSON report for every alerted error,
	// including the ones whose email was suppressed.
	Archive storage.Store
	Logger  *slog.Logger
}

// Notifier emails uncaught errors.
type Notifier struct {
	sender      email.EmailSender
	to          string
	appName     string
	minSeverity logger.Severity
	classifier  exception.Classifier
	cooldown    time.Duration
	timeout     time.Duration
	archive     storage.Store
	logger      *slog.Logger
	now         func() time.Time

	mu   sync.Mutex
	sent map[string]time.Time
	wg   sync.WaitGroup
}

// New creates a Notifier.
func New(cfg Config) (*Notifier, error) {
	if cfg.Sender == nil {
		return nil, ErrNoSender
	}
	if !email.IsValidAddress(cfg.To) {
		return nil, ErrNoRecipient
	}

	n := &Notifier{
		sender:      cfg.Sender,
		to:          cfg.To,
		appName:     cfg.AppName,
		minSeverity: cfg.MinSeverity,
		classifier:  exception.NewClassifier(cfg.Levels, cfg.Policy),
		cooldown:    cfg.Cooldown,
		timeout:     cfg.Timeout,
		archive:     cfg.Archive,
		logger:      cfg.Logger,
		now:         time.Now,
		sent:        make(map[string]time.Time),
	}
	if n.minSeverity == 0 {
		n.minSeverity = logger.SeverityCritical
	}
	if n.cooldown == 0 {
		n.cooldown = defaultCooldown
	}
	if n.timeout <= 0 {
		n.timeout = defaultTimeout
	}
	if n.logger == nil {
		n.logger = logger.Discard()
	}
	return n, nil
}

// SubscribedEvents implements event.Subscriber.
func (n *Notifier) SubscribedEvents() map[string][]event.Binding {
	return map[string][]event.Binding{
		kernel.EventException: {event.Bind(n.OnKernelException, PriorityAlert)},
	}
}

// OnKernelException schedules an alert for the error of evt when its
// severity reaches the threshold. It never returns an error.
func (n *Notifier) OnKernelException(ctx context.Context, evt *kernel.ExceptionEvent) error {
	err := evt.Err()
	sev := n.classifier.Classify(err)
	if sev < n.minSeverity {
		return nil
	}

	flat := exception.Flatten(err)
	notify := n.acquire(fingerprint(flat))
	if !notify {
		n.logger.DebugContext(ctx, "alert suppressed",
			logger.Component("alert"), slog.String("type", flat.Type))
		if n.archive == nil {
			return nil
		}
	}

	req := evt.Request()
	r := report{
		AppName:   n.appName,
		Severity:  sev,
		Method:    req.Method(),
		Path:      req.Path(),
		RequestID: req.ID(),
		Time:      n.now(),
		Error:     flat,
	}

	n.wg.Add(1)
	go n.deliver(context.WithoutCancel(ctx), r, notify)
	return nil
}

// Wait blocks until all scheduled deliveries have finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) deliver(ctx context.Context, r report, notify bool) {
	defer n.wg.Done()

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if n.archive != nil {
		r.ReportKey = r.key()
		if err := n.store(ctx, r); err != nil {
			n.logger.ErrorContext(ctx, "archive incident report",
				logger.Component("alert"), logger.Error(err), slog.String("key", r.ReportKey))
			r.ReportKey = ""
		}
	}
	if !notify {
		return
	}

	body, err := renderBody(ctx, r)
	if err != nil {
		n.logger.ErrorContext(ctx, "render alert", logger.Component("alert"), logger.Error(err))
		return
	}
	params := email.SendEmailParams{
		SendTo:   n.to,
		Subject:  n.subject(r.Severity, r.Error),
		BodyHTML: body,
		Tag:      Tag,
	}
	if err := n.sender.SendEmail(ctx, params); err != nil {
		n.logger.ErrorContext(ctx, "send alert",
			logger.Component("alert"), logger.Error(err), slog.String("subject", params.Subject))
		return
	}
	n.logger.InfoContext(ctx, "alert sent",
		logger.Component("alert"), slog.String("subject", params.Subject))
}

func (n *Notifier) store(ctx context.Context, r report) error {
	body, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return n.archive.Put(ctx, r.ReportKey, body, "application/json")
}

// acquire reports whether an alert for key may be sent now and records it.
func (n *Notifier) acquire(key string) bool {
	if n.cooldown < 0 {
		return true
	}

	now := n.now()
	n.mu.Lock()
	defer n.mu.Unlock()

	if last, ok := n.sent[key]; ok && now.Sub(last) < n.cooldown {
		return false
	}
	for k, t := range n.sent {
		if now.Sub(t) >= n.cooldown {
			delete(n.sent, k)
		}
	}
	n.sent[key] = now
	return true
}

func (n *Notifier) subject(sev logger.Severity, flat *exception.FlattenedError) string {
	var b strings.Builder
	if n.appName != "" {
		fmt.Fprintf(&b, "[%s] ", n.appName)
	}
	fmt.Fprintf(&b, "%s: %s", strings.ToUpper(sev.String()), firstLine(flat.Message))
	return truncate(b.String(), 200)
}

func fingerprint(flat *exception.FlattenedError) string {
	return flat.Type + "\x00" + flat.Message + "\x00" + flat.Location()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
