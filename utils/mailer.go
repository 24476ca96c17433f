package utils

import (
	"log/slog"
	"sync"
	"time"

	"gopkg.in/gomail.v2"
)

const (
	mailQueueSize    = 64
	mailMaxAttempts  = 3
	mailRetryBackoff = 2 * time.Second
)

type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers notifications on a background worker so requests never
// block on SMTP. Delivery is best effort: a few retries, then the failure is
// logged and the mail dropped.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	queue  chan Mail
	log    *slog.Logger
	wg     sync.WaitGroup
}

func NewMailer(host string, port int, username, password, from string, log *slog.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		queue:  make(chan Mail, mailQueueSize),
		log:    log,
	}
}

func (m *Mailer) Start() {
	m.wg.Add(1)
	go m.worker()
}

// Enqueue hands a mail to the worker without blocking. When the queue is
// full the mail is dropped and the drop logged.
func (m *Mailer) Enqueue(mail Mail) {
	select {
	case m.queue <- mail:
	default:
		m.log.Warn("mail queue full, dropping notification", "to", mail.To, "subject", mail.Subject)
	}
}

// Close stops accepting mail and waits for the worker to drain the queue.
func (m *Mailer) Close() {
	close(m.queue)
	m.wg.Wait()
}

func (m *Mailer) worker() {
	defer m.wg.Done()
	for mail := range m.queue {
		m.deliver(mail)
	}
}

func (m *Mailer) deliver(mail Mail) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/html", mail.Body)

	var err error
	for attempt := 1; attempt <= mailMaxAttempts; attempt++ {
		if err = m.dialer.DialAndSend(msg); err == nil {
			m.log.Info("mail delivered", "to", mail.To, "subject", mail.Subject, "attempt", attempt)
			return
		}
		m.log.Warn("mail delivery failed", "to", mail.To, "attempt", attempt, "err", err)
		time.Sleep(time.Duration(attempt) * mailRetryBackoff)
	}
	m.log.Error("mail dropped after retries", "to", mail.To, "subject", mail.Subject, "err", err)
}
