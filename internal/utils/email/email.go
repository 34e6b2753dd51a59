package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/hi4requency/fynstra/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendSavingsReminder nudges the user about the current month of a goal
// roadmap and the amount still required per month.
func (s *Sender) SendSavingsReminder(to, username, goalName string, month time.Time, requiredMonthly float64, openSlots int) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Savings Reminder: %s", goalName)

	body := fmt.Sprintf(
		"Dear %s,\n\n", username,
	)
	body += fmt.Sprintf(
		"A new month has started on your savings roadmap for %q.\n"+
			"To stay on track, set aside %.2f for %s.\n"+
			"%d month(s) remain on your schedule.\n",
		goalName, requiredMonthly, month.Format("January 2006"), openSlots,
	)
	body += "\nOnce the money is set aside, mark the month as done in your Goal Tracker.\n"
	body += "\nBest regards,\nFynstra"
	e.Text = []byte(body)

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send reminder to %s: %v", to, err)
		return fmt.Errorf("failed to send reminder: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// SendReport delivers the generated financial health report.
func (s *Sender) SendReport(to, username, fileName, reportText string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Your Financial Health Report"

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your financial health report is attached as %s.\n"+
			"It covers your FHI score, the component breakdown, and suggested next steps.\n",
		username, fileName,
	)
	body += "\nBest regards,\nFynstra"
	e.Text = []byte(body)

	if _, err := e.Attach(strings.NewReader(reportText), fileName, "text/plain"); err != nil {
		return fmt.Errorf("failed to attach report: %w", err)
	}

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send report to %s: %v", to, err)
		return fmt.Errorf("failed to send report: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}
