package service

import (
	"context"
	"time"

	"github.com/hi4requency/fynstra/internal/fhi"
	"github.com/hi4requency/fynstra/internal/report"
	"github.com/hi4requency/fynstra/internal/roadmap"
	"github.com/hi4requency/fynstra/internal/utils/email"
)

// Report is a rendered text report plus its download name.
type Report struct {
	FileName string
	Text     string
}

// GenerateReport renders the caller's financial health report from the
// stored snapshot.
func (s *Service) GenerateReport(ctx context.Context) (*Report, error) {
	id, err := userID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindUserByID(id)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.repo.LoadSnapshot(id)
	if err != nil {
		return nil, err
	}
	result, err := fhi.Calculate(snapshot)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Report{
		FileName: report.FileName(now),
		Text:     report.Generate(user.Username, snapshot, result, now),
	}, nil
}

// EmailReport renders the caller's report and mails it to their account
// address.
func (s *Service) EmailReport(ctx context.Context, sender *email.Sender) error {
	id, err := userID(ctx)
	if err != nil {
		return err
	}

	user, err := s.repo.FindUserByID(id)
	if err != nil {
		return err
	}
	rep, err := s.GenerateReport(ctx)
	if err != nil {
		return err
	}

	return sender.SendReport(user.Email, user.Username, rep.FileName, rep.Text)
}

// SendMonthlyReminders mails every user whose goals still have open
// roadmap slots in the current month. Run by the cron scheduler on the
// first of the month; individual failures are logged and skipped.
func (s *Service) SendMonthlyReminders(sender *email.Sender) {
	users, err := s.repo.ListUsersWithSnapshots()
	if err != nil {
		s.log.Errorf("Reminder job: failed to list users: %v", err)
		return
	}

	now := time.Now().UTC()
	monthKey := roadmap.MonthKey(now)

	for _, user := range users {
		snapshot, err := s.repo.LoadSnapshot(user.ID)
		if err != nil {
			s.log.Errorf("Reminder job: failed to load snapshot for user %d: %v", user.ID, err)
			continue
		}

		for _, g := range s.goals.List(user.ID) {
			if g.Progress[monthKey] {
				continue // this month already contributed
			}
			schedule, err := roadmap.Build(g.GoalAmount, g.StartDate.Time, g.TargetDate.Time,
				snapshot.MonthlySavings, g.Progress)
			if err != nil || schedule.OpenSlots == 0 {
				continue
			}
			inGrid := false
			for _, m := range schedule.Months {
				if roadmap.MonthKey(m.Time) == monthKey {
					inGrid = true
					break
				}
			}
			if !inGrid {
				continue
			}
			if err := sender.SendSavingsReminder(user.Email, user.Username, g.Name,
				now, schedule.RequiredMonthly, schedule.OpenSlots); err != nil {
				s.log.Errorf("Reminder job: %v", err)
			}
		}
	}
}
