package batch

import (
	"strings"

	"atsopt/internal/domain"
)

// Prompter collects batch entries from a user.
type Prompter interface {
	Input(title, placeholder string) (string, error)
	Paste(title string) (string, error)
	Confirm(question string) (bool, error)
}

// Create asks for jobs until the user declines to add another. Entries
// without a description are skipped.
func Create(p Prompter) ([]domain.BatchJob, error) {
	var jobs []domain.BatchJob
	for {
		company, err := p.Input("Company name", "Acme Corp")
		if err != nil {
			return jobs, err
		}
		position, err := p.Input("Position", "Backend Engineer")
		if err != nil {
			return jobs, err
		}
		description, err := p.Paste("Paste the job description (Ctrl+D or Esc to finish)")
		if err != nil {
			return jobs, err
		}
		if strings.TrimSpace(description) != "" {
			jobs = append(jobs, domain.NewBatchJob(strings.TrimSpace(company), strings.TrimSpace(position), description))
		}
		more, err := p.Confirm("Add another job?")
		if err != nil || !more {
			return jobs, err
		}
	}
}
