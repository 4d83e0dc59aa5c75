package scheduler

import (
	"log"
	"time"
)

// Store is the subset of the campaign repository the runner needs.
type Store interface {
	FindDueCampaigns(now time.Time) ([]int, error)
	FinalizeCampaign(id int, now time.Time) (bool, error)
}

// Report summarises one runner invocation.
type Report struct {
	Processed int
	Failed    int
	Skipped   int
}

// Runner promotes due scheduled campaigns to sent. It is a single-shot batch
// unit: an external trigger (cron) invokes the binary, the binary invokes Run
// once and exits.
type Runner struct {
	Store Store
	Now   func() time.Time
	Log   *log.Logger
}

// Run discovers the due set once and finalizes each campaign independently.
// A failure in one campaign is logged and counted, never fatal to the run;
// the error return is reserved for the initial due-campaign query.
func (r *Runner) Run() (Report, error) {
	now := r.Now()

	ids, err := r.Store.FindDueCampaigns(now)
	if err != nil {
		return Report{}, err
	}
	if len(ids) == 0 {
		r.Log.Println("No scheduled campaigns are due to be sent at this time.")
		return Report{}, nil
	}
	r.Log.Printf("Found %d campaign(s) due for sending.", len(ids))

	var report Report
	for _, id := range ids {
		finalized, err := r.Store.FinalizeCampaign(id, now)
		if err != nil {
			r.Log.Printf("Error finalizing campaign ID %d: %v", id, err)
			report.Failed++
			continue
		}
		if !finalized {
			// Another run got there first; the conditional update matched nothing.
			r.Log.Printf("Campaign ID %d was no longer scheduled, skipped.", id)
			report.Skipped++
			continue
		}
		r.Log.Printf("Campaign ID %d successfully updated to 'sent'.", id)
		report.Processed++
	}
	return report, nil
}
