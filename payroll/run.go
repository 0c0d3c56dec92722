package payroll

import (
	"time"

	"github.com/google/uuid"
)

// Run identifies one payroll computation. Re-running a period produces a new
// Run and new payslips; earlier payslips are never touched.
type Run struct {
	ID          uuid.UUID
	Period      PayPeriod
	GeneratedAt time.Time
}

func NewRun(period PayPeriod) Run {
	return Run{ID: uuid.New(), Period: period, GeneratedAt: time.Now().UTC()}
}
