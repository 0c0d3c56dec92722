/*
main.go - Payroll run command

PURPOSE:
  Reads one input document of already-fetched facts, resolves the pay
  period, computes every payslip and writes the payroll report as JSON.
  Skipped employees are logged and listed in the output; they never stop
  the run.

PERIOD SELECTION:
  -start/-end given:  validated against the pay cadence. A rejected period
                      prints the reason and the nearest valid period, and
                      exits with status 2.
  otherwise:          the canonical period ending at -anchor, or at the
                      document's last_payroll_date.

COMMAND-LINE FLAGS:
  -input    path to the input document ("-" for stdin, default)
  -start    period start, 2006-01-02
  -end      period end, 2006-01-02
  -cut      first | second (default: derived from the end date)
  -anchor   last payroll date, overrides the document
  -payslips include full payslips in the output

ENVIRONMENT (.env supported):
  PAYROLL_WORKERS, PAYROLL_HOURS_PER_DAY, PAYROLL_LOG_LEVEL, PAYROLL_LOG_FORMAT

EXAMPLES:
  ./payroll -input run.json
  ./payroll -input run.json -start 2025-04-28 -end 2025-05-10 -cut first
*/
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/itselaivy/Capstone-AutoPayroll-sub000/internal/config"
	"github.com/itselaivy/Capstone-AutoPayroll-sub000/internal/input"
	"github.com/itselaivy/Capstone-AutoPayroll-sub000/payroll"
	"github.com/sirupsen/logrus"
)

type output struct {
	Report   payroll.Report    `json:"report"`
	Skipped  []skipped         `json:"skipped"`
	Payslips []payroll.Payslip `json:"payslips,omitempty"`
}

type skipped struct {
	EmployeeID payroll.EmployeeID `json:"employee_id"`
	Reason     string             `json:"reason"`
}

func main() {
	inputPath := flag.String("input", "-", "input document path, - for stdin")
	start := flag.String("start", "", "period start (2006-01-02)")
	end := flag.String("end", "", "period end (2006-01-02)")
	cut := flag.String("cut", "", "first or second")
	anchor := flag.String("anchor", "", "last payroll date (2006-01-02)")
	withPayslips := flag.Bool("payslips", false, "include payslips in the output")
	flag.Parse()

	cfg := config.Load()
	log := cfg.Logger()

	doc, err := readDocument(*inputPath)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	lastPayroll := doc.Anchor()
	if *anchor != "" {
		if lastPayroll, err = payroll.ParseDate(*anchor); err != nil {
			log.Fatalf("Invalid -anchor: %v", err)
		}
	}

	period, err := selectPeriod(lastPayroll, *start, *end, *cut, doc.Period)
	if err != nil {
		var pe *payroll.PeriodError
		if errors.As(err, &pe) {
			log.WithField("kind", pe.Kind).Error(err)
			os.Exit(2)
		}
		log.Fatal(err)
	}

	engine := payroll.NewEngine()
	engine.Workers = cfg.Workers
	engine.HoursPerDay = cfg.HoursPerDay
	engine.Logger = log

	employees, facts := doc.EmployeeSet()
	run := payroll.NewRun(period)
	log.WithFields(logrus.Fields{
		"run_id":    run.ID.String(),
		"period":    period.String(),
		"employees": len(employees),
	}).Info("Starting payroll run")

	result := engine.AssembleBulk(run, employees, facts, doc.HolidayFacts())

	out := output{Report: payroll.BuildReport(run, result.Payslips), Skipped: []skipped{}}
	for _, w := range result.Warnings {
		out.Skipped = append(out.Skipped, skipped{EmployeeID: w.EmployeeID, Reason: w.Err.Error()})
	}
	if *withPayslips {
		out.Payslips = result.Payslips
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}

func readDocument(path string) (*input.Document, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return input.Decode(r)
}

// selectPeriod prefers flags, then the document's period, then the canonical
// period at the anchor.
func selectPeriod(lastPayroll payroll.Date, start, end, cut string, fromDoc *input.PeriodDTO) (payroll.PayPeriod, error) {
	if start == "" && end == "" && fromDoc != nil {
		start, end = fromDoc.Start, fromDoc.End
		if cut == "" {
			cut = fromDoc.Cut
		}
	}

	if start == "" && end == "" {
		if lastPayroll.IsZero() {
			return payroll.PayPeriod{}, errors.New("no period given: pass -start/-end or a last payroll date")
		}
		return payroll.ResolveCanonicalPeriod(lastPayroll), nil
	}

	s, err := payroll.ParseDate(start)
	if err != nil {
		return payroll.PayPeriod{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := payroll.ParseDate(end)
	if err != nil {
		return payroll.PayPeriod{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	c := payroll.Cut(cut)
	if cut == "" {
		c = payroll.CutFor(e)
	}
	return payroll.NewResolver(lastPayroll).Validate(s, e, c)
}
