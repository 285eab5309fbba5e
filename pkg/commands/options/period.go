package options

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/heatcal/pkg/calendar"
)

// PeriodOptions picks the displayed month or year.
type PeriodOptions struct {
	Month string
	Year  string
}

func AddPeriodArgs(cmd *cobra.Command, o *PeriodOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Show a month, example: --month=2024-11. Defaults to the current month.`)
	cmd.Flags().StringVarP(&o.Year, "year", "y", "",
		`Show a whole year, example: --year=2024.`)
}

// Period returns the requested period. The zero Period means none was given.
func (o *PeriodOptions) Period() (calendar.Period, error) {
	switch {
	case o.Month != "" && o.Year != "":
		return calendar.Period{}, errors.New("--month and --year are mutually exclusive")
	case o.Month != "":
		p, err := calendar.ParsePeriod(o.Month)
		if err != nil {
			return calendar.Period{}, err
		}
		if p.IsYear() {
			return calendar.Period{}, errors.New("--month wants YYYY-MM, use --year for a whole year")
		}
		return p, nil
	case o.Year != "":
		p, err := calendar.ParsePeriod(o.Year)
		if err != nil {
			return calendar.Period{}, err
		}
		if !p.IsYear() {
			return calendar.Period{}, errors.New("--year wants YYYY, use --month for a single month")
		}
		return p, nil
	}
	return calendar.Period{}, nil
}
