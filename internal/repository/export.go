package repository

import (
	"fmt"
	"io"
	"time"

	"github.com/securepass/securepass-go/internal/model"
)

// CSVHeader is the first line of a history export.
const CSVHeader = "Password,Length,Strength,Date"

// WriteHistoryCSV writes entries as CSV. Fields are written verbatim, so a
// password containing a comma produces an extra column.
func WriteHistoryCSV(w io.Writer, entries []model.HistoryEntry) error {
	if _, err := fmt.Fprintln(w, CSVHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s,%d,%s,%s\n", e.Password, e.Length, e.Strength, e.Date); err != nil {
			return err
		}
	}
	return nil
}

// WritePasswordReport writes a plain text summary of a single password.
func WritePasswordReport(w io.Writer, p model.GeneratedPassword) error {
	_, err := fmt.Fprintf(w,
		"Generated Password: %s\nGenerated on: %s\nLength: %d\nStrength: %s\nEntropy: %.2f bits\n",
		p.Password,
		p.CreatedAt.In(time.Local).Format(model.HistoryDateLayout),
		p.Length,
		p.Strength,
		p.EntropyBits,
	)
	return err
}
