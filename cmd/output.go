package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/kimvanwyk/md410-2021-conv-common/pkg/registree"
	"github.com/shopspring/decimal"
)

// money formats an amount in rand with grouped thousands and cents.
func money(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	abs := d.Abs()
	fixed := abs.StringFixed(2)
	cents := fixed[strings.LastIndex(fixed, ".")+1:]
	return sign + "R" + humanize.Comma(abs.IntPart()) + "." + cents
}

func writeJSON(w io.Writer, v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bs))
	return err
}

// summaryLine is a one-line description of a registree for listings.
func summaryLine(s registree.Summary) string {
	status := "paid"
	if !s.PaidInFull {
		status = "owes " + money(s.Outstanding())
	}
	return fmt.Sprintf("%4d  %-35s %-25s %s",
		s.RegNum, s.FullName(), s.Club, status)
}

// summaryText is a full description of a registree.
func summaryText(s registree.Summary, pays []registree.Payment) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Registration %d: %s\n", s.RegNum, s.FullName())
	if s.Cell != "" {
		fmt.Fprintf(&sb, "  Cell:    %s\n", s.Cell)
	}
	if s.Email != "" {
		fmt.Fprintf(&sb, "  Email:   %s\n", s.Email)
	}
	if s.IsLion {
		club := s.Club
		if club == "" {
			club = "unknown"
		}
		fmt.Fprintf(&sb, "  Club:    %s\n", club)
	} else {
		sb.WriteString("  Partner program\n")
	}

	items := []struct {
		name string
		qty  int
		cost int
	}{
		{"Full registrations", s.FullRegs, registree.FullRegCost},
		{"Banquets", s.Banquets, registree.BanquetCost},
		{"Conventions", s.Conventions, registree.ConventionCost},
		{"Themes", s.Themes, registree.ThemeCost},
		{"Pins", s.Pins, registree.PinCost},
	}
	for _, v := range items {
		if v.qty == 0 {
			continue
		}
		total := decimal.NewFromInt(int64(v.qty * v.cost))
		fmt.Fprintf(&sb, "  %-20s %3d x R%-5d %12s\n",
			v.name, v.qty, v.cost, money(total))
	}
	fmt.Fprintf(&sb, "  %-34s %12s\n", "Owed", money(s.Owed))

	for _, v := range pays {
		fmt.Fprintf(&sb, "  Paid %-29s %12s\n",
			v.Timestamp.Format("2006-01-02 15:04"), money(v.Amount))
	}
	fmt.Fprintf(&sb, "  %-34s %12s\n", "Total paid", money(s.Payments))
	if s.PaidInFull {
		sb.WriteString("  Paid in full\n")
	} else {
		fmt.Fprintf(&sb, "  %-34s %12s\n", "Outstanding", money(s.Outstanding()))
	}
	return sb.String()
}

// payeeRecord is a CSV row of a prior year payee.
func payeeRecord(p registree.Payee) string {
	return gnfmt.ToCSV([]string{
		strconv.Itoa(p.RegNum), p.Name, p.Total.StringFixed(2),
	}, ',')
}
