package export

import (
	"fmt"
	"io"
	"strings"

	"trading-journal-go/internal/models"
)

// FormatTradeOrg renders a trade as an Org-mode entry. Structured fields go
// into a PROPERTIES drawer; notes become the body of a Review section.
func FormatTradeOrg(t models.Trade) string {
	var b strings.Builder

	fmt.Fprintf(&b, "** Trade: %s %s (#%d)", t.Symbol, t.Direction, t.ID)
	if tags := orgTags(t.Tags); len(tags) > 0 {
		fmt.Fprintf(&b, " :%s:", strings.Join(tags, ":"))
	}
	b.WriteString("\n")

	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":TRADE_ID: %d\n", t.ID)
	fmt.Fprintf(&b, ":SYMBOL: %s\n", t.Symbol)
	fmt.Fprintf(&b, ":DIRECTION: %s\n", t.Direction)
	fmt.Fprintf(&b, ":LOTS: %s\n", num(t.Lots))
	fmt.Fprintf(&b, ":ENTRY_PRICE: %s\n", num(t.EntryPrice))
	property(&b, "EXIT_PRICE", optNum(t.ExitPrice))
	property(&b, "ENTRY_TIME", optTime(t.EntryTime))
	property(&b, "EXIT_TIME", optTime(t.ExitTime))
	if t.Profit != nil {
		fmt.Fprintf(&b, ":PROFIT: %.2f\n", *t.Profit)
	}
	if t.ExpectedProfit != nil {
		fmt.Fprintf(&b, ":EXPECTED_PROFIT: %.2f\n", *t.ExpectedProfit)
	}
	property(&b, "RESULT", string(t.Result))
	property(&b, "METHOD_ID", t.MethodKey())
	property(&b, "METHOD", t.MethodName)
	b.WriteString(":END:\n\n")

	b.WriteString("*** Review\n")
	if notes := strings.TrimSpace(t.Notes); notes != "" {
		b.WriteString(notes)
		b.WriteString("\n")
	} else {
		b.WriteString("- \n")
	}
	return b.String()
}

// WriteOrg writes every trade as an Org entry, separated by blank lines.
func WriteOrg(w io.Writer, trades []models.Trade) error {
	for i, t := range trades {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, FormatTradeOrg(t)); err != nil {
			return fmt.Errorf("write trade %d: %w", t.ID, err)
		}
	}
	return nil
}

func property(b *strings.Builder, name, value string) {
	if value != "" {
		fmt.Fprintf(b, ":%s: %s\n", name, value)
	}
}

// Org tags cannot contain spaces or colons.
func orgTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	r := strings.NewReplacer(" ", "_", ":", "_")
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, r.Replace(tag))
		}
	}
	return out
}
