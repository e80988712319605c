package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/vatly/vatly/internal/llm"
	"github.com/vatly/vatly/internal/store"
	"github.com/vatly/vatly/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the model calls made for quizzes and chat",
	Long: `Every quiz generation batch and every tutor chat turn is recorded in the
event database with its token usage. These commands read that log.`,
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded model calls, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, failedOnly, err := listOptions(cmd)
		if err != nil {
			return err
		}
		limit := opts.Limit
		if failedOnly {
			// Failures are filtered after the query, so page afterwards.
			opts.Limit = 0
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failedOnly {
			events = failedEvents(events)
			if limit > 0 && len(events) > limit {
				events = events[:limit]
			}
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No model calls recorded.")
			return nil
		}
		_, err = lipgloss.Fprintln(out, eventTable(events))
		return err
	},
}

var llmShowCmd = &cobra.Command{
	Use:     "show <id>",
	Aliases: []string{"view"},
	Short:   "Show one model call with its prompt and reply",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmUsageCmd = &cobra.Command{
	Use:     "usage",
	Aliases: []string{"stats"},
	Short:   "Summarize tokens and estimated cost per purpose",
	RunE: func(cmd *cobra.Command, args []string) error {
		since, _ := cmd.Flags().GetDuration("since")
		byModel, _ := cmd.Flags().GetBool("by-model")

		var from time.Time
		if since > 0 {
			from = time.Now().Add(-since)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.EventRepo().LLMUsage(cmd.Context(), from)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, "No model usage recorded.")
			return nil
		}
		summaries := summarizeUsage(rows)
		if _, err := lipgloss.Fprintln(out, usageTable(summaries)); err != nil {
			return err
		}
		if byModel {
			if _, err := lipgloss.Fprintln(out, modelTable(rows)); err != nil {
				return err
			}
		}
		if missing := unpricedModels(rows); len(missing) > 0 {
			fmt.Fprintf(out, "No pricing for %s; their cost is left out.\n", strings.Join(missing, ", "))
		}
		return nil
	},
}

// listOptions reads the list flags. An unknown --purpose is rejected so a
// typo does not silently print nothing.
func listOptions(cmd *cobra.Command) (store.QueryOpts, bool, error) {
	limit, _ := cmd.Flags().GetInt("limit")
	purpose, _ := cmd.Flags().GetString("purpose")
	since, _ := cmd.Flags().GetDuration("since")
	after, _ := cmd.Flags().GetInt64("after")
	failed, _ := cmd.Flags().GetBool("failed")

	if purpose != "" && purpose != llm.PurposeUnknown && !llm.KnownPurpose(purpose) {
		return store.QueryOpts{}, false, fmt.Errorf("unknown purpose %q (want one of: %s)",
			purpose, strings.Join(llm.Purposes(), ", "))
	}
	opts := store.QueryOpts{Limit: limit, Purpose: purpose, After: after}
	if since > 0 {
		opts.From = time.Now().Add(-since)
	}
	return opts, failed, nil
}

func failedEvents(events []store.LLMRequestEvent) []store.LLMRequestEvent {
	var out []store.LLMRequestEvent
	for _, e := range events {
		if !e.Success {
			out = append(out, e)
		}
	}
	return out
}

func newTable(headers ...string) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

func eventTable(events []store.LLMRequestEvent) *table.Table {
	t := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		t.Row(
			strconv.FormatInt(e.ID, 10),
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Purpose,
			truncate(e.Model, 28),
			strconv.Itoa(e.InputTokens),
			strconv.Itoa(e.OutputTokens),
			strconv.FormatInt(e.LatencyMs, 10),
			ok,
		)
	}
	return t
}

// printEvent writes the event header, then the prompt and the reply. Quiz
// replies are indented JSON; chat replies are unwrapped to their text.
func printEvent(w io.Writer, e *store.LLMRequestEvent) {
	fmt.Fprintf(w, "Event %d · %s · %s\n", e.ID, e.Purpose, e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Model:   %s (%s)\n", e.Model, e.Provider)
	fmt.Fprintf(w, "Tokens:  %d in, %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "Latency: %dms\n", e.LatencyMs)
	if e.Success {
		fmt.Fprintln(w, "Result:  ok")
	} else {
		fmt.Fprintf(w, "Result:  failed: %s\n", e.ErrorMessage)
	}

	section(w, "Prompt", e.RequestBody)
	section(w, "Reply", replyText(e.Purpose, e.ResponseBody))
}

func section(w io.Writer, title, body string) {
	fmt.Fprintf(w, "\n── %s %s\n", title, strings.Repeat("─", max(0, 56-len(title))))
	if strings.TrimSpace(body) == "" {
		fmt.Fprintln(w, "(empty)")
		return
	}
	fmt.Fprintln(w, strings.TrimRight(body, "\n"))
}

func replyText(purpose, body string) string {
	switch purpose {
	case llm.PurposeChat:
		var text string
		if err := json.Unmarshal([]byte(body), &text); err == nil {
			return text
		}
	case llm.PurposeQuizGen:
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(body), "", "  "); err == nil {
			return buf.String()
		}
	}
	return body
}

// purposeSummary totals one purpose across models.
type purposeSummary struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
	CostUSD      float64
	Partial      bool // some model had no pricing
}

// summarizeUsage folds per-model rows into per-purpose totals. Known
// purposes come first in their usual order.
func summarizeUsage(rows []store.UsageRow) []purposeSummary {
	index := make(map[string]int)
	var out []purposeSummary
	var latency []int64 // latency-weighted sums per summary

	for _, p := range llm.Purposes() {
		index[p] = len(out)
		out = append(out, purposeSummary{Purpose: p})
		latency = append(latency, 0)
	}
	for _, r := range rows {
		i, ok := index[r.Purpose]
		if !ok {
			i = len(out)
			index[r.Purpose] = i
			out = append(out, purposeSummary{Purpose: r.Purpose})
			latency = append(latency, 0)
		}
		s := &out[i]
		s.Calls += r.Calls
		s.Failures += r.Failures
		s.InputTokens += r.InputTokens
		s.OutputTokens += r.OutputTokens
		latency[i] += r.AvgLatencyMs * int64(r.Calls)
		if c := llm.LookupCost(r.Model); c != nil {
			s.CostUSD += c.Cost(r.InputTokens, r.OutputTokens)
		} else {
			s.Partial = true
		}
	}

	kept := out[:0]
	for i, s := range out {
		if s.Calls == 0 {
			continue
		}
		s.AvgLatencyMs = latency[i] / int64(s.Calls)
		kept = append(kept, s)
	}
	return kept
}

func usageTable(summaries []purposeSummary) *table.Table {
	t := newTable("Purpose", "Calls", "Failed", "Input", "Output", "Avg ms", "Cost")
	var total purposeSummary
	for _, s := range summaries {
		t.Row(s.Purpose, strconv.Itoa(s.Calls), strconv.Itoa(s.Failures),
			strconv.Itoa(s.InputTokens), strconv.Itoa(s.OutputTokens),
			strconv.FormatInt(s.AvgLatencyMs, 10), costLabel(s.CostUSD, s.Partial))
		total.Calls += s.Calls
		total.Failures += s.Failures
		total.InputTokens += s.InputTokens
		total.OutputTokens += s.OutputTokens
		total.CostUSD += s.CostUSD
		total.Partial = total.Partial || s.Partial
	}
	t.Row("TOTAL", strconv.Itoa(total.Calls), strconv.Itoa(total.Failures),
		strconv.Itoa(total.InputTokens), strconv.Itoa(total.OutputTokens),
		"", costLabel(total.CostUSD, total.Partial))
	return t
}

func modelTable(rows []store.UsageRow) *table.Table {
	t := newTable("Purpose", "Model", "Calls", "Input", "Output", "Cost")
	for _, r := range rows {
		cost := "?"
		if c := llm.LookupCost(r.Model); c != nil {
			cost = formatCost(c.Cost(r.InputTokens, r.OutputTokens))
		}
		t.Row(r.Purpose, truncate(r.Model, 32), strconv.Itoa(r.Calls),
			strconv.Itoa(r.InputTokens), strconv.Itoa(r.OutputTokens), cost)
	}
	return t
}

func unpricedModels(rows []store.UsageRow) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		if llm.LookupCost(r.Model) == nil && !seen[r.Model] {
			seen[r.Model] = true
			out = append(out, r.Model)
		}
	}
	return out
}

func costLabel(usd float64, partial bool) string {
	s := formatCost(usd)
	if partial {
		s += "+"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only calls made for this purpose ("+strings.Join(llm.Purposes(), ", ")+")")
	llmListCmd.Flags().Duration("since", 0, "Only calls newer than this (e.g. 24h)")
	llmListCmd.Flags().Int64("after", 0, "Only calls with an id above this one")
	llmListCmd.Flags().Bool("failed", false, "Only failed calls")

	llmUsageCmd.Flags().Duration("since", 0, "Only count calls newer than this (e.g. 168h)")
	llmUsageCmd.Flags().Bool("by-model", false, "Also break usage down per model")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmShowCmd)
	llmCmd.AddCommand(llmUsageCmd)
}
