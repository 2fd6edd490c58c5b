package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclenote/internal/i18n"
	"github.com/terraincognita07/cyclenote/internal/services"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func newSummaryCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print predictions derived from the recorded dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case formatText, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unsupported format %q (want text, json or yaml)", format)
			}

			env, err := root.open(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.close()

			summary, err := env.summaries.Summarize(cmd.Context(), time.Now().In(env.cfg.Location))
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), format, summary, env.i18n, env.language)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}

func writeSummary(w io.Writer, format string, summary services.Summary, manager *i18n.Manager, language string) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(summary); err != nil {
			return err
		}
		return encoder.Close()
	default:
		_, err := io.WriteString(w, renderSummaryText(summary, manager, language))
		return err
	}
}

type summaryTextStyles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	warning lipgloss.Style
}

func newSummaryTextStyles() summaryTextStyles {
	return summaryTextStyles{
		title:   lipgloss.NewStyle().Bold(true).Underline(true),
		label:   lipgloss.NewStyle().Faint(true),
		value:   lipgloss.NewStyle().Bold(true),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

func renderSummaryText(summary services.Summary, manager *i18n.Manager, language string) string {
	styles := newSummaryTextStyles()
	t := func(key string) string { return manager.Translate(language, key) }

	var b strings.Builder
	line := func(label string, value string) {
		fmt.Fprintf(&b, "%s: %s\n", styles.label.Render(label), styles.value.Render(value))
	}

	fmt.Fprintln(&b, styles.title.Render(t("app.title")))
	line(t("summary.today"), summary.Today)

	if len(summary.Dates) == 0 {
		fmt.Fprintln(&b, t("summary.no_dates"))
	} else {
		line(t("summary.recorded_dates"), strings.Join(summary.Dates, ", "))
	}

	if summary.PredictedNext == nil || summary.AverageCycle == nil {
		fmt.Fprintln(&b, t("summary.need_more"))
	} else {
		line(t("summary.predicted_next"), *summary.PredictedNext)
		line(t("summary.average_cycle"), manager.Translatef(language, "summary.days", *summary.AverageCycle))
	}

	if summary.Windows != nil {
		for _, window := range []struct {
			key   string
			value services.DateRange
		}{
			{key: "summary.safe_before", value: summary.Windows.SafeBefore},
			{key: "summary.fertile", value: summary.Windows.Fertile},
			{key: "summary.safe_after", value: summary.Windows.SafeAfter},
		} {
			start, end := window.value.Strings()
			line(t(window.key), manager.Translatef(language, "summary.range", start, end))
		}
		if summary.Windows.Degenerate {
			fmt.Fprintln(&b, styles.warning.Render(t("summary.degenerate")))
		}
	}

	if summary.Alert != nil {
		fmt.Fprintln(&b, styles.warning.Render(manager.Translatef(language, "alert."+string(summary.Alert.Kind), summary.Alert.Days)))
	}

	if len(summary.Chart.Values) > 0 {
		values := make([]string, len(summary.Chart.Values))
		for i, value := range summary.Chart.Values {
			values[i] = strconv.Itoa(value)
		}
		line(t("summary.chart_title"), strings.Join(values, ", "))
	}
	return b.String()
}
