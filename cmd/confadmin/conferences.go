package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"confadmin/config"
	"confadmin/internal/domain"
	"confadmin/internal/services"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var conferencesCmd = &cobra.Command{
	Use:   "conferences",
	Short: "Inspect conferences held by the backend",
}

var conferencesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conferences",
	Long: `Fetch every conference from the backend and print it.

Output formats:
  table  one line per conference with its selection flags (default)
  json   the conferences as the backend returns them, days sorted
  yaml   same as json, as YAML

Example:
  confadmin conferences list -o yaml`,
	RunE: runConferencesList,
}

func init() {
	rootCmd.AddCommand(conferencesCmd)
	conferencesCmd.AddCommand(conferencesListCmd)
	conferencesListCmd.Flags().StringP("output", "o", "table", "output format: table, json or yaml")
}

func runConferencesList(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("output")
	if !validFormat(format) {
		return fmt.Errorf("unknown output format %q", format)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := slog.New(slog.DiscardHandler)

	conferenceBackend, err := newBackend(cfg, logger)
	if err != nil {
		return err
	}
	store := services.NewConferenceStore(conferenceBackend, services.ConferenceStoreOptions{
		Logger:  logger,
		Timeout: cfg.BackendTimeout,
	})
	confs, err := store.GetAllConferences(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch conferences: %w", err)
	}
	return writeConferences(cmd.OutOrStdout(), format, confs)
}

func validFormat(format string) bool {
	switch format {
	case "table", "json", "yaml":
		return true
	}
	return false
}

// yamlConference mirrors domain.Conference with YAML keys matching the JSON ones.
type yamlConference struct {
	ID         string    `yaml:"_id,omitempty"`
	Title      string    `yaml:"title"`
	Start      string    `yaml:"start"`
	End        string    `yaml:"end"`
	LastActive bool      `yaml:"lastActive"`
	Default    bool      `yaml:"default"`
	Days       []yamlDay `yaml:"days,omitempty"`
	Rooms      []string  `yaml:"rooms,omitempty"`
}

type yamlDay struct {
	Date      string     `yaml:"date"`
	TimeSlots []yamlSlot `yaml:"timeSlots"`
}

type yamlSlot struct {
	ID    string `yaml:"_id,omitempty"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

func toYAML(confs []*domain.Conference) []yamlConference {
	out := make([]yamlConference, len(confs))
	for i, c := range confs {
		y := yamlConference{
			ID:         c.ID,
			Title:      c.Title,
			Start:      c.DateRange.Start,
			End:        c.DateRange.End,
			LastActive: c.LastActive,
			Default:    c.Default,
			Rooms:      c.Rooms,
		}
		for _, d := range c.Days {
			day := yamlDay{Date: d.Date, TimeSlots: []yamlSlot{}}
			for _, s := range d.TimeSlots {
				day.TimeSlots = append(day.TimeSlots, yamlSlot{ID: s.ID, Start: s.Start, End: s.End})
			}
			y.Days = append(y.Days, day)
		}
		out[i] = y
	}
	return out
}

func writeConferences(w io.Writer, format string, confs []*domain.Conference) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(confs)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toYAML(confs)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TITLE\tSTART\tEND\tDAYS\tROOMS\tFLAGS")
		for _, c := range confs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
				c.Title, c.DateRange.Start, c.DateRange.End, len(c.Days), len(c.Rooms), flags(c))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func flags(c *domain.Conference) string {
	var f []string
	if c.LastActive {
		f = append(f, "active")
	}
	if c.Default {
		f = append(f, "default")
	}
	if len(f) == 0 {
		return "-"
	}
	return strings.Join(f, ",")
}
