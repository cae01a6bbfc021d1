package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// ErrUnknownFormat is returned for an output format no renderer handles.
var ErrUnknownFormat = errors.New("unknown report format")

// Render writes rep to w as text, markdown or json.
func Render(w io.Writer, rep *Report, format string) error {
	switch format {
	case "", "text":
		return RenderText(w, rep)
	case "markdown":
		return RenderMarkdown(w, rep)
	case "json":
		return RenderJSON(w, rep)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// RenderJSON writes rep as indented JSON.
func RenderJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// RenderText writes rep as aligned plain text for a terminal.
func RenderText(w io.Writer, rep *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Run\t%s\n", rep.RunID)
	fmt.Fprintf(tw, "Generated\t%s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if len(rep.Inputs.Old) > 0 {
		fmt.Fprintf(tw, "Old\t%s\n", strings.Join(rep.Inputs.Old, ", "))
	}
	if len(rep.Inputs.New) > 0 {
		fmt.Fprintf(tw, "New\t%s\n", strings.Join(rep.Inputs.New, ", "))
	}
	fmt.Fprintln(tw)

	s := rep.Summary
	fmt.Fprintln(tw, "SUMMARY")
	fmt.Fprintf(tw, "  New classes\t%d\n", s.NewClasses)
	fmt.Fprintf(tw, "  Removed classes\t%d\n", s.RemovedClasses)
	fmt.Fprintf(tw, "  Modified classes\t%d\n", s.ModifiedClasses)
	fmt.Fprintf(tw, "  Unchanged classes\t%d\n", s.UnchangedClasses)
	fmt.Fprintf(tw, "  Added relations\t%d\n", s.AddedRelations)
	fmt.Fprintf(tw, "  Removed relations\t%d\n", s.RemovedRelations)

	if len(rep.Modified) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "MODIFIED\tSUBCLASSES\tOBJECT PROPS\tTOTAL")
		for _, c := range rep.Modified {
			fmt.Fprintf(tw, "  %s\t%d → %d\t%d → %d\t%d → %d\n",
				cell(c.Label, c.URI),
				c.Old.Subclasses, c.New.Subclasses,
				c.Old.ObjectProperties, c.New.ObjectProperties,
				c.Old.TotalRelations, c.New.TotalRelations)
			for _, p := range c.AddedProperties {
				fmt.Fprintf(tw, "    + %s\n", p)
			}
			for _, p := range c.RemovedProperties {
				fmt.Fprintf(tw, "    - %s\n", p)
			}
		}
	}

	writeViews := func(title string, views []ClassView) {
		if len(views) == 0 {
			return
		}
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, title)
		for _, v := range views {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", cell(v.Label, v.URI), v.Domain, strings.Join(v.Superclasses, ", "))
			if v.Description != "" {
				fmt.Fprintf(tw, "    %s\n", v.Description)
			}
		}
	}
	writeViews("NEW", rep.New)
	writeViews("REMOVED", rep.Removed)

	if len(rep.Relations) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "RELATIONS")
		for _, g := range rep.Relations {
			fmt.Fprintf(tw, "  %s\n", cell(g.Label, g.URI))
			for _, l := range g.Added {
				fmt.Fprintf(tw, "    + %s\n", l)
			}
			for _, l := range g.Removed {
				fmt.Fprintf(tw, "    - %s\n", l)
			}
		}
	}

	if len(rep.NewRelationsByDomain) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "NEW RELATIONS BY DOMAIN")
		for _, d := range rep.NewRelationsByDomain {
			fmt.Fprintf(tw, "  %s\t%d\n", d.Domain, d.Count)
		}
	}

	if len(rep.EdgeOnly) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "Unchanged counts, changed edges: %s\n", strings.Join(rep.EdgeOnly, ", "))
	}

	return tw.Flush()
}
