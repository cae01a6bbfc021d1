package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/ontodiff/config"
	"github.com/c360studio/ontodiff/explore"
	"github.com/c360studio/ontodiff/ontology"
	"github.com/c360studio/ontodiff/vocabulary/owl"
)

// classView is everything explore prints about one class.
type classView struct {
	explore.Description
	Ancestors        []string              `json:"ancestors"`
	Descendants      []string              `json:"descendants"`
	Restrictions     []restrictionView     `json:"restrictions"`
	ReferencedBy     []explore.ReverseLink `json:"referenced_by"`
	Neighborhood     explore.Subgraph      `json:"neighborhood"`
	HierarchyDiagram string                `json:"hierarchy_diagram"`
}

type restrictionView struct {
	explore.Restriction
	Target string `json:"target,omitempty"`
}

func (a *app) exploreCmd() *cobra.Command {
	var (
		hops        int
		output      string
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "explore <file> <class>",
		Short: "Describe one class: labels, hierarchy, restrictions and neighbourhood",
		Long: `Explore looks a class up by full URI, local name or English label and
prints its description, its place in the subclass hierarchy, the restrictions
on it and pointing at it, and the IRIs within --hops statements of it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" {
				a.cfg.Output.Format = output
			}
			if inputFormat != "" {
				a.cfg.Input.Format = inputFormat
			}
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if hops < 0 {
				return fmt.Errorf("--hops must not be negative")
			}

			format, err := ontology.ParseFormat(a.cfg.Input.Format)
			if err != nil {
				return err
			}
			snap, err := ontology.NewLoader(format, a.logger).Load(cmd.Context(), splitPatterns(args[0]))
			if err != nil {
				return err
			}

			uri, ok := explore.FindClass(snap.Graph, args[1])
			if !ok {
				return fmt.Errorf("class not found: %s", args[1])
			}

			view := buildClassView(snap.Graph, uri, hops, a.cfg.Output.DescriptionLength)
			if a.cfg.Output.Format == config.OutputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			writeClassView(cmd.OutOrStdout(), snap.Graph, view, a.prefixes())
			return nil
		},
	}

	cmd.Flags().IntVar(&hops, "hops", 1, "Neighbourhood depth")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (text, json)")
	cmd.Flags().StringVar(&inputFormat, "format", "", "Force input format (turtle, ntriples, nquads, rdfxml)")
	return cmd
}

func (a *app) prefixes() map[string]string {
	prefixes := owl.DefaultPrefixes()
	for k, v := range a.cfg.Prefixes {
		prefixes[k] = v
	}
	return prefixes
}

func buildClassView(g *ontology.Graph, uri string, hops, descLen int) classView {
	desc := explore.Describe(g, uri)
	desc.Description = explore.Truncate(desc.Description, descLen)

	view := classView{
		Description:      desc,
		Ancestors:        explore.TransitiveSuperclasses(g, uri),
		Descendants:      explore.TransitiveSubclasses(g, uri),
		Restrictions:     []restrictionView{},
		ReferencedBy:     explore.ReverseRestrictions(g, uri),
		Neighborhood:     explore.Neighborhood(g, uri, hops),
		HierarchyDiagram: explore.HierarchyTree(g, uri),
	}
	for _, r := range explore.Restrictions(g, uri) {
		rv := restrictionView{Restriction: r}
		if target, ok := r.Target(); ok {
			rv.Target = target
		} else if r.Value != nil {
			rv.Target = ontology.Pretty(r.Value)
		}
		view.Restrictions = append(view.Restrictions, rv)
	}
	if view.ReferencedBy == nil {
		view.ReferencedBy = []explore.ReverseLink{}
	}
	return view
}

func writeClassView(w io.Writer, g *ontology.Graph, v classView, prefixes map[string]string) {
	name := func(iri string) string { return explore.DisplayLabel(g, iri, prefixes) }
	names := func(iris []string) string {
		out := make([]string, 0, len(iris))
		for _, iri := range iris {
			out = append(out, name(iri))
		}
		return strings.Join(out, ", ")
	}

	fmt.Fprintln(w, name(v.URI))
	fmt.Fprintf(w, "  URI:          %s\n", v.URI)
	if v.Label != "" {
		fmt.Fprintf(w, "  Label:        %s\n", v.Label)
	}
	if v.Description.Description != "" {
		fmt.Fprintf(w, "  Description:  %s\n", v.Description.Description)
	}
	if len(v.Superclasses) > 0 {
		fmt.Fprintf(w, "  Superclasses: %s\n", names(v.Superclasses))
	}
	if len(v.Subclasses) > 0 {
		fmt.Fprintf(w, "  Subclasses:   %s\n", names(v.Subclasses))
	}
	if len(v.Broader) > 0 {
		fmt.Fprintf(w, "  Broader:      %s\n", names(v.Broader))
	}
	if len(v.Narrower) > 0 {
		fmt.Fprintf(w, "  Narrower:     %s\n", names(v.Narrower))
	}
	if v.Concept {
		fmt.Fprintln(w, "  SKOS concept")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Hierarchy:")
	fmt.Fprint(w, v.HierarchyDiagram)

	if len(v.Restrictions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Restrictions:")
		for _, r := range v.Restrictions {
			kind := string(r.Kind)
			if kind == "" {
				kind = "(unconstrained)"
			}
			fmt.Fprintf(w, "  %s %s %s\n", ontology.LocalName(r.Property), kind, ontology.LocalName(r.Target))
		}
	}

	if len(v.ReferencedBy) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Referenced by:")
		for _, l := range v.ReferencedBy {
			fmt.Fprintf(w, "  %s via %s (%s)\n", name(l.Class), ontology.LocalName(l.Property), l.Kind)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Neighbourhood: %d nodes, %d links\n", len(v.Neighborhood.Nodes), len(v.Neighborhood.Links))
	for _, l := range v.Neighborhood.Links {
		fmt.Fprintf(w, "  %s --%s→ %s\n", ontology.LocalName(l.Source), ontology.LocalName(l.Predicate), ontology.LocalName(l.Target))
	}
}
