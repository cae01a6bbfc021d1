package report

import (
	"fmt"
	"io"
	"strings"
)

// RenderMarkdown writes rep as markdown with the default title.
func RenderMarkdown(w io.Writer, rep *Report) error {
	return NewMarkdownRenderer().Render(w, rep)
}

// MarkdownRenderer converts a report to markdown.
type MarkdownRenderer struct {
	// Title is written as the H1 heading.
	Title string
}

// NewMarkdownRenderer creates a renderer with the default title.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{Title: "Ontology Diff Report"}
}

// Render writes the markdown document for rep to w.
func (m *MarkdownRenderer) Render(w io.Writer, rep *Report) error {
	_, err := io.WriteString(w, m.Transform(rep))
	return err
}

// Transform returns the markdown document for rep.
func (m *MarkdownRenderer) Transform(rep *Report) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(m.Title)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "- **Run:** %s\n", rep.RunID)
	fmt.Fprintf(&sb, "- **Generated:** %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if len(rep.Inputs.Old) > 0 {
		fmt.Fprintf(&sb, "- **Old:** %s\n", strings.Join(rep.Inputs.Old, ", "))
	}
	if len(rep.Inputs.New) > 0 {
		fmt.Fprintf(&sb, "- **New:** %s\n", strings.Join(rep.Inputs.New, ", "))
	}
	sb.WriteString("\n")

	m.writeSummary(&sb, rep.Summary)
	m.writeModified(&sb, rep.Modified)
	m.writeClassViews(&sb, "New Classes", rep.New)
	m.writeClassViews(&sb, "Removed Classes", rep.Removed)
	m.writeRelations(&sb, rep.Relations)
	m.writeNewClasses(&sb, rep.NewClasses)
	m.writeNewRelations(&sb, rep.NewRelations, rep.NewRelationsByDomain)

	if len(rep.EdgeOnly) > 0 {
		sb.WriteString("---\n\n")
		sb.WriteString("**Unchanged counts, changed edges:** ")
		sb.WriteString(strings.Join(rep.EdgeOnly, ", "))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m *MarkdownRenderer) writeSummary(sb *strings.Builder, s Summary) {
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Count |\n")
	sb.WriteString("|---|---:|\n")
	fmt.Fprintf(sb, "| New classes | %d |\n", s.NewClasses)
	fmt.Fprintf(sb, "| Removed classes | %d |\n", s.RemovedClasses)
	fmt.Fprintf(sb, "| Modified classes | %d |\n", s.ModifiedClasses)
	fmt.Fprintf(sb, "| Unchanged classes | %d |\n", s.UnchangedClasses)
	fmt.Fprintf(sb, "| Added relations | %d |\n", s.AddedRelations)
	fmt.Fprintf(sb, "| Removed relations | %d |\n", s.RemovedRelations)
	sb.WriteString("\n")
}

func (m *MarkdownRenderer) writeModified(sb *strings.Builder, classes []ModifiedClass) {
	sb.WriteString("## Modified Classes\n\n")
	if len(classes) == 0 {
		sb.WriteString("_None._\n\n")
		return
	}
	sb.WriteString("| Class | Subclasses | Object properties | Total relations |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, c := range classes {
		fmt.Fprintf(sb, "| %s | %d → %d | %d → %d | %d → %d |\n",
			cell(c.Label, c.URI),
			c.Old.Subclasses, c.New.Subclasses,
			c.Old.ObjectProperties, c.New.ObjectProperties,
			c.Old.TotalRelations, c.New.TotalRelations)
	}
	sb.WriteString("\n")

	for _, c := range classes {
		if len(c.AddedProperties) == 0 && len(c.RemovedProperties) == 0 {
			continue
		}
		fmt.Fprintf(sb, "### %s\n\n", cell(c.Label, c.URI))
		writeList(sb, "Added properties", c.AddedProperties)
		writeList(sb, "Removed properties", c.RemovedProperties)
		sb.WriteString("\n")
	}
}

func (m *MarkdownRenderer) writeClassViews(sb *strings.Builder, title string, views []ClassView) {
	fmt.Fprintf(sb, "## %s\n\n", title)
	if len(views) == 0 {
		sb.WriteString("_None._\n\n")
		return
	}
	for _, v := range views {
		fmt.Fprintf(sb, "### %s\n\n", cell(v.Label, v.URI))
		fmt.Fprintf(sb, "- **URI:** `%s`\n", v.URI)
		fmt.Fprintf(sb, "- **Domain:** %s\n", v.Domain)
		if v.Description != "" {
			fmt.Fprintf(sb, "- **Description:** %s\n", v.Description)
		}
		if len(v.Superclasses) > 0 {
			fmt.Fprintf(sb, "- **Superclasses:** %s\n", strings.Join(v.Superclasses, ", "))
		}
		sb.WriteString("\n")
	}
}

func (m *MarkdownRenderer) writeRelations(sb *strings.Builder, groups []RelationGroup) {
	sb.WriteString("## Relation Changes\n\n")
	if len(groups) == 0 {
		sb.WriteString("_None._\n\n")
		return
	}
	for _, g := range groups {
		fmt.Fprintf(sb, "### %s\n\n", cell(g.Label, g.URI))
		for _, l := range g.Added {
			fmt.Fprintf(sb, "- ➕ %s\n", l)
		}
		for _, l := range g.Removed {
			fmt.Fprintf(sb, "- ➖ %s\n", l)
		}
		sb.WriteString("\n")
	}
}

func (m *MarkdownRenderer) writeNewClasses(sb *strings.Builder, entries []NewClassEntry) {
	if len(entries) == 0 {
		return
	}
	sb.WriteString("## New Class Overview\n\n")
	sb.WriteString("| Class | Domain | Superclasses | Subclasses |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, e := range entries {
		supers := strings.Join(e.Superclasses, ", ")
		if e.Orphan {
			supers = "_orphan_"
		}
		fmt.Fprintf(sb, "| %s | %s | %s | %s |\n", cell(e.Label, e.URI), e.Domain, supers, strings.Join(e.Subclasses, ", "))
	}
	sb.WriteString("\n")
}

func (m *MarkdownRenderer) writeNewRelations(sb *strings.Builder, rels []NewRelation, byDomain []DomainCount) {
	if len(rels) == 0 {
		return
	}
	sb.WriteString("## New Relations\n\n")
	sb.WriteString("| Subject domain | Subject | Relation | Object | Object domain |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, r := range rels {
		fmt.Fprintf(sb, "| %s | %s | %s | %s | %s |\n", r.SubjectDomain, r.Subject, r.Predicate, r.Object, r.ObjectDomain)
	}
	sb.WriteString("\n")

	sb.WriteString("### By Subject Domain\n\n")
	for _, d := range byDomain {
		fmt.Fprintf(sb, "- **%s:** %d\n", d.Domain, d.Count)
	}
	sb.WriteString("\n")
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("**")
	sb.WriteString(title)
	sb.WriteString(":**\n")
	for _, item := range items {
		sb.WriteString("  - `")
		sb.WriteString(item)
		sb.WriteString("`\n")
	}
}

// cell prefers the label and falls back to the URI.
func cell(label, uri string) string {
	if label != "" {
		return label
	}
	return uri
}
