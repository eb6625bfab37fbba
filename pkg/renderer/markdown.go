// Package renderer turns a portfolio view into markdown, terminal output or PDF.
package renderer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/nikogura/portfolio-admin/pkg/model"
	"github.com/pkg/errors"
)

// Markdown renders the portfolio page as markdown, section by section in page order.
func Markdown(view *model.View) (md string) {
	if view == nil {
		return md
	}

	var b strings.Builder

	writeProfile(&b, view.Profile)

	if len(view.SkillCategories) > 0 || len(view.OtherSkills) > 0 {
		b.WriteString("## Skills\n\n")
		for _, group := range view.SkillCategories {
			fmt.Fprintf(&b, "- **%s**: %s\n", group.Name, strings.Join(group.Skills, ", "))
		}
		if len(view.OtherSkills) > 0 {
			names := make([]string, 0, len(view.OtherSkills))
			for _, o := range view.OtherSkills {
				names = append(names, o.Name)
			}
			fmt.Fprintf(&b, "- **Other**: %s\n", strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}

	if len(view.Experience) > 0 {
		b.WriteString("## Experience\n\n")
		for _, exp := range view.Experience {
			fmt.Fprintf(&b, "### %s, %s\n\n", exp.Role, exp.Company)
			if exp.Period != "" {
				fmt.Fprintf(&b, "*%s*\n\n", exp.Period)
			}
			if len(exp.Domain) > 0 {
				fmt.Fprintf(&b, "Domain: %s\n\n", strings.Join(exp.Domain, ", "))
			}
			for _, duty := range exp.Duties {
				fmt.Fprintf(&b, "- %s\n", duty)
			}
			if len(exp.Duties) > 0 {
				b.WriteString("\n")
			}
			if exp.TechStack != "" {
				fmt.Fprintf(&b, "Tech stack: %s\n\n", exp.TechStack)
			}
		}
	}

	if len(view.Education) > 0 {
		b.WriteString("## Education\n\n")
		for _, edu := range view.Education {
			line := fmt.Sprintf("- **%s**, %s", edu.School, edu.Degree)
			if edu.Major != "" {
				line += " in " + edu.Major
			}
			if edu.Year != "" {
				line += " (" + edu.Year + ")"
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	md = b.String()
	return md
}

func writeProfile(b *strings.Builder, p *model.Profile) {
	if p == nil {
		return
	}

	fmt.Fprintf(b, "# %s\n\n", p.Name)
	if p.Role != "" {
		fmt.Fprintf(b, "**%s**\n\n", p.Role)
	}

	contacts := []string{}
	for _, c := range []string{p.Email, p.Phone, p.Location, p.Skype, p.LinkedIn, p.GitHub} {
		if c != "" {
			contacts = append(contacts, c)
		}
	}
	if len(contacts) > 0 {
		b.WriteString(strings.Join(contacts, " | ") + "\n\n")
	}

	if p.Bio != "" {
		b.WriteString("## About\n\n")
		b.WriteString(p.Bio + "\n\n")
	}
}

// Terminal renders markdown for a terminal of the given width. style is a glamour style name
// such as "dark", "light" or "notty"; empty picks one from the terminal.
func Terminal(md string, width int, style string) (out string, err error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	var r *glamour.TermRenderer
	r, err = glamour.NewTermRenderer(opts...)
	if err != nil {
		err = errors.Wrap(err, "failed to create terminal renderer")
		return out, err
	}

	out, err = r.Render(md)
	if err != nil {
		err = errors.Wrap(err, "failed to render markdown")
		return out, err
	}

	return out, err
}
