// Package render formats addteam's terminal output with lipgloss. All
// functions return strings; the commands decide where they go.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/michaeljabbour/addteam/internal/audit"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	modeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	addStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	changeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Header renders the program banner with repo and identity context.
func Header(version, repoName, repoOwner, me, mode string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("addteam"))
	b.WriteString(dimStyle.Render(" v" + version))
	if mode != "" {
		b.WriteString("  " + modeStyle.Render("["+mode+"]"))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  %s %s\n", boldStyle.Render(repoName), dimStyle.Render("("+repoOwner+")"))
	fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("authenticated as"), me)
	return b.String()
}

// ConfigInfo renders the resolved config summary lines.
func ConfigInfo(source, defaultPermission string, sync, welcome bool, userCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s      %s\n", dimStyle.Render("source"), source)
	fmt.Fprintf(&b, "  %s  %s\n", dimStyle.Render("permission"), defaultPermission)
	if sync {
		fmt.Fprintf(&b, "  %s        sync (will remove unlisted)\n", dimStyle.Render("mode"))
	}
	if welcome {
		fmt.Fprintf(&b, "  %s     create issues for new users\n", dimStyle.Render("welcome"))
	}
	fmt.Fprintf(&b, "  %s       %d\n", dimStyle.Render("users"), userCount)
	return b.String()
}

// Separator renders the section divider.
func Separator() string {
	return "  " + dimStyle.Render(strings.Repeat("─", 50)) + "\n"
}

// Drift renders the full drift report, section by section.
func Drift(d *audit.Drift) string {
	var b strings.Builder
	if d.Empty() {
		b.WriteString("  " + okStyle.Render("✓ no drift detected") + "\n")
		return b.String()
	}

	b.WriteString("  " + changeStyle.Render("⚠ drift detected") + "\n\n")

	if len(d.Missing) > 0 {
		b.WriteString("  " + boldStyle.Render("Missing") + " (should have access):\n")
		for _, m := range d.Missing {
			note := ""
			if m.Source.Name != "" {
				note = " " + dimStyle.Render("from "+m.Source.String())
			}
			fmt.Fprintf(&b, "    %s %s (%s)%s\n", addStyle.Render("+"), m.Login, m.Permission, note)
		}
		b.WriteString("\n")
	}

	if len(d.Extra) > 0 {
		b.WriteString("  " + boldStyle.Render("Extra") + " (should not have access):\n")
		for _, login := range d.Extra {
			fmt.Fprintf(&b, "    %s %s\n", removeStyle.Render("-"), login)
		}
		b.WriteString("\n")
	}

	if len(d.PermissionChanges) > 0 {
		b.WriteString("  " + boldStyle.Render("Permission drift") + ":\n")
		for _, c := range d.PermissionChanges {
			fmt.Fprintf(&b, "    %s %s: %s → %s\n", changeStyle.Render("~"), c.Login, c.From, c.To)
		}
		b.WriteString("\n")
	}

	if len(d.Expired) > 0 {
		b.WriteString("  " + boldStyle.Render("Expired") + " (should be removed):\n")
		for _, e := range d.Expired {
			fmt.Fprintf(&b, "    %s %s (expired %s)\n", removeStyle.Render("⏰"), e.Login, e.Expires.Format("2006-01-02"))
		}
		b.WriteString("\n")
	}

	b.WriteString(Separator())
	fmt.Fprintf(&b, "  %s %d item(s)\n", boldStyle.Render("total drift:"), d.Total())
	return b.String()
}

// ResultKind classifies a per-user action outcome for display.
type ResultKind string

const (
	ResultOK    ResultKind = "ok"
	ResultWould ResultKind = "would"
	ResultSkip  ResultKind = "skip"
	ResultFail  ResultKind = "fail"
)

// ResultLine renders one per-user outcome line.
func ResultLine(kind ResultKind, login, detail string) string {
	padded := fmt.Sprintf("%-20s", login)
	switch kind {
	case ResultOK:
		return fmt.Sprintf("  %s %s %s", okStyle.Render("✓"), padded, dimStyle.Render(detail))
	case ResultWould:
		return fmt.Sprintf("  %s %s %s", pendingStyle.Render("○"), padded, dimStyle.Render(detail))
	case ResultSkip:
		return fmt.Sprintf("  %s %s %s", dimStyle.Render("·"), padded, dimStyle.Render(detail))
	default:
		return fmt.Sprintf("  %s %s %s", failStyle.Render("✗"), padded, failStyle.Render(detail))
	}
}

// SummaryLine renders the final done line from its colored parts.
func SummaryLine(parts []string) string {
	joined := dimStyle.Render("nothing to do")
	if len(parts) > 0 {
		joined = strings.Join(parts, " · ")
	}
	return fmt.Sprintf("  %s  %s\n", boldStyle.Render("done"), joined)
}

// Count helpers for SummaryLine parts.
func CountInvited(n int) string  { return okStyle.Render(fmt.Sprintf("%d invited", n)) }
func CountWouldAct(n int) string { return pendingStyle.Render(fmt.Sprintf("%d planned", n)) }
func CountSkipped(n int) string  { return dimStyle.Render(fmt.Sprintf("%d skipped", n)) }
func CountFailed(n int) string   { return failStyle.Render(fmt.Sprintf("%d failed", n)) }
func CountRemoved(n int) string  { return changeStyle.Render(fmt.Sprintf("%d removed", n)) }
func CountUpdated(n int) string  { return changeStyle.Render(fmt.Sprintf("%d re-permissioned", n)) }
func CountWelcomed(n int) string { return okStyle.Render(fmt.Sprintf("%d welcomed", n)) }

func Dim(s string) string   { return dimStyle.Render(s) }
func Bold(s string) string  { return boldStyle.Render(s) }
func Warn(s string) string  { return changeStyle.Render(s) }
func Error(s string) string { return failStyle.Render(s) }
