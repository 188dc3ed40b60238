package main

import (
	"fmt"
	"strings"

	"jobwatch/internal/domain"
	"jobwatch/internal/pipeline"
	"jobwatch/internal/state"
)

// renderReport prints the ranked list to stdout, one block per hit, in the
// exact pipeline order (the printed index is the job's rank).
func renderReport(res pipeline.Result, snap state.Snapshot, breakdown bool) {
	fmt.Println("===========================================")
	fmt.Printf("Treffer: %d\n", len(res.Jobs))
	if snap.Timestamp != nil {
		fmt.Printf("Neu seit Snapshot (%s): %d\n", *snap.Timestamp, len(res.NewKeys))
	} else {
		fmt.Println("Noch kein Snapshot gespeichert – alle Treffer gelten als neu.")
	}
	fmt.Println("===========================================")

	if len(res.Errors) > 0 {
		fmt.Println("\nFehler / Hinweise:")
		for _, e := range res.Errors {
			fmt.Println("  !", e)
		}
	}

	for _, j := range res.Jobs {
		fmt.Println()
		fmt.Printf("%3d. %s%s%s\n", j.Rank, marker(j), star(j), j.Title)
		fmt.Printf("     Score %d | %s | %s\n", j.Score, distanceBadge(j), strings.Join(nonEmpty(j.Profile, j.Bucket), " | "))
		fmt.Printf("     %s\n", strings.Join(nonEmpty(j.Company, j.Location), " | "))
		if j.Org != nil {
			label := j.Org.Name
			if j.Org.HighPriority() {
				label = "★ " + label
			}
			fmt.Printf("     Zielfirma: %s – %s\n", label, j.Org.CareerURL)
		}
		if j.WebURL != "" {
			fmt.Printf("     %s\n", j.WebURL)
		}
		if breakdown {
			for _, b := range j.Breakdown {
				fmt.Printf("       %s\n", b)
			}
		}
	}
}

// renderDetails prints the single-job view: the short profile, the framing
// data and the full description, falling back to the search hit's summary
// fields when the detail record carried nothing richer.
func renderDetails(j domain.Job, breakdown bool) {
	fmt.Println("===========================================")
	fmt.Printf("%s%s%s\n", marker(j), star(j), j.Title)
	fmt.Println("===========================================")

	fmt.Println("\nKurzprofil")
	fmt.Printf("  %s\n", strings.Join(nonEmpty(j.Company, j.Location), " | "))
	fmt.Printf("  Score %d | %s\n", j.Score, distanceBadge(j))
	if j.Org != nil {
		label := j.Org.Name
		if j.Org.HighPriority() {
			label = "★ " + label
		}
		fmt.Printf("  Zielfirma: %s – %s\n", label, j.Org.CareerURL)
	}
	if breakdown {
		for _, b := range j.Breakdown {
			fmt.Printf("    %s\n", b)
		}
	}

	fmt.Println("\nRahmendaten")
	fmt.Printf("  Profil: %s | %s\n", j.Profile, j.Bucket)
	if j.TravelMin != nil {
		fmt.Printf("  Fahrzeit: ~%d min\n", *j.TravelMin)
	}
	if j.WebURL != "" {
		fmt.Printf("  %s\n", j.WebURL)
	}

	if desc := firstText(j.Description, j.ShortDesc); desc != "" {
		fmt.Println("\nBeschreibung")
		fmt.Printf("  %s\n", desc)
	}
	if j.Tasks != "" {
		fmt.Println("\nAufgaben")
		fmt.Printf("  %s\n", j.Tasks)
	}
	if j.Requirements != "" {
		fmt.Println("\nAnforderungen")
		fmt.Printf("  %s\n", j.Requirements)
	}
}

func firstText(parts ...string) string {
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			return p
		}
	}
	return ""
}

func marker(j domain.Job) string {
	if j.New {
		return "🟢 NEU  "
	}
	return ""
}

func star(j domain.Job) string {
	if j.Leadership {
		return "⭐ "
	}
	return ""
}

// distanceBadge renders "12.3 km · ~10 min · near" with dashes for unknowns.
func distanceBadge(j domain.Job) string {
	if j.DistanceKm == nil {
		return "Entf. —"
	}
	s := fmt.Sprintf("%.1f km", *j.DistanceKm)
	if j.TravelMin != nil {
		s += fmt.Sprintf(" · ~%d min", *j.TravelMin)
	}
	return s + " · " + j.Tier
}

func nonEmpty(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
