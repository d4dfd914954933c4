// Command snapshot-analyse runs the allision assessment engine over a
// JSON snapshot of vessel reports and prints the results, without
// needing a live AIS subscription or database.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/banshee-data/allision.report/internal/assess"
	"github.com/banshee-data/allision.report/internal/site"
)

var (
	shipsFile  = flag.String("ships", "ships.json", "JSON file holding an array of vessel reports")
	sitePath   = flag.String("site", "", "Bridge site JSON file (built-in defaults when empty)")
	jsonOutput = flag.Bool("json", false, "Emit full assessments as JSON instead of a table")
)

// threatRank orders output so the most urgent vessels print first.
var threatRank = map[assess.ThreatLevel]int{
	assess.ThreatAlarm:              0,
	assess.ThreatElevatedMonitoring: 1,
	assess.ThreatMonitor:            2,
	assess.ThreatNegligible:         3,
}

func main() {
	flag.Parse()

	var bridge *site.Bridge
	if *sitePath != "" {
		var err error
		bridge, err = site.Load(*sitePath)
		if err != nil {
			log.Fatalf("Failed to load site: %v", err)
		}
	} else {
		bridge = site.MustLoadDefault()
	}

	data, err := os.ReadFile(*shipsFile)
	if err != nil {
		log.Fatalf("Failed to read ships file: %v", err)
	}

	var reports []assess.VesselReport
	if err := json.Unmarshal(data, &reports); err != nil {
		log.Fatalf("Failed to parse ships file: %v", err)
	}
	if len(reports) == 0 {
		log.Fatal("Ships file contains no vessel reports")
	}

	engine := assess.NewEngine(bridge)
	assessments := make([]assess.Assessment, 0, len(reports))
	for _, r := range reports {
		assessments = append(assessments, engine.Assess(r))
	}

	sort.SliceStable(assessments, func(i, j int) bool {
		return threatRank[assessments[i].Threat.Level] < threatRank[assessments[j].Threat.Level]
	})

	if *jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(assessments); err != nil {
			log.Fatalf("Failed to encode assessments: %v", err)
		}
		return
	}

	fmt.Printf("%s: %d vessel(s) assessed\n\n", bridge.Name, len(assessments))
	fmt.Printf("%-11s %-20s %-20s %6s %8s %7s %6s %9s\n",
		"MMSI", "NAME", "THREAT", "KN", "CPA NM", "D/C", "PROB", "CATEGORY")
	for _, a := range assessments {
		fmt.Printf("%-11s %-20s %-20s %6.1f %8.2f %7.2f %5.1f%% %9s\n",
			a.MMSI, truncate(a.Name, 20), a.Threat.Level,
			a.SpeedKn, a.Threat.CPA.DistanceNm,
			a.Analysis.DCRatio, a.Probability.Percent, a.Probability.Category)
	}

	summary := assess.Summarize(assessments)
	fmt.Printf("\napproaching=%d grounding=%d max_dc=%.2f max_prob=%.1f%%\n",
		summary.Approaching, summary.Grounding, summary.MaxDCRatio, summary.MaxProbability*100)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
