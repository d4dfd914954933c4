// Command threat-chart renders recorded assessments as an HTML chart
// page for quick visual review without the full dashboard.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/allision.report/internal/db"
)

var (
	dbFile = flag.String("db", "allision_data.db", "SQLite database path")
	out    = flag.String("out", "threats.html", "Output HTML file")
	days   = flag.Int("days", 7, "Rollup window in days")
)

func main() {
	flag.Parse()

	database, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	rollup, err := database.ThreatRollup(*days)
	if err != nil {
		log.Fatalf("Failed to query threat rollup: %v", err)
	}
	if len(rollup) == 0 {
		log.Fatalf("No assessments recorded in the past %d day(s)", *days)
	}

	latest, err := database.LatestAssessments(0)
	if err != nil {
		log.Fatalf("Failed to query assessments: %v", err)
	}

	page := components.NewPage()
	page.AddCharts(rollupBar(rollup, *days), probabilityScatter(latest))

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		log.Fatalf("Failed to render charts: %v", err)
	}
	log.Printf("Wrote %s (%d threat level(s), %d vessel(s))", *out, len(rollup), len(latest))
}

// rollupBar charts assessment counts per threat level over the window.
func rollupBar(rollup []db.ThreatCount, days int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Assessments by threat level",
			Subtitle: fmt.Sprintf("past %d day(s)", days),
		}),
	)

	levels := make([]string, 0, len(rollup))
	counts := make([]opts.BarData, 0, len(rollup))
	vessels := make([]opts.BarData, 0, len(rollup))
	for _, tc := range rollup {
		levels = append(levels, tc.Level)
		counts = append(counts, opts.BarData{Value: tc.Count})
		vessels = append(vessels, opts.BarData{Value: tc.Vessels})
	}

	bar.SetXAxis(levels).
		AddSeries("assessments", counts).
		AddSeries("distinct vessels", vessels)
	return bar
}

// probabilityScatter plots each vessel's latest CPA distance against its
// estimated allision probability.
func probabilityScatter(latest []db.StoredAssessment) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "CPA distance vs allision probability"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "CPA (nm)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "probability (%)"}),
	)

	data := make([]opts.ScatterData, 0, len(latest))
	for _, sa := range latest {
		a := sa.Assessment
		data = append(data, opts.ScatterData{
			Name:  a.MMSI,
			Value: []interface{}{a.Threat.CPA.DistanceNm, a.Probability.Percent},
		})
	}
	scatter.AddSeries("vessels", data)
	return scatter
}
