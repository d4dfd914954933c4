package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/banshee-data/allision.report/internal/ais"
	"github.com/banshee-data/allision.report/internal/assess"
	"github.com/banshee-data/allision.report/internal/db"
	"github.com/banshee-data/allision.report/internal/timeutil"
	"github.com/banshee-data/allision.report/internal/track"
)

// pipeline turns raw AIS payloads into tracked vessels and stored
// assessments.
type pipeline struct {
	engine           *assess.Engine
	harbor           *track.Harbor
	db               *db.DB
	clock            timeutil.Clock
	minAssessSpeedKn float64
}

func newPipeline(engine *assess.Engine, harbor *track.Harbor, database *db.DB, clock timeutil.Clock, minAssessSpeedKn float64) *pipeline {
	return &pipeline{
		engine:           engine,
		harbor:           harbor,
		db:               database,
		clock:            clock,
		minAssessSpeedKn: minAssessSpeedKn,
	}
}

// run consumes payloads until the context is cancelled. Safe to run from
// multiple goroutines sharing one source channel.
func (p *pipeline) run(ctx context.Context, msgs <-chan []byte) {
	for {
		select {
		case <-ctx.Done():
			return
		case b := <-msgs:
			if err := p.handle(b); err != nil {
				log.Printf("error handling message: %v", err)
			}
		}
	}
}

func (p *pipeline) handle(b []byte) error {
	var pkt ais.Packet
	if err := json.Unmarshal(b, &pkt); err != nil {
		return fmt.Errorf("failed to unmarshal packet: %w", err)
	}

	now := p.clock.Now()

	switch pkt.MsgType {
	case "PositionReport":
		report, err := ais.ReportFromPosition(pkt.Metadata, pkt.Msg.PositionReport)
		if err != nil {
			return fmt.Errorf("rejected position report: %w", err)
		}

		merged := p.harbor.UpsertReport(report, now)
		if err := p.db.RecordReport(merged, now); err != nil {
			log.Printf("failed to record report for %s: %v", merged.MMSI, err)
		}

		if merged.SpeedKn < p.minAssessSpeedKn {
			return nil
		}

		a := p.engine.Assess(merged)
		p.harbor.SetAssessment(merged.MMSI, &a)
		if _, err := p.db.RecordAssessment(&a, now); err != nil {
			log.Printf("failed to record assessment for %s: %v", merged.MMSI, err)
		}

		if a.Threat.Level == assess.ThreatAlarm {
			log.Printf("ALARM %s (%s): %s", merged.MMSI, merged.Name, a.Threat.Reason)
		}

	case "ShipStaticData":
		sd := pkt.Msg.ShipStaticData
		p.harbor.UpsertStatic(strconv.Itoa(pkt.Metadata.MMSI), track.Static{
			Name:     sd.Name,
			ShipType: ais.TypeLabel(sd.Type),
			LengthM:  sd.LengthM(),
			WidthM:   sd.WidthM(),
		}, now)
	}

	return nil
}
