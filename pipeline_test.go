package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/allision.report/internal/assess"
	"github.com/banshee-data/allision.report/internal/db"
	"github.com/banshee-data/allision.report/internal/site"
	"github.com/banshee-data/allision.report/internal/timeutil"
	"github.com/banshee-data/allision.report/internal/track"
)

func newTestPipeline(t *testing.T, minSpeed float64) (*pipeline, *track.Harbor, *db.DB) {
	t.Helper()

	database, err := db.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	bridge := site.MustLoadDefault()
	harbor := track.NewHarbor()
	clock := timeutil.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return newPipeline(assess.NewEngine(bridge), harbor, database, clock, minSpeed), harbor, database
}

const positionPayload = `{"MessageType":"PositionReport","MetaData":{"MMSI":366998410,"ShipName":"HARBOR GUARDIAN","latitude":42.3702,"longitude":-71.0491},"Message":{"PositionReport":{"Cog":12.5,"Latitude":42.3702,"Longitude":-71.0491,"Sog":9.8,"TrueHeading":13,"UserID":366998410,"Valid":true}}}`

const staticPayload = `{"MessageType":"ShipStaticData","MetaData":{"MMSI":366998410,"ShipName":"HARBOR GUARDIAN","latitude":42.3702,"longitude":-71.0491},"Message":{"ShipStaticData":{"Dimension":{"A":110,"B":90,"C":15,"D":17},"Name":"HARBOR GUARDIAN","Type":70,"UserID":366998410,"Valid":true}}}`

func TestHandlePositionReport(t *testing.T) {
	t.Parallel()

	p, harbor, database := newTestPipeline(t, 0)

	require.NoError(t, p.handle([]byte(staticPayload)))
	require.NoError(t, p.handle([]byte(positionPayload)))

	entry, ok := harbor.Get("366998410")
	require.True(t, ok)
	assert.Equal(t, 9.8, entry.Report.SpeedKn)

	// Static data merged before assessment: a 200m cargo hull.
	assert.Equal(t, "Cargo", entry.Report.ShipType)
	assert.Equal(t, 200.0, entry.Report.LengthM)

	require.NotNil(t, entry.Assessment)
	assert.NotEmpty(t, entry.Assessment.Threat.Level)
	assert.NotEmpty(t, entry.Assessment.Analysis.PierID)

	n, err := database.ReportCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stored, err := database.LatestAssessments(0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "366998410", stored[0].Assessment.MMSI)
}

func TestHandleSkipsSlowVessels(t *testing.T) {
	t.Parallel()

	p, harbor, database := newTestPipeline(t, 15)

	require.NoError(t, p.handle([]byte(positionPayload)))

	// Tracked but not assessed below the speed floor.
	entry, ok := harbor.Get("366998410")
	require.True(t, ok)
	assert.Nil(t, entry.Assessment)

	stored, err := database.LatestAssessments(0)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestHandleRejectsMalformed(t *testing.T) {
	t.Parallel()

	p, harbor, _ := newTestPipeline(t, 0)

	assert.Error(t, p.handle([]byte("{not json")))

	// Valid envelope, invalid coordinates.
	bad := `{"MessageType":"PositionReport","MetaData":{"MMSI":123456789},"Message":{"PositionReport":{"Latitude":999,"Longitude":0,"Sog":5}}}`
	assert.Error(t, p.handle([]byte(bad)))
	assert.Equal(t, 0, harbor.Len())

	// Unknown message types are ignored, not errors.
	assert.NoError(t, p.handle([]byte(`{"MessageType":"AidsToNavigationReport","MetaData":{"MMSI":1}}`)))
}

func TestReplayFixtures(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ch := make(chan []byte, 64)
	done := make(chan error, 1)
	go func() { done <- replayFixtures(ctx, "fixtures/ais_packets.jsonl", ch) }()

	require.NoError(t, <-done)
	close(ch)

	count := 0
	for range ch {
		count++
	}
	assert.Equal(t, 8, count)
}
