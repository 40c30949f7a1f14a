package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/traindepot/core/events"
	coremetrics "github.com/kilianp07/traindepot/core/metrics"
	"github.com/kilianp07/traindepot/infra/logger"
)

// InfluxConfig addresses an InfluxDB v2 bucket.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes train metrics to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordTrainSnapshot writes the derived metrics of a train.
func (s *InfluxSink) RecordTrainSnapshot(ev coremetrics.TrainSnapshotEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	snap := ev.Snapshot
	p := write.NewPointWithMeasurement("train_snapshot").
		AddTag("train", snap.Name).
		AddField("vehicles", len(snap.Vehicles)).
		AddField("engines", snap.Engines).
		AddField("passengers", snap.Passengers).
		AddField("freight_kg", snap.FreightWeight).
		AddField("passenger_capacity", snap.PassengerCapacity).
		AddField("freight_capacity_kg", snap.FreightCapacity).
		AddField("overall_weight_kg", snap.OverallWeight).
		AddField("weight_to_move_kg", snap.WeightToMove).
		AddField("traction", snap.Traction).
		AddField("length_m", snap.Length).
		AddField("conductors", snap.Conductors).
		AddField("can_run", snap.CanRun).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordCompositionEvent writes one train mutation.
func (s *InfluxSink) RecordCompositionEvent(ev events.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("train_composition_event").
		AddTag("train", ev.Train).
		AddTag("kind", string(ev.Kind))
	if ev.Kind.Composition() && ev.Serial != nil {
		p = p.AddField("serial", ev.Serial.String())
	} else {
		p = p.AddField("amount", ev.Amount)
	}
	p = p.SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordDepotInventory writes the depot vehicle counts.
func (s *InfluxSink) RecordDepotInventory(inv coremetrics.DepotInventory) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("depot_inventory").
		AddField("engines", inv.Engines).
		AddField("waggons", inv.Waggons).
		AddField("idle_engines", inv.IdleEngines).
		AddField("idle_waggons", inv.IdleWaggons).
		SetTime(inv.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
