package metrics

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	coremetrics "github.com/kilianp07/traindepot/core/metrics"
)

// TestInfluxIntegration writes a depot inventory to a real InfluxDB and
// queries it back.
func TestInfluxIntegration(t *testing.T) {
	if os.Getenv("DOCKER_AVAILABLE") != "true" && os.Getenv("DOCKER_AVAILABLE") != "1" {
		t.Skip("docker not available")
	}
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "influxdb:2.7",
		ExposedPorts: []string{"8086/tcp"},
		Env: map[string]string{
			"DOCKER_INFLUXDB_INIT_MODE":        "setup",
			"DOCKER_INFLUXDB_INIT_USERNAME":    "depot",
			"DOCKER_INFLUXDB_INIT_PASSWORD":    "depot-password",
			"DOCKER_INFLUXDB_INIT_ORG":         "depot",
			"DOCKER_INFLUXDB_INIT_BUCKET":      "trains",
			"DOCKER_INFLUXDB_INIT_ADMIN_TOKEN": "depot-token",
		},
		WaitingFor: wait.ForHTTP("/health").WithPort("8086/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start container")
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8086")
	require.NoError(t, err)
	url := fmt.Sprintf("http://%s:%s", host, port.Port())

	sink := NewInfluxSinkWithFallback(InfluxConfig{URL: url, Token: "depot-token", Org: "depot", Bucket: "trains"})
	influx, ok := sink.(*InfluxSink)
	require.True(t, ok, "expected a live influx sink, got %T", sink)
	defer influx.Close()

	now := time.Now()
	require.NoError(t, influx.RecordDepotInventory(coremetrics.DepotInventory{
		Engines: 3, Waggons: 5, IdleEngines: 1, IdleWaggons: 2, Time: now,
	}))

	client := influxdb2.NewClient(url, "depot-token")
	defer client.Close()
	result, err := client.QueryAPI("depot").Query(ctx,
		`from(bucket: "trains") |> range(start: -1h) |> filter(fn: (r) => r._measurement == "depot_inventory" and r._field == "waggons")`)
	require.NoError(t, err)
	require.True(t, result.Next(), "no rows: %v", result.Err())
	assert.EqualValues(t, 5, result.Record().Value())
}
