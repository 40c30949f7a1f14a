package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kilianp07/traindepot/core/events"
	"github.com/kilianp07/traindepot/infra/logger"
)

// TestIntegration publishes a composition event to a real Mosquitto broker
// and reads it back from the train topic.
func TestIntegration(t *testing.T) {
	if os.Getenv("DOCKER_AVAILABLE") != "true" && os.Getenv("DOCKER_AVAILABLE") != "1" {
		t.Skip("docker not available")
	}
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		// the stock config only listens on loopback
		Cmd:        []string{"mosquitto", "-c", "/mosquitto-no-auth.conf"},
		WaitingFor: wait.ForListeningPort("1883/tcp"),
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

	// give broker time to fully start
	time.Sleep(500 * time.Millisecond)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "1883")
	require.NoError(t, err)
	broker := fmt.Sprintf("tcp://%s:%s", host, port.Port())

	sub := paho.NewClient(paho.NewClientOptions().AddBroker(broker).SetClientID("traindepot-sub"))
	var connectErr error
	for i := 0; i < 5; i++ {
		if token := sub.Connect(); token.Wait() && token.Error() != nil {
			connectErr = token.Error()
			time.Sleep(500 * time.Millisecond)
			continue
		}
		connectErr = nil
		break
	}
	require.NoError(t, connectErr, "subscriber connect")
	defer sub.Disconnect(250)

	msgCh := make(chan []byte, 1)
	token := sub.Subscribe("traindepot/trains/IC 1/events", 1, func(_ paho.Client, m paho.Message) {
		msgCh <- m.Payload()
	})
	require.True(t, token.WaitTimeout(5*time.Second), "subscribe timed out")
	require.NoError(t, token.Error())

	pub, err := NewPublisher(Config{Broker: broker, ClientID: "traindepot-pub", QoS: 1}, logger.NopLogger{})
	require.NoError(t, err)
	defer pub.Close()

	serial := uuid.New()
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Publish(events.Event{Kind: events.KindAttached, Train: "IC 1", Serial: &serial, Time: ts}))

	select {
	case payload := <-msgCh:
		var got events.Event
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, events.KindAttached, got.Kind)
		assert.Equal(t, "IC 1", got.Train)
		require.NotNil(t, got.Serial)
		assert.Equal(t, serial, *got.Serial)
		assert.True(t, ts.Equal(got.Time))
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for message")
	}
}
