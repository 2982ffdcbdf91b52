//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
	"github.com/couchcryptid/epi-surveillance-etl/internal/reference"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node KRaft broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("surveillance-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = ctr.Terminate(stopCtx)
	})

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// testCatalog builds a small catalog on top of the built-in dictionaries.
func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	dicts, err := reference.LoadDictionaries("")
	require.NoError(t, err)
	countries := []domain.CountryEntry{
		{ISO3: "BRA", ISO2: "BR", NameZH: "巴西", NameEN: "Brazil", Aliases: "巴西"},
		{ISO3: "ARG", ISO2: "AR", NameZH: "阿根廷", NameEN: "Argentina", Aliases: "阿根廷"},
		{ISO3: "JPN", ISO2: "JP", NameZH: "日本", NameEN: "Japan", Aliases: "日本"},
	}
	regions := map[string]string{"BRA": "美洲", "ARG": "美洲", "JPN": "西太平洋"}
	routes := map[string]string{"登革熱": "病媒傳染", "麻疹": "空氣或飛沫傳染"}
	return reference.Build(countries, regions, routes, dicts)
}

// testAlerts are raw feed rows: two in the research window, one after it.
func testAlerts() []domain.RawAlert {
	return []domain.RawAlert{
		{
			Headline:    "巴西 - 登革熱",
			Description: "巴西及阿根廷登革熱疫情上升",
			ISO3166:     "BR",
			Source:      "WHO EIS、美國CDC",
			SourceTime:  "2024-03-01",
			Effective:   "2024-03-10T08:00:00+08:00",
			DataSource:  "TCDCTravelAlert",
		},
		{
			Headline:    "日本 - 麻疹",
			Description: "日本通報麻疹病例",
			ISO3166:     "JP",
			Source:      "NIID",
			Effective:   "2024-04-02",
			DataSource:  "TCDCTravelAlert",
		},
		{
			Headline:    "巴西 - 登革熱",
			Description: "巴西疫情趨緩",
			ISO3166:     "BR",
			Effective:   "2026-01-01",
			DataSource:  "TCDCTravelAlert",
		},
	}
}
