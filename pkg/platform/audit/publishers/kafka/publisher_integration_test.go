//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "payequity/pkg/platform/audit"
	"payequity/pkg/platform/audit/publishers/kafka"
	"payequity/pkg/testutil/containers"
)

type KafkaStoreSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	client   *kgo.Client
	store    *kafka.Store
	topic    string
}

func TestKafkaStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaStoreSuite))
}

func (s *KafkaStoreSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
	s.topic = "payequity.audit.test"

	client, err := kafka.NewClient([]string{s.redpanda.Broker}, s.topic)
	s.Require().NoError(err)
	s.client = client

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err = kadm.NewClient(client).CreateTopics(ctx, 1, 1, nil, s.topic)
	s.Require().NoError(err)

	s.store = kafka.New(client, s.topic)
}

func (s *KafkaStoreSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *KafkaStoreSuite) TestAppendIsConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	event := audit.Event{
		ID:           "evt-integration",
		Category:     audit.CategoryCompliance,
		Subject:      "report-integration",
		Action:       string(audit.EventReportAnalyzed),
		Jurisdiction: "Lakeview County",
		Decision:     "compliant",
		Timestamp:    time.Now().UTC(),
	}
	s.Require().NoError(s.store.Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Broker),
		kgo.ConsumeTopics(s.topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().NotEmpty(records)

	var got audit.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal(event.Subject, got.Subject)
	s.Equal("Lakeview County", got.Jurisdiction)
}
