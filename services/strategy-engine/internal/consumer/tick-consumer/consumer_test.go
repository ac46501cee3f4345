package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5/pgconn"
	mockKafka "github.com/muhammadchandra19/paper-trading/pkg/kafka/mock"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/pkg/pricecache"
	mockCache "github.com/muhammadchandra19/paper-trading/pkg/pricecache/mock"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
	mockTick "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/infrastructure/postgresql/tick/mock"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

var testRetry = postgresql.RetryConfig{InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, MaxRetries: 2}

func TestTickConsumer_Subscribe(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	valid := kafkago.Message{Offset: 1, Value: []byte(`{"symbol":"BTC-USD","price":100.5,"volume":2,"timestamp":"2025-06-01T12:00:00Z","source":"sim"}`)}
	noSource := kafkago.Message{Offset: 2, Value: []byte(`{"symbol":"BTC-USD","price":100.5,"volume":2,"timestamp":"2025-06-01T12:00:00Z"}`)}
	garbage := kafkago.Message{Offset: 3, Value: []byte(`{not json`)}
	negative := kafkago.Message{Offset: 4, Value: []byte(`{"symbol":"BTC-USD","price":-1,"timestamp":"2025-06-01T12:00:00Z"}`)}

	testCases := []struct {
		name   string
		msg    kafkago.Message
		mockFn func(reader *mockKafka.MockMessageReader, repo *mockTick.MockTickRepository, cache *mockCache.MockCache)
	}{
		{
			name: "stores, caches and commits",
			msg:  valid,
			mockFn: func(reader *mockKafka.MockMessageReader, repo *mockTick.MockTickRepository, cache *mockCache.MockCache) {
				repo.EXPECT().StoreBatch(gomock.Any(), []marketv1.Tick{
					{Symbol: "BTC-USD", Price: 100.5, Volume: 2, Source: "sim", Timestamp: ts},
				}).Return(int64(1), nil)
				cache.EXPECT().Put(gomock.Any(), pricecache.Quote{Symbol: "BTC-USD", Price: 100.5, Timestamp: ts}).Return(nil)
				reader.EXPECT().CommitMessages(gomock.Any(), valid).Return(nil)
			},
		},
		{
			name: "missing source defaults to kafka",
			msg:  noSource,
			mockFn: func(reader *mockKafka.MockMessageReader, repo *mockTick.MockTickRepository, cache *mockCache.MockCache) {
				repo.EXPECT().StoreBatch(gomock.Any(), []marketv1.Tick{
					{Symbol: "BTC-USD", Price: 100.5, Volume: 2, Source: "kafka", Timestamp: ts},
				}).Return(int64(1), nil)
				cache.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
				reader.EXPECT().CommitMessages(gomock.Any(), noSource).Return(nil)
			},
		},
		{
			name: "cache failure still commits",
			msg:  valid,
			mockFn: func(reader *mockKafka.MockMessageReader, repo *mockTick.MockTickRepository, cache *mockCache.MockCache) {
				repo.EXPECT().StoreBatch(gomock.Any(), gomock.Any()).Return(int64(1), nil)
				cache.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
				reader.EXPECT().CommitMessages(gomock.Any(), valid).Return(nil)
			},
		},
		{
			name: "transient store failure is retried before commit",
			msg:  valid,
			mockFn: func(reader *mockKafka.MockMessageReader, repo *mockTick.MockTickRepository, cache *mockCache.MockCache) {
				gomock.InOrder(
					repo.EXPECT().StoreBatch(gomock.Any(), gomock.Any()).Return(int64(0), &pgconn.PgError{Code: "40P01"}),
					repo.EXPECT().StoreBatch(gomock.Any(), gomock.Any()).Return(int64(1), nil),
					cache.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil),
					reader.EXPECT().CommitMessages(gomock.Any(), valid).Return(nil),
				)
			},
		},
		{
			name: "transient failure outlasting the policy replays the message",
			msg:  valid,
			mockFn: func(reader *mockKafka.MockMessageReader, repo *mockTick.MockTickRepository, cache *mockCache.MockCache) {
				gomock.InOrder(
					repo.EXPECT().StoreBatch(gomock.Any(), gomock.Any()).Return(int64(0), &pgconn.PgError{Code: "08006"}).Times(3),
					repo.EXPECT().StoreBatch(gomock.Any(), gomock.Any()).Return(int64(1), nil),
					cache.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil),
					reader.EXPECT().CommitMessages(gomock.Any(), valid).Return(nil),
				)
			},
		},
		{
			name: "permanent store failure is dropped and committed",
			msg:  valid,
			mockFn: func(reader *mockKafka.MockMessageReader, repo *mockTick.MockTickRepository, cache *mockCache.MockCache) {
				repo.EXPECT().StoreBatch(gomock.Any(), gomock.Any()).Return(int64(0), &pgconn.PgError{Code: "23514"}).Times(1)
				reader.EXPECT().CommitMessages(gomock.Any(), valid).Return(nil)
			},
		},
		{
			name: "undecodable message is skipped",
			msg:  garbage,
			mockFn: func(reader *mockKafka.MockMessageReader, repo *mockTick.MockTickRepository, cache *mockCache.MockCache) {
				reader.EXPECT().CommitMessages(gomock.Any(), garbage).Return(nil)
			},
		},
		{
			name: "invalid tick is skipped",
			msg:  negative,
			mockFn: func(reader *mockKafka.MockMessageReader, repo *mockTick.MockTickRepository, cache *mockCache.MockCache) {
				reader.EXPECT().CommitMessages(gomock.Any(), negative).Return(nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := mockKafka.NewMockMessageReader(ctrl)
			repo := mockTick.NewMockTickRepository(ctrl)
			cache := mockCache.NewMockCache(ctrl)
			tc.mockFn(reader, repo, cache)

			c := NewTickConsumer(reader, repo, cache, testRetry, logger.NewNop())
			go func() {
				c.msgChan <- tc.msg
				close(c.msgChan)
			}()

			c.Subscribe(context.Background())
		})
	}
}

func TestTickConsumer_StartStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mockKafka.NewMockMessageReader(ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	msg := kafkago.Message{Offset: 7}
	gomock.InOrder(
		reader.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil),
		reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(func(ctx context.Context) (kafkago.Message, error) {
			<-ctx.Done()
			return kafkago.Message{}, ctx.Err()
		}),
	)

	c := NewTickConsumer(reader, mockTick.NewMockTickRepository(ctrl), nil, testRetry, logger.NewNop())
	done := make(chan struct{})
	go func() {
		c.Start(ctx)
		close(done)
	}()

	assert.Equal(t, msg, <-c.msgChan)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}

	_, open := <-c.msgChan
	assert.False(t, open)
}

func TestTickConsumer_SubscribeStopsWithoutCommitOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mockKafka.NewMockMessageReader(ctrl)
	repo := mockTick.NewMockTickRepository(ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	repo.EXPECT().StoreBatch(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, []marketv1.Tick) (int64, error) {
		calls++
		if calls == 5 {
			cancel()
		}
		return 0, &pgconn.PgError{Code: "57P03"}
	}).MinTimes(5)

	c := NewTickConsumer(reader, repo, nil, testRetry, logger.NewNop())
	go func() {
		c.msgChan <- kafkago.Message{Offset: 9, Value: []byte(`{"symbol":"ETH-USD","price":2500,"timestamp":"2025-06-01T12:00:00Z"}`)}
		close(c.msgChan)
	}()

	done := make(chan struct{})
	go func() {
		c.Subscribe(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe did not return after cancel")
	}
}
