package listener

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	mockKafka "github.com/muhammadchandra19/paper-trading/pkg/kafka/mock"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestListener_Subscribe(t *testing.T) {
	announced := kafkago.Message{Offset: 1, Value: []byte(`{"id":"6f1c","strategy":"momentum","symbol":"BTC-USD","side":"buy","quantity":1}`)}
	garbage := kafkago.Message{Offset: 2, Value: []byte(`{oops`)}

	testCases := []struct {
		name      string
		msgs      []kafkago.Message
		mockFn    func(reader *mockKafka.MockMessageReader)
		wantNudge bool
	}{
		{
			name: "announcement nudges and commits",
			msgs: []kafkago.Message{announced},
			mockFn: func(reader *mockKafka.MockMessageReader) {
				reader.EXPECT().CommitMessages(gomock.Any(), announced).Return(nil)
			},
			wantNudge: true,
		},
		{
			name: "burst coalesces into one nudge",
			msgs: []kafkago.Message{announced, announced, announced},
			mockFn: func(reader *mockKafka.MockMessageReader) {
				reader.EXPECT().CommitMessages(gomock.Any(), announced).Return(nil).Times(3)
			},
			wantNudge: true,
		},
		{
			name: "garbage committed without nudge",
			msgs: []kafkago.Message{garbage},
			mockFn: func(reader *mockKafka.MockMessageReader) {
				reader.EXPECT().CommitMessages(gomock.Any(), garbage).Return(nil)
			},
		},
		{
			name: "commit failure still nudges",
			msgs: []kafkago.Message{announced},
			mockFn: func(reader *mockKafka.MockMessageReader) {
				reader.EXPECT().CommitMessages(gomock.Any(), announced).Return(errors.New("broker gone"))
			},
			wantNudge: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := mockKafka.NewMockMessageReader(ctrl)
			tc.mockFn(reader)

			l := NewListener(reader, logger.NewNop())
			done := make(chan struct{})
			go func() {
				defer close(done)
				l.Subscribe(context.Background())
			}()
			for _, m := range tc.msgs {
				l.msgChan <- m
			}
			close(l.msgChan)
			<-done

			select {
			case <-l.Nudges():
				assert.True(t, tc.wantNudge)
			default:
				assert.False(t, tc.wantNudge)
			}
			// at most one wake up is ever pending
			assert.Len(t, l.nudges, 0)
		})
	}
}

func TestListener_StartStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mockKafka.NewMockMessageReader(ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	gomock.InOrder(
		reader.EXPECT().FetchMessage(gomock.Any()).Return(kafkago.Message{}, errors.New("rebalance")),
		reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(func(ctx context.Context) (kafkago.Message, error) {
			<-ctx.Done()
			return kafkago.Message{}, ctx.Err()
		}),
	)
	reader.EXPECT().Close().Return(nil)

	l := NewListener(reader, logger.NewNop())
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.Start(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}
	_, open := <-l.msgChan
	assert.False(t, open)
	assert.NoError(t, l.Stop())
}
