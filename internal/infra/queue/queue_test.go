package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/crm"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, msg).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendLeadAssigned(to string, lead entity.Lead) error {
	return m.Called(to, lead).Error(0)
}

type fakeAck struct {
	acked, nacked bool
	requeue       bool
}

func (a *fakeAck) Ack(uint64, bool) error {
	a.acked = true
	return nil
}

func (a *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

func (a *fakeAck) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

type fakeConsumer struct {
	msgs chan amqp.Delivery
	err  error
}

func (c *fakeConsumer) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return c.msgs, c.err
}

var occurred = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

func leadEvent() crm.Event {
	return crm.Event{
		Type:       crm.EventLeadCreated,
		ID:         "l-1",
		OccurredAt: occurred,
		Lead:       &entity.Lead{ID: "l-1", Name: "Acme Expansion", Stage: entity.StageQualified, AIScore: 71},
	}
}

func TestPublishUsesEventTypeAsRoutingKey(t *testing.T) {
	ch := new(mockPublisher)
	ch.On("PublishWithContext", ExchangeName, "lead.created", mock.MatchedBy(func(msg amqp.Publishing) bool {
		var p EventPayload
		if err := json.Unmarshal(msg.Body, &p); err != nil {
			return false
		}
		return msg.DeliveryMode == amqp.Persistent &&
			msg.ContentType == "application/json" &&
			p.Lead != nil && p.Lead.AIScore == 71 && p.Contact == nil
	})).Return(nil)

	require.NoError(t, NewEventPublisher(ch).Publish(context.Background(), leadEvent()))
	ch.AssertExpectations(t)
}

func TestListenerReportsErrors(t *testing.T) {
	ch := new(mockPublisher)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	var reported error
	p := NewEventPublisher(ch)
	p.OnError = func(err error) { reported = err }

	p.Listener()(leadEvent())

	require.Error(t, reported)
	assert.Contains(t, reported.Error(), "channel closed")
}

func TestListenerFollowsStore(t *testing.T) {
	ch := new(mockPublisher)
	ch.On("PublishWithContext", ExchangeName, "contact.created", mock.Anything).Return(nil).Once()
	ch.On("PublishWithContext", ExchangeName, "contact.deleted", mock.Anything).Return(nil).Once()

	s := crm.New(crm.WithSeedDelay(time.Hour))
	t.Cleanup(s.Close)
	s.Subscribe(NewEventPublisher(ch).Listener())

	c := s.AddContact(entity.ContactInput{Name: "Ana", Email: "ana@acme.com", Status: entity.ContactActive})
	s.DeleteContact(c.ID)
	s.DeleteContact("missing")

	ch.AssertExpectations(t)
}

func delivery(t *testing.T, ack *fakeAck, ev crm.Event) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(EventPayload{Type: ev.Type, ID: ev.ID, OccurredAt: ev.OccurredAt, Lead: ev.Lead, Contact: ev.Contact})
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, RoutingKey: string(ev.Type), Body: body}
}

func TestWorkerNotifiesNewLead(t *testing.T) {
	n := new(mockNotifier)
	n.On("SendLeadAssigned", "vendas@ligue.app", mock.MatchedBy(func(l entity.Lead) bool {
		return l.ID == "l-1"
	})).Return(nil)
	w := NewWorker(nil, n, "vendas@ligue.app")
	ack := &fakeAck{}

	w.handle(context.Background(), delivery(t, ack, leadEvent()))

	assert.True(t, ack.acked)
	n.AssertExpectations(t)
}

func TestWorkerNacksOnNotifierFailure(t *testing.T) {
	n := new(mockNotifier)
	n.On("SendLeadAssigned", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	w := NewWorker(nil, n, "vendas@ligue.app")
	ack := &fakeAck{}

	w.handle(context.Background(), delivery(t, ack, leadEvent()))

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

func TestWorkerRejectsMalformed(t *testing.T) {
	w := NewWorker(nil, new(mockNotifier), "vendas@ligue.app")
	ack := &fakeAck{}

	w.handle(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("{")})
	assert.True(t, ack.nacked)

	ack = &fakeAck{}
	ev := leadEvent()
	ev.Lead = nil
	w.handle(context.Background(), delivery(t, ack, ev))
	assert.True(t, ack.nacked)
}

func TestWorkerAcksOtherEvents(t *testing.T) {
	n := new(mockNotifier)
	w := NewWorker(nil, n, "vendas@ligue.app")
	ack := &fakeAck{}

	w.handle(context.Background(), delivery(t, ack, crm.Event{Type: crm.EventContactCreated, ID: "c-1", OccurredAt: occurred}))

	assert.True(t, ack.acked)
	n.AssertNotCalled(t, "SendLeadAssigned", mock.Anything, mock.Anything)
}

func TestWorkerStartStopsOnCancel(t *testing.T) {
	n := new(mockNotifier)
	n.On("SendLeadAssigned", mock.Anything, mock.Anything).Return(nil)
	c := &fakeConsumer{msgs: make(chan amqp.Delivery, 1)}
	w := NewWorker(c, n, "vendas@ligue.app")

	ack := &fakeAck{}
	c.msgs <- delivery(t, ack, leadEvent())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx, QueueName) }()

	require.Eventually(t, func() bool { return len(c.msgs) == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	n.AssertNumberOfCalls(t, "SendLeadAssigned", 1)
}

func TestWorkerStartConsumeError(t *testing.T) {
	w := NewWorker(&fakeConsumer{err: errors.New("no channel")}, new(mockNotifier), "x")

	err := w.Start(context.Background(), QueueName)

	require.Error(t, err)
}

type recordingTopology struct {
	exchanges map[string]string
	queues    map[string]amqp.Table
	bindings  []string
}

func (r *recordingTopology) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	r.exchanges[name] = kind
	return nil
}

func (r *recordingTopology) QueueDeclare(name string, _, _, _, _ bool, args amqp.Table) (amqp.Queue, error) {
	r.queues[name] = args
	return amqp.Queue{Name: name}, nil
}

func (r *recordingTopology) QueueBind(name, key, exchange string, _ bool, _ amqp.Table) error {
	r.bindings = append(r.bindings, exchange+"/"+key+"->"+name)
	return nil
}

func TestSetupTopology(t *testing.T) {
	r := &recordingTopology{exchanges: map[string]string{}, queues: map[string]amqp.Table{}}

	require.NoError(t, setupTopology(r))

	assert.Equal(t, "topic", r.exchanges[ExchangeName])
	assert.Equal(t, "direct", r.exchanges[DLXName])
	assert.Equal(t, DLXName, r.queues[QueueName]["x-dead-letter-exchange"])
	assert.Contains(t, r.bindings, ExchangeName+"/lead.created->"+QueueName)
	assert.Contains(t, r.bindings, DLXName+"/lead.created->"+DLQName)
}
