package natsstore_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sassline/internal/adapters/logger"
	"go.trai.ch/sassline/internal/adapters/natsstore"
	"go.trai.ch/sassline/internal/core/domain"
)

func TestNotifier_Show(t *testing.T) {
	b := newBus()
	ch := make(chan *nats.Msg, 1)
	_, err := b.ChanSubscribe("notification.open", ch)
	require.NoError(t, err)

	n := natsstore.NewNotifier(b, "notification.open")
	note := domain.Notification{Type: domain.NotifyError, Title: domain.TitleCompileFailed, Description: "boom"}
	require.NoError(t, n.Show(context.Background(), note))

	msg := <-ch
	assert.JSONEq(t, `{"type":"error","title":"SASS compilation failed.","description":"boom"}`, string(msg.Data))
}

func TestSaveSource_Events(t *testing.T) {
	b := newBus()
	src := natsstore.NewSaveSource(b, "editor.session.save", logger.NewDiscard())
	require.NoError(t, src.Start(context.Background()))

	publish := func(data []byte) {
		msg := nats.NewMsg("editor.session.save")
		msg.Data = data
		require.NoError(t, b.PublishMsg(msg))
	}

	publish([]byte("{not json"))
	ev := domain.SaveEvent{SessionID: "s1", WorkspaceID: "ws", Path: "/a.scss", Extension: "scss", Text: "// out: a.css"}
	data, err := json.Marshal(ev)
	require.NoError(t, err)
	publish(data)

	var got []domain.SaveEvent
	for e := range src.Events() {
		got = append(got, e)
		require.NoError(t, src.Stop())
	}

	assert.Equal(t, []domain.SaveEvent{ev}, got)
	assert.Zero(t, b.subscribers("editor.session.save"))
}

func TestSaveSource_StopWithoutStart(t *testing.T) {
	src := natsstore.NewSaveSource(newBus(), "editor.session.save", logger.NewDiscard())
	require.NoError(t, src.Stop())
}
