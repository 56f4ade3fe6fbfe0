package notify_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sassline/internal/adapters/notify"
	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestConsole_Show(t *testing.T) {
	tests := []struct {
		name         string
		notification domain.Notification
		goldenName   string
	}{
		{
			name: "compile failure",
			notification: domain.Notification{
				Type:        domain.NotifyError,
				Title:       domain.TitleCompileFailed,
				Description: "Error: Undefined variable.\n  ╷\n1 │ a { b: $c }\n  ╵\n",
			},
			goldenName: "console_compile_failed",
		},
		{
			name:         "info without description",
			notification: domain.Notification{Type: domain.NotifyInfo, Title: "Watching for saves"},
			goldenName:   "console_info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			require.NoError(t, notify.NewConsole(buf).Show(context.Background(), tt.notification))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestMulti_Show(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockNotifier(ctrl)
	second := mocks.NewMockNotifier(ctrl)

	n := domain.Notification{Type: domain.NotifyError, Title: domain.TitleStoreFailed}
	first.EXPECT().Show(gomock.Any(), n).Return(errors.New("bus down"))
	second.EXPECT().Show(gomock.Any(), n).Return(nil)

	err := notify.Multi{first, second}.Show(context.Background(), n)
	require.Error(t, err)
	assert.ErrorContains(t, err, "bus down")
}

func TestMulti_Empty(t *testing.T) {
	assert.NoError(t, notify.Multi{}.Show(context.Background(), domain.Notification{}))
}
