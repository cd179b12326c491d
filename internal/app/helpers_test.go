package app_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/reel/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// respond fills out the way the gateway decodes a JSON body.
func respond(t *testing.T, out, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func request(method, path string) gomock.Matcher {
	return gomock.Cond(func(req ports.Request) bool {
		return req.Method == method && req.Path == path
	})
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}
