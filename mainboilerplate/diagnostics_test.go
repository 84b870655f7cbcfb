package mainboilerplate

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestRecoverLogsAndRepanics(t *testing.T) {
	var hook = test.NewGlobal()
	defer hook.Reset()

	var recovered interface{}
	func() {
		defer func() { recovered = recover() }()
		defer InitDiagnosticsAndRecover(DiagnosticsConfig{})()
		panic("boom")
	}()

	require.Equal(t, "boom", recovered)
	require.NotNil(t, hook.LastEntry())
	require.Equal(t, log.ErrorLevel, hook.LastEntry().Level)
	require.Equal(t, "recovered panic; exiting", hook.LastEntry().Message)
	require.Equal(t, "boom", hook.LastEntry().Data["panic"])
}
