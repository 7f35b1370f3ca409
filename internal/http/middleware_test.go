package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParamsMiddleware_VerboseIsRequestScoped(t *testing.T) {
	log.SetLevel(log.InfoLevel)

	release := make(chan struct{})
	entered := make(chan struct{})
	var verboseLevel, quietLevel, globalDuring log.Level

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("verbose") == "true" {
			verboseLevel = log.FromContext(r.Context()).GetLevel()
			close(entered)
			<-release
			return
		}
		quietLevel = log.FromContext(r.Context()).GetLevel()
		globalDuring = log.GetLevel()
	}), paramsMiddleware)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/players?verbose=true", nil))
	}()

	// The verbose request is still in flight while the second one runs.
	<-entered
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/players", nil))
	close(release)
	wg.Wait()

	assert.Equal(t, log.DebugLevel, verboseLevel)
	assert.Equal(t, log.InfoLevel, quietLevel)
	assert.Equal(t, log.InfoLevel, globalDuring)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestParamsMiddleware_DryRun(t *testing.T) {
	var dryRun bool
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dryRun = isDryRunFromContext(r)
	}), paramsMiddleware)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/events/result-recorded?dry_run=true", nil))
	assert.True(t, dryRun)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/events/result-recorded", nil))
	assert.False(t, dryRun)
}
