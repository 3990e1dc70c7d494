package ipc

import (
	"errors"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, classNone, classify(nil))
	assert.Equal(t, classNoBufferSpace, classify(syscall.ENOBUFS))
	assert.Equal(t, classMessageSize, classify(syscall.EMSGSIZE))
	assert.Equal(t, classOther, classify(errors.New("boom")))
}

func TestDecideNoBufferSpaceRetriesWhileProgressAndBudgetRemain(t *testing.T) {
	assert.Equal(t, outcomeRetry, decide(syscall.ENOBUFS, 10, 0, true))
	assert.Equal(t, outcomeRetry, decide(syscall.ENOBUFS, 10, maxRetries-1, true))
}

func TestDecideNoBufferSpaceDropsAtZeroProgress(t *testing.T) {
	assert.Equal(t, outcomeDrop, decide(syscall.ENOBUFS, 0, 0, true))
}

func TestDecideNoBufferSpaceDropsAfterRetryBudgetExhausted(t *testing.T) {
	assert.Equal(t, outcomeDrop, decide(syscall.ENOBUFS, 10, maxRetries, true))
}

func TestDecideMessageSizeAlwaysDrops(t *testing.T) {
	assert.Equal(t, outcomeDrop, decide(syscall.EMSGSIZE, 10, 0, true))
	assert.Equal(t, outcomeDrop, decide(syscall.EMSGSIZE, 0, 0, false))
}

func TestDecideOtherErrorDisconnectsClientButDropsOnServer(t *testing.T) {
	err := errors.New("connection refused")
	assert.Equal(t, outcomeDisconnect, decide(err, 0, 0, true))
	assert.Equal(t, outcomeDrop, decide(err, 0, 0, false))
}

func TestDecideNilErrorDrops(t *testing.T) {
	// decide is only ever called on a failed write; a nil error reaching it
	// is not a policy case the table covers, but it must not panic or retry
	// forever.
	assert.Equal(t, outcomeDrop, decide(nil, 10, 0, true))
}
