package retry

import (
	"math"
	"time"

	"github.com/morrisonak/uta-notify-sub000/pkg/models"
)

// Clock lets the scheduler be tested with a fixed time instead of
// reaching for time.Now inside the backoff math.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ShouldRetry is checked against the retry count BEFORE it is
// incremented for the current failure. A delivery that already spent its
// budget stays failed with no next-retry time and waits for manual
// intervention.
func ShouldRetry(retryCount int) bool {
	return retryCount < models.MaxRetries
}

// BackoffMinutes computes the wait before the next attempt, keyed on the
// post-increment retry count: 2^retryCount * 5, so failed attempts wait
// 10, 20 and 40 minutes.
func BackoffMinutes(retryCount int) int {
	return int(math.Pow(2, float64(retryCount))) * 5
}

// NextRetryAt returns when a failed delivery becomes due again, given
// its post-increment retry count.
func NextRetryAt(clock Clock, retryCount int) time.Time {
	return clock.Now().Add(time.Duration(BackoffMinutes(retryCount)) * time.Minute)
}
