package complaint

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"seedcare/internal/common/apperror"
	"seedcare/pkg/metrics"

	"go.uber.org/zap"
)

const (
	numberPrefix      = "CMP-"
	maxNumberAttempts = 10
	minRetryDelay     = 50 * time.Millisecond
	retryJitter       = 100 * time.Millisecond
)

// ErrDuplicateNumber is returned by the repository when complaint_number is taken
var ErrDuplicateNumber = errors.New("complaint number already exists")

// NumberGenerator inserts complaints under a fresh CMP-YYYYMMDD-NNNN number,
// retrying on collisions with concurrent submissions.
type NumberGenerator struct {
	repo  ComplaintRepository
	log   *zap.Logger
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewNumberGenerator(repo ComplaintRepository, log *zap.Logger) *NumberGenerator {
	return &NumberGenerator{
		repo:  repo,
		log:   log,
		now:   time.Now,
		sleep: sleepContext,
	}
}

// WithClock replaces the time source and the retry sleep
func (g *NumberGenerator) WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) *NumberGenerator {
	if now != nil {
		g.now = now
	}
	if sleep != nil {
		g.sleep = sleep
	}
	return g
}

// Insert assigns a number to c and stores it
func (g *NumberGenerator) Insert(ctx context.Context, c *Complaint) error {
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		number, err := g.next(ctx)
		if err != nil {
			return err
		}
		c.ComplaintNumber = number

		err = g.repo.Create(ctx, c)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrDuplicateNumber) {
			return err
		}

		metrics.ComplaintNumberRetries.Inc()
		g.log.Warn("Complaint number collision, retrying",
			zap.String("complaint_number", number),
			zap.Int("attempt", attempt))

		if attempt == maxNumberAttempts {
			break
		}
		delay := minRetryDelay + rand.N(retryJitter)
		if err := g.sleep(ctx, delay); err != nil {
			return err
		}
	}

	c.ComplaintNumber = ""
	return fmt.Errorf("%w: no unique complaint number after %d attempts", apperror.ErrCreationFailed, maxNumberAttempts)
}

func (g *NumberGenerator) next(ctx context.Context) (string, error) {
	now := g.now()
	prefix := DailyPrefix(now)

	last, err := g.repo.LatestNumberWithPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}

	return NextNumber(prefix, last, now), nil
}

// DailyPrefix is CMP-YYYYMMDD- for the given day
func DailyPrefix(t time.Time) string {
	return numberPrefix + t.Format("20060102") + "-"
}

// NextNumber derives the next number from the latest one issued today ("" if none).
// The low four digits of the Unix millisecond clock are mixed in to spread
// concurrent submissions that read the same latest number.
func NextNumber(prefix, last string, now time.Time) string {
	next := 1
	if last != "" {
		if n, err := strconv.Atoi(strings.TrimPrefix(last, prefix)); err == nil {
			next = n + 1
		}
	}
	seq := (next + int(now.UnixMilli()%10000)) % 10000
	return fmt.Sprintf("%s%04d", prefix, seq)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
