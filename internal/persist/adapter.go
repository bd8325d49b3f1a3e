package persist

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single storage round trip.
const DefaultTimeout = 3 * time.Second

// Adapter saves and restores in-progress quiz state. Storage failures are
// logged and swallowed; callers only ever see "saved" or "nothing saved".
type Adapter struct {
	kv      KV
	logger  *zap.Logger
	timeout time.Duration
}

// NewAdapter wraps kv. A nil logger disables logging.
func NewAdapter(kv KV, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		kv:      kv,
		logger:  logger.Named("persist"),
		timeout: DefaultTimeout,
	}
}

// WithTimeout returns a copy of the adapter using d per storage call. Zero
// or negative disables the bound.
func (a *Adapter) WithTimeout(d time.Duration) *Adapter {
	c := *a
	c.timeout = d
	return &c
}

// Save writes st under key.
func (a *Adapter) Save(ctx context.Context, key string, st State) {
	b, err := encodeState(st)
	if err != nil {
		a.logger.Warn("encode quiz state", zap.String("key", key), zap.Error(err))
		return
	}

	ctx, cancel := a.bound(ctx)
	defer cancel()
	if err := a.kv.Set(ctx, key, b); err != nil {
		a.logger.Warn("save quiz state", zap.String("key", key), zap.Error(err))
	}
}

// Load returns the state saved under key. ok is false when nothing usable
// is stored: missing, unreadable, an unknown version, or a finished quiz.
// A finished quiz's record is deleted.
func (a *Adapter) Load(ctx context.Context, key string) (st State, ok bool) {
	ctx, cancel := a.bound(ctx)
	defer cancel()

	b, err := a.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.logger.Warn("load quiz state", zap.String("key", key), zap.Error(err))
		}
		return State{}, false
	}

	st, err = decodeState(b)
	if err != nil {
		a.logger.Warn("decode quiz state", zap.String("key", key), zap.Error(err))
		return State{}, false
	}

	if st.Version != Version {
		a.logger.Info("ignoring quiz state with unknown version",
			zap.String("key", key), zap.String("version", st.Version))
		return State{}, false
	}

	if st.Completed {
		a.logger.Debug("discarding completed quiz state", zap.String("key", key))
		if err := a.kv.Delete(ctx, key); err != nil {
			a.logger.Warn("clear stale quiz state", zap.String("key", key), zap.Error(err))
		}
		return State{}, false
	}

	return st, true
}

// Clear removes whatever is stored under key.
func (a *Adapter) Clear(ctx context.Context, key string) {
	ctx, cancel := a.bound(ctx)
	defer cancel()
	if err := a.kv.Delete(ctx, key); err != nil {
		a.logger.Warn("clear quiz state", zap.String("key", key), zap.Error(err))
	}
}

// Keys lists the saved session keys. Unlike Save and Load it reports
// errors, since it backs maintenance commands rather than the quiz.
func (a *Adapter) Keys(ctx context.Context) ([]string, error) {
	l, ok := a.kv.(Lister)
	if !ok {
		return nil, ErrListUnsupported
	}
	ctx, cancel := a.bound(ctx)
	defer cancel()
	return l.Keys(ctx)
}

func (a *Adapter) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}
