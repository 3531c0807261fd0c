package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/service"
	"github.com/MKhiriev/go-device-trust/models"
)

const (
	defaultUpdatesBuffer = 16
	defaultSafetyTimeout = 15 * time.Second
)

// Controller drives the machine for one tab. Transitions are serialised;
// effects run in their own goroutine under the safety timeout of their op and
// report back through the same transition path. Results of effects that were
// abandoned, by a reset or by a newer effect, are dropped.
type Controller struct {
	machine Machine
	svc     service.ClientAuthService
	cfg     config.Flow
	nav     Navigator
	logger  *logger.Logger

	mu      sync.Mutex
	base    context.Context
	snap    Snapshot
	gen     uint64
	cancel  context.CancelFunc
	updates chan Snapshot
}

// NewController returns a controller in StateChecking. Nothing happens until
// [Controller.Start] is called.
func NewController(machine Machine, svc service.ClientAuthService, cfg config.Flow, nav Navigator, buffer int, log *logger.Logger) *Controller {
	if buffer <= 0 {
		buffer = defaultUpdatesBuffer
	}
	return &Controller{
		machine: machine,
		svc:     svc,
		cfg:     cfg,
		nav:     nav,
		logger:  log,
		base:    context.Background(),
		snap:    Snapshot{State: StateChecking},
		updates: make(chan Snapshot, buffer),
	}
}

// Start opens the flow. Effects run under ctx until it is cancelled.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	c.base = ctx
	c.mu.Unlock()

	return c.apply(Start{
		PreviousHandle: c.svc.PreviousHandle(ctx),
		BoundHandle:    c.svc.BoundHandle(ctx),
	}, 0, false)
}

// Dispatch feeds a user or cross-tab event into the machine. User input
// received while an effect is in flight is refused with [ErrBusy].
func (c *Controller) Dispatch(ev Event) error {
	if _, ok := ev.(Result); ok {
		return errors.New("results are produced by the controller itself")
	}
	return c.apply(ev, 0, false)
}

// Snapshot returns the current snapshot.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Updates delivers every new snapshot. When the reader falls behind older
// snapshots are dropped; the latest one is always delivered.
func (c *Controller) Updates() <-chan Snapshot {
	return c.updates
}

func (c *Controller) apply(ev Event, gen uint64, fromEffect bool) error {
	c.mu.Lock()

	if fromEffect && gen != c.gen {
		c.mu.Unlock()
		c.logger.Debug().Str("func", "Controller.apply").Type("event", ev).Msg("stale effect result dropped")
		return nil
	}
	if !fromEffect && c.snap.Loading && userInput(ev) {
		c.mu.Unlock()
		return ErrBusy
	}
	before := c.snap
	next, effect := c.machine.Transition(before, ev)
	c.snap = next
	prev := before.State

	// A reset the machine ignored (Back while checking or during the success
	// dwell) keeps the running effect and its safety timeout.
	if resets(ev) && abandons(before, next) {
		c.abortLocked()
	}

	var runGen uint64
	if !effect.None() {
		c.abortLocked()
		runGen = c.gen
	}
	c.publishLocked(next)
	base := c.base
	c.mu.Unlock()

	if prev != next.State {
		c.logger.Debug().
			Str("func", "Controller.apply").
			Str("from", string(prev)).
			Str("to", string(next.State)).
			Type("event", ev).
			Msg("flow transition")
	}

	if !effect.None() {
		c.run(base, runGen, effect)
	}
	return nil
}

// abandons reports whether moving from before to next leaves the effect of
// before without a screen to report to.
func abandons(before, next Snapshot) bool {
	return before.State != next.State || (before.Loading && !next.Loading)
}

// abortLocked cancels the effect in flight and invalidates its result.
func (c *Controller) abortLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

func (c *Controller) publishLocked(s Snapshot) {
	for {
		select {
		case c.updates <- s:
			return
		default:
		}
		select {
		case <-c.updates:
		default:
		}
	}
}

func (c *Controller) run(base context.Context, gen uint64, effect Effect) {
	ctx, cancel := context.WithCancel(base)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		cancel()
		return
	}
	c.cancel = cancel
	c.mu.Unlock()

	go func() {
		defer cancel()

		if effect.Op == OpRedirect {
			c.redirect(ctx, gen, effect)
			return
		}

		result, ok := c.guarded(ctx, effect)
		if !ok {
			return
		}
		_ = c.apply(result, gen, true)
	}()
}

// guarded runs effect under its safety timeout. It reports false when the
// effect was abandoned rather than timed out.
func (c *Controller) guarded(parent context.Context, effect Effect) (Result, bool) {
	timeout := c.cfg.TimeoutFor(string(effect.Op))
	if timeout <= 0 {
		timeout = defaultSafetyTimeout
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	done := make(chan Result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- Result{Op: effect.Op, Err: fmt.Errorf("effect panic: %v", r)}
			}
		}()
		done <- c.execute(ctx, effect)
	}()

	select {
	case result := <-done:
		if parent.Err() != nil {
			return Result{}, false
		}
		if errors.Is(result.Err, context.DeadlineExceeded) && !errors.Is(result.Err, service.ErrTimeout) {
			result.Err = fmt.Errorf("%w: %w", service.ErrTimeout, result.Err)
		}
		return result, true
	case <-ctx.Done():
		if parent.Err() != nil {
			return Result{}, false
		}
		c.logger.Warn().
			Str("func", "Controller.guarded").
			Str("op", string(effect.Op)).
			Msg("safety timeout elapsed")
		return Result{Op: effect.Op, Err: fmt.Errorf("%w: %w", service.ErrTimeout, ctx.Err())}, true
	}
}

func (c *Controller) execute(ctx context.Context, effect Effect) Result {
	var (
		resp models.AuthResponse
		err  error
	)

	switch effect.Op {
	case OpCheckDevice:
		resp, err = c.svc.CheckDevice(ctx)
	case OpLookup:
		resp, err = c.svc.LookupIdentifier(ctx, effect.Kind, effect.Identifier)
	case OpFastAuth:
		resp, err = c.svc.FastAuthenticate(ctx, effect.Identifier)
	case OpSendCode:
		resp, err = c.svc.SendCode(ctx, effect.Login)
	case OpVerifyCode:
		resp, err = c.svc.VerifyCode(ctx, effect.Code)
	case OpVerifyPIN:
		resp, err = c.svc.VerifyPIN(ctx, effect.Identifier, effect.PIN)
	case OpCreateHandle:
		resp, err = c.svc.CreateHandle(ctx, effect.Create)
	case OpPasskeyLogin:
		resp, err = c.svc.PasskeyLogin(ctx, effect.Identifier)
	case OpComplete:
		err = c.svc.CompleteAuthentication(ctx, effect.Auth, effect.Method)
	case OpLogout:
		err = c.svc.Logout(ctx)
		c.nav.Navigate(LoginPath)
	default:
		err = fmt.Errorf("unknown effect %q", effect.Op)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Debug().Err(err).Str("func", "Controller.execute").Str("op", string(effect.Op)).Msg("effect failed")
	}
	return Result{Op: effect.Op, Resp: resp, Err: err}
}

func (c *Controller) redirect(ctx context.Context, gen uint64, effect Effect) {
	if effect.Dwell && c.cfg.RedirectDwell > 0 {
		timer := time.NewTimer(c.cfg.RedirectDwell)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}

	c.mu.Lock()
	current := gen == c.gen
	c.mu.Unlock()
	if !current {
		return
	}

	if c.nav.Current() != effect.RedirectTo {
		c.nav.Navigate(effect.RedirectTo)
	}
	_ = c.apply(Redirected{}, gen, true)
}
