// Package dashboard implements the patient dashboard view/controller: the
// displayed city, the doctor and hospital load states, and the page model
// rendered from them.
package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/meetocure/patient-dashboard/internal/models"
	"github.com/meetocure/patient-dashboard/internal/remote"
	"github.com/meetocure/patient-dashboard/internal/storage"
)

// Preferences is the read side of the preference store.
type Preferences interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
}

// Snapshot is a consistent copy of a dashboard's state.
type Snapshot struct {
	City      string                            `json:"city"`
	Doctors   remote.LoadState[models.Doctor]   `json:"doctors"`
	Hospitals remote.LoadState[models.Hospital] `json:"hospitals"`
	// Settled is true when neither list is loading.
	Settled bool `json:"settled"`
}

// Dashboard is one mounted instance of the page.
type Dashboard struct {
	prefs     Preferences
	Doctors   *Section[models.Doctor]
	Hospitals *Section[models.Hospital]

	mu        sync.Mutex
	city      string
	mounted   bool
	unmounted bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New creates an unmounted dashboard showing defaultCity until a stored city is read.
func New(prefs Preferences, doctors Source[models.Doctor], hospitals Source[models.Hospital], defaultCity string) *Dashboard {
	d := &Dashboard{
		prefs: prefs,
		city:  defaultCity,
		subs:  make(map[int]chan struct{}),
	}
	d.Doctors = newSection(doctors, d.notify)
	d.Hospitals = newSection(hospitals, d.notify)
	return d
}

// Mount syncs the city and starts both list loads. Only the first call has
// any effect, and a dashboard that was already unmounted never loads.
func (d *Dashboard) Mount(ctx context.Context) {
	d.mu.Lock()
	if d.mounted || d.unmounted {
		d.mu.Unlock()
		return
	}
	d.mounted = true
	loadCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.wg.Add(2)
	d.mu.Unlock()

	d.SyncCity(loadCtx)
	token := d.lookup(loadCtx, storage.KeyToken)

	// Loading is entered synchronously so Wait never observes the pre-mount state.
	startDoctors := d.Doctors.begin(loadCtx, token)
	startHospitals := d.Hospitals.begin(loadCtx, token)

	go func() {
		defer d.wg.Done()
		if startDoctors {
			d.Doctors.finish(loadCtx, token)
		}
	}()
	go func() {
		defer d.wg.Done()
		if startHospitals {
			d.Hospitals.finish(loadCtx, token)
		}
	}()
}

// Unmount cancels in-flight loads, waits for them to return and closes all
// subscriptions. Results arriving after Unmount are discarded.
func (d *Dashboard) Unmount() {
	d.mu.Lock()
	if d.unmounted {
		d.mu.Unlock()
		return
	}
	d.unmounted = true
	cancel := d.cancel
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	d.wg.Wait()

	d.subMu.Lock()
	for _, ch := range d.subs {
		close(ch)
	}
	d.subs = nil
	d.subMu.Unlock()
}

// SyncCity re-reads the stored city and displays it when present. An absent
// value or a store error keeps the current city.
func (d *Dashboard) SyncCity(ctx context.Context) {
	city := d.lookup(ctx, storage.KeySelectedCity)
	if city == "" {
		return
	}
	d.mu.Lock()
	changed := d.city != city
	d.city = city
	d.mu.Unlock()
	if changed {
		d.notify()
	}
}

// City returns the displayed city.
func (d *Dashboard) City() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.city
}

func (d *Dashboard) lookup(ctx context.Context, key string) string {
	if d.prefs == nil {
		return ""
	}
	value, found, err := d.prefs.Lookup(ctx, key)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read preference", "key", key, "error", err)
		return ""
	}
	if !found {
		return ""
	}
	return value
}

// Snapshot returns the current state.
func (d *Dashboard) Snapshot() Snapshot {
	s := Snapshot{
		City:      d.City(),
		Doctors:   d.Doctors.State(),
		Hospitals: d.Hospitals.State(),
	}
	s.Settled = !s.Doctors.IsLoading() && !s.Hospitals.IsLoading()
	return s
}

// Wait blocks until neither list is loading or ctx is done.
func (d *Dashboard) Wait(ctx context.Context) error {
	changes, unsubscribe := d.Subscribe()
	defer unsubscribe()
	for {
		if d.Snapshot().Settled {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-changes:
			if !ok {
				return nil
			}
		}
	}
}

// Subscribe returns a channel that receives a value after state changes.
// Notifications coalesce; the channel is closed on Unmount or unsubscribe.
func (d *Dashboard) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	d.subMu.Lock()
	if d.subs == nil {
		d.subMu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := d.nextSub
	d.nextSub++
	d.subs[id] = ch
	d.subMu.Unlock()

	return ch, func() {
		d.subMu.Lock()
		defer d.subMu.Unlock()
		if c, ok := d.subs[id]; ok {
			delete(d.subs, id)
			close(c)
		}
	}
}

func (d *Dashboard) notify() {
	d.subMu.Lock()
	defer d.subMu.Unlock()
	for _, ch := range d.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
