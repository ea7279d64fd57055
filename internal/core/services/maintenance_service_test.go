package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

type fakePurger struct {
	n   int64
	err error
}

func (f *fakePurger) DeleteExpired(context.Context) (int64, error) {
	return f.n, f.err
}

type fakeExpirer struct {
	n      int64
	err    error
	called bool
	today  time.Time
}

func (f *fakeExpirer) DeactivateExpired(_ context.Context, today time.Time) (int64, error) {
	f.called = true
	f.today = today
	return f.n, f.err
}

func TestMaintenanceRunOnce(t *testing.T) {
	errPurge := errors.New("purge failed")
	errExpire := errors.New("expire failed")

	tests := []struct {
		name    string
		purger  *fakePurger
		expirer *fakeExpirer
		want    MaintenanceReport
		wantErr error
	}{
		{
			name:    "both jobs succeed",
			purger:  &fakePurger{n: 3},
			expirer: &fakeExpirer{n: 2},
			want:    MaintenanceReport{TokensPurged: 3, AdsDeactivated: 2},
		},
		{
			name:    "purge failure still expires ads",
			purger:  &fakePurger{err: errPurge},
			expirer: &fakeExpirer{n: 1},
			want:    MaintenanceReport{AdsDeactivated: 1},
			wantErr: errPurge,
		},
		{
			name:    "first error wins",
			purger:  &fakePurger{err: errPurge},
			expirer: &fakeExpirer{err: errExpire},
			wantErr: errPurge,
		},
		{
			name:    "expire failure",
			purger:  &fakePurger{n: 5},
			expirer: &fakeExpirer{err: errExpire},
			want:    MaintenanceReport{TokensPurged: 5},
			wantErr: errExpire,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewMaintenanceService("@daily", tt.purger, tt.expirer)
			if err != nil {
				t.Fatalf("NewMaintenanceService: %v", err)
			}

			report, err := svc.RunOnce(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if report != tt.want {
				t.Errorf("report = %+v, want %+v", report, tt.want)
			}
			if !tt.expirer.called {
				t.Error("ad expiry did not run")
			}
			if !tt.expirer.today.Equal(today()) {
				t.Errorf("today = %v, want %v", tt.expirer.today, today())
			}
		})
	}
}

func TestMaintenanceInvalidSchedule(t *testing.T) {
	if _, err := NewMaintenanceService("every tuesday", &fakePurger{}, &fakeExpirer{}); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestMaintenanceStartStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	svc, err := NewMaintenanceService("30 3 * * *", &fakePurger{}, &fakeExpirer{})
	if err != nil {
		t.Fatalf("NewMaintenanceService: %v", err)
	}
	svc.Start()
	svc.Stop()
}
