package booking

import (
	"testing"
	"time"
)

func validRequest() BookingCreateRequest {
	return BookingCreateRequest{
		EventID:   10,
		Name:      "Alice Attendee",
		Email:     "a@x.com",
		StartTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BookingCreateRequest)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(r *BookingCreateRequest) {},
		},
		{
			name:    "missing event id",
			mutate:  func(r *BookingCreateRequest) { r.EventID = 0 },
			wantErr: "event_id is required",
		},
		{
			name:    "missing name",
			mutate:  func(r *BookingCreateRequest) { r.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "missing email",
			mutate:  func(r *BookingCreateRequest) { r.Email = "" },
			wantErr: "email is required",
		},
		{
			name:    "malformed email",
			mutate:  func(r *BookingCreateRequest) { r.Email = "not-an-email" },
			wantErr: "email is invalid",
		},
		{
			name:    "zero start time",
			mutate:  func(r *BookingCreateRequest) { r.StartTime = time.Time{} },
			wantErr: "start_time and end_time are required",
		},
		{
			name:    "zero end time",
			mutate:  func(r *BookingCreateRequest) { r.EndTime = time.Time{} },
			wantErr: "start_time and end_time are required",
		},
		{
			name: "end before start",
			mutate: func(r *BookingCreateRequest) {
				r.StartTime, r.EndTime = r.EndTime, r.StartTime
			},
			wantErr: "start_time must be before end_time",
		},
		{
			name: "equal start and end",
			mutate: func(r *BookingCreateRequest) {
				r.EndTime = r.StartTime
			},
			wantErr: "start_time must be before end_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
