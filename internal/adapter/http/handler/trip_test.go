package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/urbancabz/booking-system/internal/adapter/http/handler/dto"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/internal/service/quote"
	"github.com/urbancabz/booking-system/pkg/logger"
	"github.com/urbancabz/booking-system/pkg/validator"
)

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestCheckTrip(t *testing.T) {
	today := time.Now()
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		from    string
		to      string
		pickup  time.Time
		ret     *time.Time
		wantKey string
	}{
		{"identical addresses", "Delhi", "Delhi", tomorrow, nil, "to"},
		{"addresses differ only by case and spacing", " delhi ", "DELHI", tomorrow, nil, "to"},
		{"past pickup date", "Delhi", "Mumbai", today.AddDate(0, 0, -1), nil, "pickup_date"},
		{"return before pickup", "Delhi", "Mumbai", tomorrow.AddDate(0, 0, 3), datePtr(tomorrow), "return_date"},
		{"valid trip", "Delhi", "Mumbai", tomorrow, datePtr(tomorrow.AddDate(0, 0, 2)), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			checkTrip(v, tt.from, tt.to, tt.pickup, tt.ret)

			if tt.wantKey == "" {
				if !v.Valid() {
					t.Fatalf("valid trip rejected: %v", v.Errors)
				}
				return
			}
			if v.Valid() {
				t.Fatal("invalid trip passed validation")
			}
			if _, ok := v.Errors[tt.wantKey]; !ok {
				t.Errorf("errors = %v, want key %q", v.Errors, tt.wantKey)
			}
		})
	}
}

type fakeQuoteService struct {
	called bool
}

func (f *fakeQuoteService) QuoteTrip(_ context.Context, _, _ string, _ types.RideType, _ time.Time, _ *time.Time) (*quote.Result, error) {
	f.called = true
	return &quote.Result{}, nil
}

func TestCreateQuote_RejectsInvalidTripWindow(t *testing.T) {
	log := logger.InitLogger("test", logger.LevelError)

	tests := []struct {
		name string
		body map[string]string
	}{
		{
			"same pickup and drop",
			map[string]string{
				"from": "Delhi", "to": "Delhi", "ride_type": "ONEWAY",
				"pickup_date": time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
			},
		},
		{
			"past pickup date",
			map[string]string{
				"from": "Delhi", "to": "Mumbai", "ride_type": "ONEWAY",
				"pickup_date": "2020-01-01",
			},
		},
		{
			"return before pickup",
			map[string]string{
				"from": "Delhi", "to": "Mumbai", "ride_type": "ROUNDTRIP",
				"pickup_date": time.Now().AddDate(0, 0, 5).Format("2006-01-02"),
				"return_date": time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeQuoteService{}
			h := NewQuote(svc, log)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/quotes", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			h.CreateQuote(rec, req)

			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", rec.Code)
			}
			if svc.called {
				t.Error("quote service reached despite invalid trip")
			}
		})
	}
}

func TestBookingFromRequest_RejectsInvalidTripWindow(t *testing.T) {
	base := func() dto.BookingRequest {
		return dto.BookingRequest{
			CustomerName:  "Asha",
			CustomerPhone: "+919999000001",
			RideType:      "ROUNDTRIP",
			From:          "Delhi",
			To:            "Mumbai",
			PickupDate:    time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
			ReturnDate:    time.Now().AddDate(0, 0, 4).Format("2006-01-02"),
			VehicleID:     "7d444840-9dc0-11d1-b245-5ffdce74fad2",
		}
	}

	t.Run("valid request passes", func(t *testing.T) {
		_, v := bookingFromRequest(base())
		if !v.Valid() {
			t.Fatalf("valid request rejected: %v", v.Errors)
		}
	})

	t.Run("return before pickup", func(t *testing.T) {
		req := base()
		req.ReturnDate = time.Now().AddDate(0, 0, -2).Format("2006-01-02")
		_, v := bookingFromRequest(req)
		if _, ok := v.Errors["return_date"]; !ok {
			t.Errorf("errors = %v, want return_date", v.Errors)
		}
	})

	t.Run("past pickup", func(t *testing.T) {
		req := base()
		req.PickupDate = "2020-01-01"
		_, v := bookingFromRequest(req)
		if _, ok := v.Errors["pickup_date"]; !ok {
			t.Errorf("errors = %v, want pickup_date", v.Errors)
		}
	})

	t.Run("same pickup and drop", func(t *testing.T) {
		req := base()
		req.To = "Delhi"
		_, v := bookingFromRequest(req)
		if _, ok := v.Errors["to"]; !ok {
			t.Errorf("errors = %v, want to", v.Errors)
		}
	})
}
