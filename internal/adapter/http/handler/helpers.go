package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/urbancabz/booking-system/internal/service/auth"

	t "github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/uuid"
	"github.com/urbancabz/booking-system/pkg/validator"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return errors.New("failed to encode json")
	}

	js = append(js, '\n')

	maps.Copy(w.Header(), headers)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	// Limit the size of the request body to 1MB.
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			return fmt.Errorf("invalid unmarshal error: %w", err)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

// readIDParam parses the {id} path segment as a UUID.
func readIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.UUID{}, errors.New("invalid id parameter")
	}
	return id, nil
}

func readString(qs url.Values, key, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	return s
}

func readInt(qs url.Values, key string, defaultValue int, v *validator.Validator) int {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}
	return i
}

// readDate parses an optional YYYY-MM-DD value.
func readDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return parsed, nil
}

// checkTrip validates the trip addresses and date window: pickup and drop
// must differ, pickup must not be in the past, and a return date must not
// be before pickup. Date checks are day-granular.
func checkTrip(v *validator.Validator, from, to string, pickupDate time.Time, returnDate *time.Time) {
	if from != "" && to != "" {
		same := strings.EqualFold(strings.TrimSpace(from), strings.TrimSpace(to))
		v.Check(!same, "to", "must differ from the pickup address")
	}

	if !pickupDate.IsZero() {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, pickupDate.Location())
		v.Check(!pickupDate.Before(today), "pickup_date", "must not be in the past")
	}

	if returnDate != nil && !returnDate.IsZero() && !pickupDate.IsZero() {
		v.Check(!returnDate.Before(pickupDate), "return_date", "must not be before the pickup date")
	}
}

// GetCode maps domain errors to HTTP status codes.
func GetCode(err error) int {
	switch {
	case IsOneOf(err, t.ErrUnknownRideType, t.ErrOrderAmountZero):
		return http.StatusBadRequest
	case IsOneOf(err, auth.ErrInvalidCredentials, auth.ErrInvalidToken, auth.ErrExpToken):
		return http.StatusUnauthorized
	case IsOneOf(err, t.ErrSignatureMismatch):
		return http.StatusPaymentRequired
	case IsOneOf(err, t.ErrBookingNotFound, t.ErrVehicleNotFound, t.ErrUserNotFound, t.ErrLocationNotFound, t.ErrRouteNotFound, t.ErrNotFound):
		return http.StatusNotFound
	case IsOneOf(err, auth.ErrNotUniqueEmail, t.ErrEditConflict):
		return http.StatusConflict
	case IsOneOf(err, t.ErrInvalidTransition, t.ErrCustomerNotNotified, t.ErrBlankCancellationReason, t.ErrBookingTerminal):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func IsOneOf(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
