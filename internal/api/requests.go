package api

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"ratehistory/internal/rates"
	"ratehistory/internal/service"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// SeriesRequest holds the raw query of GET /rates/series.
type SeriesRequest struct {
	From       string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To         string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Currencies string `query:"currencies" validate:"omitempty,max=512"`
}

// SnapshotRequest holds the raw query of GET /rates/snapshot.
type SnapshotRequest struct {
	Date       string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Currencies string `query:"currencies" validate:"omitempty,max=512"`
}

func parseSeriesRequest(q url.Values) (service.SeriesQuery, error) {
	req := SeriesRequest{
		From:       q.Get("from"),
		To:         q.Get("to"),
		Currencies: q.Get("currencies"),
	}
	if err := validate.Struct(req); err != nil {
		return service.SeriesQuery{}, validationError(err)
	}

	from, err := optionalDate(req.From)
	if err != nil {
		return service.SeriesQuery{}, err
	}
	to, err := optionalDate(req.To)
	if err != nil {
		return service.SeriesQuery{}, err
	}
	codes, err := service.ParseCurrencies(req.Currencies)
	if err != nil {
		return service.SeriesQuery{}, err
	}
	return service.SeriesQuery{From: from, To: to, Currencies: codes}, nil
}

func parseSnapshotRequest(q url.Values) (service.SnapshotQuery, error) {
	req := SnapshotRequest{
		Date:       q.Get("date"),
		Currencies: q.Get("currencies"),
	}
	if err := validate.Struct(req); err != nil {
		return service.SnapshotQuery{}, validationError(err)
	}

	date, err := optionalDate(req.Date)
	if err != nil {
		return service.SnapshotQuery{}, err
	}
	codes, err := service.ParseCurrencies(req.Currencies)
	if err != nil {
		return service.SnapshotQuery{}, err
	}
	return service.SnapshotQuery{Date: date, Currencies: codes}, nil
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return rates.ParseDate(s)
}

// errInvalidQuery marks a query that failed struct validation.
var errInvalidQuery = errors.New("invalid query")

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", errInvalidQuery, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "datetime":
			msgs = append(msgs, fe.Field()+" must be a YYYY-MM-DD date")
		case "max":
			msgs = append(msgs, fe.Field()+" is too long")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return fmt.Errorf("%w: %s", errInvalidQuery, strings.Join(msgs, "; "))
}
