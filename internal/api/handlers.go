package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"ratehistory/internal/rates"
	"ratehistory/internal/service"
)

// CurrenciesResponse lists the currencies present in the rate document.
type CurrenciesResponse struct {
	Currencies []string `json:"currencies" example:"GBP,JPY,USD"`
}

// PointResponse is one dated rate.
type PointResponse struct {
	Date string `json:"date" example:"2018-07-10"`
	Rate string `json:"rate" example:"1.172"`
}

// SeriesResponse represents the response for a series query
type SeriesResponse struct {
	From     string                     `json:"from" example:"2018-07-10"`
	To       string                     `json:"to" example:"2018-07-16"`
	TickUnit int                        `json:"tick_unit" example:"1"`
	Series   map[string][]PointResponse `json:"series"`
}

// SnapshotResponse represents the response for a snapshot query. Date is the
// sheet the rates come from and is omitted when no sheet qualifies.
type SnapshotResponse struct {
	Requested string            `json:"requested" example:"2018-07-14"`
	Date      string            `json:"date,omitempty" example:"2018-07-12"`
	Rates     map[string]string `json:"rates"`
}

// RefreshResponse represents the response for a refresh request
type RefreshResponse struct {
	RequestID string `json:"request_id" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// StatusResponse describes the served document.
type StatusResponse struct {
	Loaded   bool   `json:"loaded" example:"true"`
	Source   string `json:"source,omitempty" example:"bsi"`
	Sheets   int    `json:"sheets" example:"5120"`
	First    string `json:"first,omitempty" example:"2007-01-01"`
	Last     string `json:"last,omitempty" example:"2026-10-16"`
	LoadedAt string `json:"loaded_at,omitempty" example:"2026-10-16T16:30:05Z"`
}

// HandleCurrencies godoc
// @Summary List currencies
// @Description Returns every currency code present in the loaded rate document, sorted.
// @Tags rates
// @Produce json
// @Success 200 {object} CurrenciesResponse
// @Failure 503 {object} ErrorResponse "Rate document not loaded"
// @Router /currencies [get]
func HandleCurrencies(svc service.RateServiceInterface, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes, err := svc.Currencies(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, CurrenciesResponse{Currencies: codes})
	}
}

// HandleSeries godoc
// @Summary Rate series for a date range
// @Description Returns, per requested currency, the published rates dated within [from, to]. Missing bounds default to the year ending today; missing currencies default to USD. Codes match exactly.
// @Tags rates
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string false "End date (YYYY-MM-DD, inclusive)"
// @Param currencies query string false "Comma separated currency codes" example(USD,GBP)
// @Success 200 {object} SeriesResponse
// @Failure 400 {object} ErrorResponse "Invalid date, range or currency code"
// @Failure 503 {object} ErrorResponse "Rate document not loaded"
// @Router /rates/series [get]
func HandleSeries(svc service.RateServiceInterface, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseSeriesRequest(r.URL.Query())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		res, err := svc.Series(r.Context(), q)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		resp := SeriesResponse{
			From:     rates.FormatDate(res.From),
			To:       rates.FormatDate(res.To),
			TickUnit: res.TickUnit,
			Series:   make(map[string][]PointResponse, len(res.Series)),
		}
		for code, points := range res.Series {
			out := make([]PointResponse, 0, len(points))
			for _, p := range points {
				out = append(out, PointResponse{Date: rates.FormatDate(p.Date), Rate: formatRate(p.Rate)})
			}
			resp.Series[code] = out
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleSnapshot godoc
// @Summary Rates in force on a date
// @Description Returns the requested rates from the latest sheet dated on or before the given date (default today). Weekends and holidays resolve to the previous business day.
// @Tags rates
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param currencies query string false "Comma separated currency codes" example(USD,GBP)
// @Success 200 {object} SnapshotResponse
// @Failure 400 {object} ErrorResponse "Invalid date or currency code"
// @Failure 503 {object} ErrorResponse "Rate document not loaded"
// @Router /rates/snapshot [get]
func HandleSnapshot(svc service.RateServiceInterface, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseSnapshotRequest(r.URL.Query())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		res, err := svc.Snapshot(r.Context(), q)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		resp := SnapshotResponse{
			Requested: rates.FormatDate(res.Requested),
			Rates:     make(map[string]string, len(res.Snapshot.Rates)),
		}
		if !res.Snapshot.Empty() {
			resp.Date = rates.FormatDate(res.Snapshot.Date)
		}
		for code, v := range res.Snapshot.Rates {
			resp.Rates[code] = formatRate(v)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleRequestRefresh godoc
// @Summary Request asynchronous document refresh
// @Description Enqueues a reload of the rate document from the upstream source. Returns immediately with a request_id.
// @Tags rates
// @Produce json
// @Success 202 {object} RefreshResponse "Refresh accepted"
// @Failure 409 {object} ErrorResponse "A refresh is already pending"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /rates/refresh [post]
func HandleRequestRefresh(svc service.RateServiceInterface, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := svc.RequestRefresh(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusAccepted, RefreshResponse{RequestID: id})
	}
}

// HandleStatus godoc
// @Summary Loaded document status
// @Tags rates
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /rates/status [get]
func HandleStatus(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := svc.Status(r.Context())
		resp := StatusResponse{Loaded: st.Loaded, Source: st.Source, Sheets: st.Sheets}
		if st.Loaded {
			resp.LoadedAt = st.LoadedAt.UTC().Format(timeLayout)
		}
		if !st.First.IsZero() {
			resp.First = rates.FormatDate(st.First)
			resp.Last = rates.FormatDate(st.Last)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeServiceError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, errInvalidQuery),
		errors.Is(err, service.ErrInvalidCurrencyCode),
		errors.Is(err, rates.ErrMalformedDate):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, rates.ErrInvalidRange):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "from must not be after to"})
	case errors.Is(err, service.ErrNoDocument):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "Rate document not loaded"})
	case errors.Is(err, service.ErrRefreshPending):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "Refresh already pending"})
	default:
		logger.Errorw("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
	}
}
