// Package service implements the core business logic for serving rate history.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ratehistory/internal/rates"
	"ratehistory/internal/repository"
)

// DefaultCurrency is used when a query names no currency.
const DefaultCurrency = "USD"

// RateServiceInterface defines the operations available to the HTTP layer and the worker.
type RateServiceInterface interface {
	Currencies(ctx context.Context) ([]string, error)
	Series(ctx context.Context, q SeriesQuery) (*SeriesResult, error)
	Snapshot(ctx context.Context, q SnapshotQuery) (*SnapshotResult, error)
	Status(ctx context.Context) StatusResult
	Refresh(ctx context.Context) (*RefreshResult, error)
	RequestRefresh(ctx context.Context) (string, error)
}

// DocumentLoader fetches and decodes the current rate document.
// Invalidate drops any cached copy so the next Load reads the upstream.
type DocumentLoader interface {
	Load(ctx context.Context) (*rates.Document, error)
	Invalidate(ctx context.Context) error
	SourceName() string
}

// TaskEnqueuer schedules an asynchronous refresh.
// Implementations return ErrRefreshPending when one is already queued.
type TaskEnqueuer interface {
	EnqueueRefreshTask(ctx context.Context, requestID string) error
}

type loadedDocument struct {
	doc      *rates.Document
	source   string
	loadedAt time.Time
}

// RateService answers queries from an in-memory document that is swapped
// atomically on refresh. Queries never block on a refresh.
type RateService struct {
	loader   DocumentLoader
	repo     repository.SheetRepository
	enqueuer TaskEnqueuer
	log      *zap.SugaredLogger
	now      func() time.Time

	current   atomic.Pointer[loadedDocument]
	refreshMu sync.Mutex
}

// NewRateService creates a new RateService. repo and enqueuer may be nil,
// which disables persistence and asynchronous refreshes respectively.
func NewRateService(loader DocumentLoader, repo repository.SheetRepository, enqueuer TaskEnqueuer, logger *zap.SugaredLogger) *RateService {
	return &RateService{
		loader:   loader,
		repo:     repo,
		enqueuer: enqueuer,
		log:      logger,
		now:      time.Now,
	}
}

// Refresh reloads the document from the upstream, bypassing the source cache,
// persists it and makes it current. A persistence failure is logged and does
// not prevent the swap.
func (s *RateService) Refresh(ctx context.Context) (*RefreshResult, error) {
	return s.refresh(ctx, true)
}

func (s *RateService) refresh(ctx context.Context, bypassCache bool) (*RefreshResult, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	started := s.now()
	if bypassCache {
		if err := s.loader.Invalidate(ctx); err != nil {
			s.log.Warnw("Failed to invalidate source cache", "source", s.loader.SourceName(), "error", err)
		}
	}
	doc, err := s.loader.Load(ctx)
	if err != nil {
		s.log.Errorw("Rate document load failed", "source", s.loader.SourceName(), "error", err)
		return nil, fmt.Errorf("load rate document: %w", err)
	}

	res := &RefreshResult{
		Source: s.loader.SourceName(),
		Sheets: doc.Len(),
	}
	res.First, _ = doc.First()
	res.Last, _ = doc.Last()

	if s.repo != nil {
		stored, err := s.repo.LatestDate(ctx)
		if err != nil {
			s.log.Warnw("Failed to read latest stored sheet", "error", err)
		} else {
			res.StoredLast = stored
		}
		if !stored.IsZero() && res.Last.Before(stored) {
			s.log.Warnw("Source document ends before the stored history",
				"last", rates.FormatDate(res.Last),
				"stored_last", rates.FormatDate(stored),
			)
		}

		saved, err := s.repo.SaveDocument(ctx, doc)
		if err != nil {
			s.log.Warnw("Failed to persist rate document", "error", err)
		} else {
			res.Persisted = saved
		}
	}

	s.current.Store(&loadedDocument{doc: doc, source: res.Source, loadedAt: s.now()})
	res.Duration = s.now().Sub(started)

	s.log.Infow("Rate document refreshed",
		"source", res.Source,
		"sheets", res.Sheets,
		"persisted", res.Persisted,
		"first", rates.FormatDate(res.First),
		"last", rates.FormatDate(res.Last),
	)
	return res, nil
}

// Bootstrap makes a document available at startup. It loads through the
// source cache first and falls back to the last persisted document.
func (s *RateService) Bootstrap(ctx context.Context) error {
	_, refreshErr := s.refresh(ctx, false)
	if refreshErr == nil {
		return nil
	}
	if s.repo == nil {
		return fmt.Errorf("%w: %w", ErrNoDocument, refreshErr)
	}

	doc, err := s.repo.LoadDocument(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoDocument, errors.Join(refreshErr, err))
	}
	if doc == nil {
		return fmt.Errorf("%w: %w", ErrNoDocument, refreshErr)
	}

	s.current.Store(&loadedDocument{doc: doc, source: "repository", loadedAt: s.now()})
	last, _ := doc.Last()
	s.log.Warnw("Serving persisted rate document",
		"sheets", doc.Len(),
		"last", rates.FormatDate(last),
		"refresh_error", refreshErr,
	)
	return nil
}

func (s *RateService) document() (*loadedDocument, error) {
	cur := s.current.Load()
	if cur == nil {
		return nil, ErrNoDocument
	}
	return cur, nil
}

// Currencies lists every currency code present in the current document.
func (s *RateService) Currencies(_ context.Context) ([]string, error) {
	cur, err := s.document()
	if err != nil {
		return nil, err
	}
	return cur.doc.Currencies(), nil
}

// Series extracts per-currency rates between the query bounds. Missing bounds
// are filled by resolveRange.
func (s *RateService) Series(_ context.Context, q SeriesQuery) (*SeriesResult, error) {
	cur, err := s.document()
	if err != nil {
		return nil, err
	}

	from, to := s.resolveRange(q.From, q.To)
	currencies := q.Currencies
	if len(currencies) == 0 {
		currencies = []string{DefaultCurrency}
	}

	series, err := rates.ExtractSeries(cur.doc, from, to, currencies)
	if err != nil {
		return nil, err
	}
	tick, err := rates.TickUnit(from, to)
	if err != nil {
		return nil, err
	}

	return &SeriesResult{
		From:     rates.Day(from),
		To:       rates.Day(to),
		TickUnit: tick,
		Series:   series,
	}, nil
}

// resolveRange fills missing bounds with a one-year window. Without bounds the
// window ends today; with one bound it is anchored on that bound, and a
// from-only window stops at today when today falls inside it.
func (s *RateService) resolveRange(from, to time.Time) (time.Time, time.Time) {
	switch {
	case from.IsZero() && to.IsZero():
		return rates.DefaultRange(s.now())
	case from.IsZero():
		return to.AddDate(-1, 0, 0), to
	case to.IsZero():
		to = from.AddDate(1, 0, 0)
		if today := rates.Day(s.now()); today.Before(to) && !today.Before(rates.Day(from)) {
			to = today
		}
		return from, to
	}
	return from, to
}

// Snapshot returns the rates in force on the query date, which defaults to today.
func (s *RateService) Snapshot(_ context.Context, q SnapshotQuery) (*SnapshotResult, error) {
	cur, err := s.document()
	if err != nil {
		return nil, err
	}

	date := q.Date
	if date.IsZero() {
		date = s.now()
	}
	currencies := q.Currencies
	if len(currencies) == 0 {
		currencies = []string{DefaultCurrency}
	}

	return &SnapshotResult{
		Requested: rates.Day(date),
		Snapshot:  rates.ExtractSnapshot(cur.doc, date, currencies),
	}, nil
}

// Status describes the currently served document.
func (s *RateService) Status(_ context.Context) StatusResult {
	cur := s.current.Load()
	if cur == nil {
		return StatusResult{}
	}
	st := StatusResult{
		Loaded:   true,
		Source:   cur.source,
		Sheets:   cur.doc.Len(),
		LoadedAt: cur.loadedAt,
	}
	st.First, _ = cur.doc.First()
	st.Last, _ = cur.doc.Last()
	return st
}

// RequestRefresh enqueues an asynchronous refresh and returns its request id.
func (s *RateService) RequestRefresh(ctx context.Context) (string, error) {
	if s.enqueuer == nil {
		return "", ErrInternalQueue
	}

	id := uuid.New().String()
	if err := s.enqueuer.EnqueueRefreshTask(ctx, id); err != nil {
		if errors.Is(err, ErrRefreshPending) {
			return "", ErrRefreshPending
		}
		s.log.Errorw("Failed to enqueue refresh task", "request_id", id, "error", err)
		return "", ErrInternalQueue
	}

	s.log.Infow("Enqueued refresh task", "request_id", id)
	return id, nil
}
