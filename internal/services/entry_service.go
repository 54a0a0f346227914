package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"receipts/internal/amqp"
	"receipts/internal/cache"
	"receipts/internal/core"
	applog "receipts/internal/log"
	"receipts/internal/report"
	"receipts/internal/store"
)

var (
	ErrNothingToShare  = errors.New("no entries to share")
	ErrSharingDisabled = errors.New("receipt sharing is not configured")
)

// ReceiptPublisher hands a rendered receipt to a mailer.
type ReceiptPublisher interface {
	PublishReceipt(ctx context.Context, msg *amqp.ReceiptMessage) error
}

// EntryService orchestrates the entry store, report building and sharing.
type EntryService struct {
	store     store.EntryStore
	builder   *report.Builder
	reports   cache.Cache[report.Report]
	ids       core.IDGenerator
	publisher ReceiptPublisher
	logger    *applog.Logger
}

type Option func(*EntryService)

// WithPublisher enables Share. A nil publisher leaves sharing disabled.
func WithPublisher(p ReceiptPublisher) Option {
	return func(s *EntryService) { s.publisher = p }
}

func WithIDGenerator(ids core.IDGenerator) Option {
	return func(s *EntryService) { s.ids = ids }
}

func WithReportCache(c cache.Cache[report.Report]) Option {
	return func(s *EntryService) { s.reports = c }
}

func WithLogger(l *applog.Logger) Option {
	return func(s *EntryService) { s.logger = l }
}

func NewEntryService(st store.EntryStore, builder *report.Builder, opts ...Option) *EntryService {
	s := &EntryService{
		store:   st,
		builder: builder,
		ids:     core.UUIDGenerator{},
		logger:  applog.New(applog.DefaultConfig()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(applog.ComponentEntries)
	return s
}

// Add validates the request and stores Quantity identical entries.
func (s *EntryService) Add(ctx context.Context, req core.AddRequest) ([]core.Entry, error) {
	entries, err := req.Entries(s.ids)
	if err != nil {
		s.logger.WarnContext(ctx, "Rejected add request",
			applog.NewFields().WithEntry(req.Type, req.Date, req.Amount, req.Quantity).
				WithOperation(applog.OpValidate).WithError(err).ToSlice()...)
		return nil, err
	}
	if err := s.store.Append(ctx, entries...); err != nil {
		return nil, fmt.Errorf("append entries: %w", err)
	}

	s.logger.InfoContext(ctx, "Entries added",
		applog.NewFields().WithEntry(entries[0].Type, entries[0].Date.ISO(), entries[0].Amount.String(), len(entries)).
			WithOperation(applog.OpAppend).ToSlice()...)
	return entries, nil
}

func (s *EntryService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Entry deleted", applog.FieldEntryID, id, applog.FieldOperation, applog.OpDelete)
	return nil
}

func (s *EntryService) List(ctx context.Context) []core.Entry {
	return s.store.List(ctx)
}

// Receipt builds the report for the current entries. ok is false when
// there is nothing to report. Reports are cached per store revision.
func (s *EntryService) Receipt(ctx context.Context) (report.Report, bool) {
	rev := s.store.Revision()
	key := strconv.FormatUint(rev, 10)
	if s.reports != nil {
		if r, ok := s.reports.Get(key); ok {
			s.logger.DebugContext(ctx, "Report served from cache", applog.FieldRevision, rev, applog.FieldCacheHit, true)
			return r, true
		}
	}

	r, ok := s.builder.Build(s.store.List(ctx))
	if ok && s.reports != nil {
		s.reports.Set(key, r)
	}
	return r, ok
}

// SharingEnabled reports whether a publisher is configured.
func (s *EntryService) SharingEnabled() bool {
	return s.publisher != nil
}

// Share publishes the rendered receipt for mailing.
func (s *EntryService) Share(ctx context.Context, rc report.Recipients) error {
	if s.publisher == nil {
		return ErrSharingDisabled
	}
	r, ok := s.Receipt(ctx)
	if !ok {
		return ErrNothingToShare
	}
	entries := 0
	for _, d := range r.Days {
		for _, l := range d.Lines {
			entries += l.Count
		}
	}
	msg := amqp.NewReceiptMessage(rc.From, rc.To, r.Text(rc), r.TotalText, entries)
	if err := s.publisher.PublishReceipt(ctx, msg); err != nil {
		s.logger.LogError(ctx, "Failed to publish receipt", err, applog.OpShare, nil)
		return fmt.Errorf("publish receipt: %w", err)
	}
	return nil
}

// Formatter exposes the report formatter for rendering single amounts.
func (s *EntryService) Formatter() *report.Formatter {
	return s.builder.Formatter()
}
