package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/kukypng/oliver/internal/audit/domain"
	budgetdomain "github.com/kukypng/oliver/internal/budget/domain"
	"github.com/kukypng/oliver/internal/clock"
	"github.com/kukypng/oliver/internal/events"
	"github.com/kukypng/oliver/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultValidityDays = 15

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	budgetrepo budgetdomain.Repository
	audit      auditdomain.Service
	outbox     *events.Outbox
}

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Repo   budgetdomain.Repository
	Audit  auditdomain.Service
	Outbox *events.Outbox
}

func NewService(p ServiceParam) budgetdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("budget.service"),
		genID: p.GenID,
		clock: p.Clock,

		budgetrepo: p.Repo,
		audit:      p.Audit,
		outbox:     p.Outbox,
	}
}

func (s *Service) Create(ctx context.Context, req budgetdomain.CreateBudgetRequest) (*budgetdomain.Budget, error) {
	now := s.clock.Now()

	budget := &budgetdomain.Budget{
		ID:                    s.genID.Generate(),
		DeviceModel:           strings.TrimSpace(req.DeviceModel),
		DeviceType:            strings.TrimSpace(req.DeviceType),
		Issue:                 strings.TrimSpace(req.Issue),
		CashPriceCents:        req.CashPriceCents,
		InstallmentPriceCents: req.InstallmentPrice,
		Installments:          req.Installments,
		WarrantyMonths:        req.WarrantyMonths,
		ClientName:            strings.TrimSpace(req.ClientName),
		ClientPhone:           strings.TrimSpace(req.ClientPhone),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	validUntil, err := resolveValidUntil(req.ValidUntil, now)
	if err != nil {
		return nil, err
	}
	budget.ValidUntil = validUntil

	if err := validate(budget); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.budgetrepo.Insert(ctx, tx, budget); err != nil {
			return err
		}
		return s.publishEvent(ctx, tx, events.EventBudgetCreated, budget)
	}); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditdomain.Entry{
		Action:     auditdomain.ActionBudgetCreated,
		TargetType: "budget",
		TargetID:   budget.ID.String(),
		Metadata:   map[string]any{"device_model": budget.DeviceModel},
	})

	return budget, nil
}

func (s *Service) List(ctx context.Context, req budgetdomain.ListBudgetsRequest) (budgetdomain.ListBudgetsResponse, error) {
	page := pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize}.Normalize()
	offset := pagination.DecodeToken(page.PageToken)

	budgets, total, err := s.budgetrepo.List(ctx, s.db, budgetdomain.ListFilter{
		Search:  req.Search,
		Trashed: req.Trashed,
		Offset:  offset,
		Limit:   page.PageSize,
	})
	if err != nil {
		return budgetdomain.ListBudgetsResponse{}, err
	}

	resp := budgetdomain.ListBudgetsResponse{Budgets: budgets}
	resp.TotalSize = total
	if next := offset + len(budgets); int64(next) < total {
		resp.NextPageToken = pagination.EncodeToken(next)
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*budgetdomain.Budget, error) {
	budgetID, err := budgetdomain.ParseID(id)
	if err != nil {
		return nil, err
	}

	budget, err := s.budgetrepo.FindByID(ctx, s.db, budgetID, false)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, budgetdomain.ErrNotFound
	}
	return budget, nil
}

func (s *Service) Update(ctx context.Context, req budgetdomain.UpdateBudgetRequest) (*budgetdomain.Budget, error) {
	budget, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.DeviceModel != nil {
		budget.DeviceModel = strings.TrimSpace(*req.DeviceModel)
	}
	if req.DeviceType != nil {
		budget.DeviceType = strings.TrimSpace(*req.DeviceType)
	}
	if req.Issue != nil {
		budget.Issue = strings.TrimSpace(*req.Issue)
	}
	if req.CashPriceCents != nil {
		budget.CashPriceCents = *req.CashPriceCents
	}
	if req.InstallmentPrice != nil {
		budget.InstallmentPriceCents = req.InstallmentPrice
	}
	if req.Installments != nil {
		budget.Installments = req.Installments
	}
	if req.WarrantyMonths != nil {
		budget.WarrantyMonths = *req.WarrantyMonths
	}
	if req.ClientName != nil {
		budget.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.ClientPhone != nil {
		budget.ClientPhone = strings.TrimSpace(*req.ClientPhone)
	}
	if req.ValidUntil != nil {
		validUntil, err := parseValidUntil(*req.ValidUntil)
		if err != nil {
			return nil, err
		}
		budget.ValidUntil = validUntil
	}

	if err := validate(budget); err != nil {
		return nil, err
	}

	budget.UpdatedAt = s.clock.Now()
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.budgetrepo.Update(ctx, tx, budget); err != nil {
			return err
		}
		return s.publishEvent(ctx, tx, events.EventBudgetUpdated, budget)
	}); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditdomain.Entry{
		Action:     auditdomain.ActionBudgetUpdated,
		TargetType: "budget",
		TargetID:   budget.ID.String(),
	})

	return budget, nil
}

func (s *Service) MoveToTrash(ctx context.Context, id string) (*budgetdomain.Budget, error) {
	budgetID, err := budgetdomain.ParseID(id)
	if err != nil {
		return nil, err
	}

	budget, err := s.budgetrepo.FindByID(ctx, s.db, budgetID, true)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, budgetdomain.ErrNotFound
	}
	if budget.IsTrashed() {
		return nil, budgetdomain.ErrAlreadyTrashed
	}

	now := s.clock.Now()
	budget.DeletedAt = &now
	budget.UpdatedAt = now
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.budgetrepo.Update(ctx, tx, budget); err != nil {
			return err
		}
		return s.publishEvent(ctx, tx, events.EventBudgetTrashed, budget)
	}); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditdomain.Entry{
		Action:     auditdomain.ActionBudgetTrashed,
		TargetType: "budget",
		TargetID:   budget.ID.String(),
	})

	return budget, nil
}

func (s *Service) Restore(ctx context.Context, id string) (*budgetdomain.Budget, error) {
	budgetID, err := budgetdomain.ParseID(id)
	if err != nil {
		return nil, err
	}

	budget, err := s.budgetrepo.FindByID(ctx, s.db, budgetID, true)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, budgetdomain.ErrNotFound
	}
	if !budget.IsTrashed() {
		return nil, budgetdomain.ErrNotTrashed
	}

	budget.DeletedAt = nil
	budget.UpdatedAt = s.clock.Now()
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.budgetrepo.Update(ctx, tx, budget); err != nil {
			return err
		}
		return s.publishEvent(ctx, tx, events.EventBudgetRestored, budget)
	}); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditdomain.Entry{
		Action:     auditdomain.ActionBudgetRestored,
		TargetType: "budget",
		TargetID:   budget.ID.String(),
	})

	return budget, nil
}

func (s *Service) Purge(ctx context.Context, id string) error {
	budgetID, err := budgetdomain.ParseID(id)
	if err != nil {
		return err
	}

	budget, err := s.budgetrepo.FindByID(ctx, s.db, budgetID, true)
	if err != nil {
		return err
	}
	if budget == nil {
		return budgetdomain.ErrNotFound
	}
	if !budget.IsTrashed() {
		return budgetdomain.ErrNotTrashed
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.budgetrepo.Delete(ctx, tx, budgetID); err != nil {
			return err
		}
		return s.publishEvent(ctx, tx, events.EventBudgetPurged, budget)
	}); err != nil {
		return err
	}

	s.audit.Record(ctx, auditdomain.Entry{
		Action:     auditdomain.ActionBudgetPurged,
		TargetType: "budget",
		TargetID:   budget.ID.String(),
	})

	return nil
}

func (s *Service) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	purged, err := s.budgetrepo.DeleteTrashedBefore(ctx, s.db, cutoff)
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		s.log.Info("purged expired budgets",
			zap.Int64("count", purged),
			zap.Time("cutoff", cutoff),
		)
		s.audit.Record(ctx, auditdomain.Entry{
			Action:     auditdomain.ActionBudgetPurged,
			TargetType: "trash",
			Metadata:   map[string]any{"count": purged, "cutoff": cutoff.Format(time.RFC3339)},
		})
	}
	return purged, nil
}

// publishEvent stores the outbox row inside the caller's transaction so a
// failed event write rolls the mutation back with it.
func (s *Service) publishEvent(ctx context.Context, tx *gorm.DB, eventType string, budget *budgetdomain.Budget) error {
	payload := events.BudgetPayload{
		BudgetID:    budget.ID.String(),
		DeviceModel: budget.DeviceModel,
	}
	if err := s.outbox.PublishTx(ctx, tx, events.Event{
		Type:    eventType,
		Payload: payload.ToMap(),
	}); err != nil {
		s.log.Warn("outbox publish failed",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func validate(budget *budgetdomain.Budget) error {
	if budget.DeviceModel == "" {
		return budgetdomain.ErrInvalidDeviceModel
	}
	if budget.CashPriceCents < 0 {
		return budgetdomain.ErrInvalidPrice
	}
	if budget.InstallmentPriceCents != nil && *budget.InstallmentPriceCents < 0 {
		return budgetdomain.ErrInvalidPrice
	}
	if budget.Installments != nil && *budget.Installments < 1 {
		return budgetdomain.ErrInvalidInstallments
	}
	if budget.WarrantyMonths < 0 {
		return budgetdomain.ErrInvalidWarranty
	}
	return nil
}

func resolveValidUntil(raw *string, now time.Time) (time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return now.AddDate(0, 0, defaultValidityDays), nil
	}
	return parseValidUntil(*raw)
}

func parseValidUntil(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed.UTC(), nil
	}
	return time.Time{}, budgetdomain.ErrInvalidValidUntil
}
