package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/kukypng/oliver/internal/audit/domain"
	"github.com/kukypng/oliver/internal/auditcontext"
	"github.com/kukypng/oliver/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	auditrepo auditdomain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  auditdomain.Repository
}

func NewService(p ServiceParam) auditdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,

		auditrepo: p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, entry auditdomain.Entry) {
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		return
	}

	actorType, actorID := auditcontext.ActorFromContext(ctx)
	if actorType == "" {
		actorType = string(auditdomain.ActorTypeSystem)
	}

	metadata := datatypes.JSONMap{}
	for key, value := range entry.Metadata {
		if strings.TrimSpace(key) == "" {
			continue
		}
		metadata[key] = value
	}
	if requestID := auditcontext.RequestIDFromContext(ctx); requestID != "" {
		metadata["request_id"] = requestID
	}

	record := &auditdomain.AuditLog{
		ID:         s.genID.Generate(),
		ActorType:  actorType,
		Action:     action,
		TargetType: entry.TargetType,
		Metadata:   metadata,
		CreatedAt:  s.clock.Now(),
	}
	if actorID != "" {
		record.ActorID = &actorID
	}
	if entry.TargetID != "" {
		targetID := entry.TargetID
		record.TargetID = &targetID
	}
	if ip := auditcontext.IPAddressFromContext(ctx); ip != "" {
		record.IPAddress = &ip
	}
	if ua := auditcontext.UserAgentFromContext(ctx); ua != "" {
		record.UserAgent = &ua
	}

	if err := s.auditrepo.Insert(ctx, s.db, record); err != nil {
		s.log.Warn("audit insert failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func (s *Service) List(ctx context.Context, filter auditdomain.ListFilter) ([]*auditdomain.AuditLog, error) {
	return s.auditrepo.List(ctx, s.db, filter)
}
