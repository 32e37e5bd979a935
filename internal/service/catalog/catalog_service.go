// Package catalog serves the reference data the booking desk works with:
// agents, suppliers, excursions, vehicles and guests.
package catalog

import (
	"context"
	"log"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/Domenick1991/safaribooking/internal/kafka"
)

// Entity is a catalog record.
type Entity interface {
	Key() string
	Validate() error
	Matches(query string) bool
}

// Patch is a partial update of T.
type Patch[T any] interface {
	Apply(*T)
	Validate() error
}

// Repository is the slice of a store table the catalog needs.
type Repository[T any, P any] interface {
	List() []T
	Get(id string) (T, bool)
	Add(v T) T
	Update(id string, patch P) (T, bool)
	Delete(id string) bool
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type UseCase[T any, P any] interface {
	List(ctx context.Context, query string) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, input T) (*T, error)
	Update(ctx context.Context, id string, patch P) (*T, error)
	Delete(ctx context.Context, id string) error
}

type Service[T Entity, P Patch[T]] struct {
	entity   string
	repo     Repository[T, P]
	producer Producer
	topic    string
}

type ServiceOption[T Entity, P Patch[T]] func(*Service[T, P])

// WithEvents publishes "<entity>_created|updated|deleted" events to topic.
func WithEvents[T Entity, P Patch[T]](producer Producer, topic string) ServiceOption[T, P] {
	return func(s *Service[T, P]) {
		s.producer = producer
		s.topic = topic
	}
}

// NewService names the entity for errors and events ("agent", "guest", ...).
func NewService[T Entity, P Patch[T]](entity string, repo Repository[T, P], opts ...ServiceOption[T, P]) *Service[T, P] {
	s := &Service[T, P]{entity: entity, repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every record whose display fields contain query, ignoring case.
func (s *Service[T, P]) List(_ context.Context, query string) ([]T, error) {
	rows := s.repo.List()
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if row.Matches(query) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *Service[T, P]) Get(_ context.Context, id string) (*T, error) {
	row, ok := s.repo.Get(id)
	if !ok {
		return nil, domain.NotFoundError{Resource: s.entity, ID: id}
	}
	return &row, nil
}

func (s *Service[T, P]) Create(ctx context.Context, input T) (*T, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	created := s.repo.Add(input)
	s.publish(ctx, "created", created.Key(), created)
	return &created, nil
}

func (s *Service[T, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	current, ok := s.repo.Get(id)
	if !ok {
		return nil, domain.NotFoundError{Resource: s.entity, ID: id}
	}
	// Patches validate only the fields they carry; check the merged record too.
	patch.Apply(&current)
	if err := current.Validate(); err != nil {
		return nil, err
	}
	updated, ok := s.repo.Update(id, patch)
	if !ok {
		return nil, domain.NotFoundError{Resource: s.entity, ID: id}
	}
	s.publish(ctx, "updated", id, updated)
	return &updated, nil
}

func (s *Service[T, P]) Delete(ctx context.Context, id string) error {
	if !s.repo.Delete(id) {
		return domain.NotFoundError{Resource: s.entity, ID: id}
	}
	s.publish(ctx, "deleted", id, nil)
	return nil
}

func (s *Service[T, P]) publish(ctx context.Context, action, id string, record any) {
	if s.producer == nil || s.topic == "" {
		return
	}
	ev, err := kafka.NewEntityEvent(s.entity, action, id, record)
	if err != nil {
		log.Printf("[CATALOG] action=%s entity=%s id=%s msg=encode event: %v", action, s.entity, id, err)
		return
	}
	if err := s.producer.Publish(ctx, s.topic, id, ev); err != nil {
		log.Printf("[CATALOG] action=%s entity=%s id=%s msg=publish failed: %v", action, s.entity, id, err)
	}
}

var _ UseCase[domain.Agent, domain.AgentPatch] = (*Service[domain.Agent, domain.AgentPatch])(nil)
