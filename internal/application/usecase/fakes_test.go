package usecase_test

import (
	"context"
	"time"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/repository"
)

// ── Subsidiarias en memoria ──────────────────────────────────────────────────

type memSubsidiarias struct {
	byID map[string]*entity.Subsidiaria
}

func newMemSubsidiarias(subs ...*entity.Subsidiaria) *memSubsidiarias {
	m := &memSubsidiarias{byID: map[string]*entity.Subsidiaria{}}
	for _, s := range subs {
		m.byID[s.ID] = s
	}
	return m
}

func (m *memSubsidiarias) Create(_ context.Context, s *entity.Subsidiaria) error {
	for _, e := range m.byID {
		if e.IdentificacionFiscal == s.IdentificacionFiscal {
			return domain.ErrDuplicate
		}
	}
	m.byID[s.ID] = s
	return nil
}

func (m *memSubsidiarias) GetByID(_ context.Context, id string) (*entity.Subsidiaria, error) {
	return m.byID[id], nil
}

func (m *memSubsidiarias) GetByIdentificacionFiscal(_ context.Context, fiscalID string) (*entity.Subsidiaria, error) {
	for _, s := range m.byID {
		if s.IdentificacionFiscal == fiscalID {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memSubsidiarias) List(_ context.Context, limit, offset int) ([]*entity.Subsidiaria, error) {
	var out []*entity.Subsidiaria
	for _, s := range m.byID {
		out = append(out, s)
	}
	return out, nil
}

// ── Calificaciones en memoria ────────────────────────────────────────────────

var _ repository.CalificacionRepository = (*memCalificaciones)(nil)

type memCalificaciones struct {
	byID  map[string]*entity.Calificacion
	order []string
	since time.Time
	subs  *memSubsidiarias
}

func newMemCalificaciones(subs *memSubsidiarias) *memCalificaciones {
	return &memCalificaciones{byID: map[string]*entity.Calificacion{}, subs: subs}
}

func (m *memCalificaciones) Create(_ context.Context, c *entity.Calificacion) error {
	cp := *c
	m.byID[c.ID] = &cp
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memCalificaciones) GetByID(_ context.Context, id string) (*entity.Calificacion, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// Update como el UPDATE de PostgreSQL: creador y created_at quedan como estaban.
func (m *memCalificaciones) Update(_ context.Context, c *entity.Calificacion) error {
	prev, ok := m.byID[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *c
	cp.UsuarioCreador = prev.UsuarioCreador
	cp.CreatedAt = prev.CreatedAt
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCalificaciones) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memCalificaciones) List(_ context.Context, limit, offset int) ([]repository.CalificacionListItem, error) {
	var out []repository.CalificacionListItem
	for _, id := range m.order {
		c, ok := m.byID[id]
		if !ok {
			continue
		}
		item := repository.CalificacionListItem{Calificacion: c, CreadorEmail: "ana@holding.cl"}
		if s := m.subs.byID[c.SubsidiariaID]; s != nil {
			item.SubsidiariaName = s.NombreLegal
			item.SubsidiariaRUT = s.IdentificacionFiscal
		}
		out = append(out, item)
	}
	return out, nil
}

func (m *memCalificaciones) Count(context.Context) (int, error) { return len(m.byID), nil }

func (m *memCalificaciones) CountCreatedSince(_ context.Context, since time.Time) (int, error) {
	m.since = since
	n := 0
	for _, c := range m.byID {
		if !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *memCalificaciones) FindCreador(context.Context, entity.ClaveUnica) (string, bool, error) {
	return "", false, nil
}

func (m *memCalificaciones) Upsert(context.Context, entity.ClaveUnica, *entity.Calificacion) (bool, error) {
	return false, nil
}
