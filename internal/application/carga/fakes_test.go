package carga_test

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/entity"
	"github.com/Marton-art/proyecto-integrado.ignore/internal/domain/repository"
)

// ── Subsidiarias en memoria ──────────────────────────────────────────────────

type fakeFinder struct {
	byFiscalID map[string]*entity.Subsidiaria
	calls      int
	err        error
}

func newFakeFinder(subs ...*entity.Subsidiaria) *fakeFinder {
	f := &fakeFinder{byFiscalID: make(map[string]*entity.Subsidiaria)}
	for _, s := range subs {
		f.byFiscalID[s.IdentificacionFiscal] = s
	}
	return f
}

func (f *fakeFinder) GetByIdentificacionFiscal(_ context.Context, fiscalID string) (*entity.Subsidiaria, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byFiscalID[fiscalID], nil
}

// ── Calificaciones en memoria (repositorio + TxRunner) ────────────────────────

var _ repository.CalificacionRepository = (*fakeStore)(nil)

type fakeStore struct {
	byKey     map[entity.ClaveUnica]*entity.Calificacion
	writes    int
	upsertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{byKey: make(map[entity.ClaveUnica]*entity.Calificacion)}
}

func (s *fakeStore) RunCalificacion(_ context.Context, fn func(repo repository.CalificacionRepository) error) error {
	return fn(s)
}

func (s *fakeStore) FindCreador(_ context.Context, key entity.ClaveUnica) (string, bool, error) {
	c, ok := s.byKey[key]
	if !ok {
		return "", false, nil
	}
	return c.UsuarioCreador, true, nil
}

func (s *fakeStore) Upsert(_ context.Context, key entity.ClaveUnica, c *entity.Calificacion) (bool, error) {
	if s.upsertErr != nil {
		return false, s.upsertErr
	}
	s.writes++
	cp := *c
	if prev, ok := s.byKey[key]; ok {
		cp.ID = prev.ID
		cp.UsuarioCreador = prev.UsuarioCreador
		cp.CreatedAt = prev.CreatedAt
		s.byKey[key] = &cp
		c.ID = prev.ID
		return false, nil
	}
	s.byKey[key] = &cp
	return true, nil
}

func (s *fakeStore) only() *entity.Calificacion {
	for _, c := range s.byKey {
		return c
	}
	return nil
}

func (s *fakeStore) Create(context.Context, *entity.Calificacion) error { return errors.New("no usado") }
func (s *fakeStore) GetByID(context.Context, string) (*entity.Calificacion, error) {
	return nil, errors.New("no usado")
}
func (s *fakeStore) Update(context.Context, *entity.Calificacion) error { return errors.New("no usado") }
func (s *fakeStore) Delete(context.Context, string) error { return errors.New("no usado") }
func (s *fakeStore) List(context.Context, int, int) ([]repository.CalificacionListItem, error) {
	return nil, errors.New("no usado")
}
func (s *fakeStore) Count(context.Context) (int, error) { return len(s.byKey), nil }
func (s *fakeStore) CountCreatedSince(context.Context, time.Time) (int, error) {
	return 0, errors.New("no usado")
}

// ── Archivos de prueba ───────────────────────────────────────────────────────

func csvFile(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}
