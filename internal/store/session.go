package store

import (
	"context"

	"github.com/ibeloyar/backoffice/internal/model"
)

type Gateway[T Record, S any] interface {
	ListAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, record T) (T, error)
	UpdateState(ctx context.Context, record T, state S) (T, error)
	Delete(ctx context.Context, id string) (T, error)
}

// Confirmer - явное подтверждение пользователя перед удалением
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Session связывает шлюз сущности с ее хранилищем: результаты вызовов
// применяются к локальной коллекции без повторной загрузки списка.
type Session[T Record, S any] struct {
	gw     Gateway[T, S]
	store  *Store[T]
	prompt string
}

func NewSession[T Record, S any](gw Gateway[T, S], st *Store[T], deletePrompt string) *Session[T, S] {
	if st == nil {
		st = New[T]()
	}

	return &Session[T, S]{
		gw:     gw,
		store:  st,
		prompt: deletePrompt,
	}
}

func (s *Session[T, S]) State() State[T] {
	return s.store.Snapshot()
}

func (s *Session[T, S]) DeletePrompt() string {
	return s.prompt
}

// Load загружает коллекцию, если она еще не загружена. Ошибка последней
// мутации отдается вместе с состоянием один раз и затем сбрасывается.
func (s *Session[T, S]) Load(ctx context.Context) (State[T], error) {
	if st := s.store.Snapshot(); st.Phase == PhaseLoaded {
		if st.Error != "" {
			s.store.Dispatch(ErrorShown{Message: st.Error})
		}
		return st, nil
	}

	return s.Refresh(ctx)
}

// Refresh всегда перезапрашивает коллекцию. Если интерес к результату пропал
// (контекст отменен), ответ отбрасывается.
func (s *Session[T, S]) Refresh(ctx context.Context) (State[T], error) {
	s.store.Dispatch(Started{})

	items, err := s.gw.ListAll(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return s.store.Snapshot(), ctxErr
	}

	if err != nil {
		return s.store.Dispatch(FetchFailed{Message: model.DisplayMessage(err)}), err
	}

	return s.store.Dispatch(Fetched[T]{Items: items}), nil
}

// Select - чтение для страницы редактирования; ошибка возвращается вызывающему
// и не попадает в состояние списка
func (s *Session[T, S]) Select(ctx context.Context, id string) (T, error) {
	item, err := s.gw.GetByID(ctx, id)
	if err != nil {
		return item, err
	}

	s.store.Dispatch(Selected[T]{Item: item})
	return item, nil
}

func (s *Session[T, S]) Create(ctx context.Context, record T) (T, error) {
	created, err := s.gw.Create(ctx, record)
	if err != nil {
		s.store.Dispatch(MutationFailed{Message: model.DisplayMessage(err)})
		return created, err
	}

	s.store.Dispatch(Added[T]{Item: created})
	return created, nil
}

func (s *Session[T, S]) Update(ctx context.Context, record T) (T, error) {
	updated, err := s.gw.Update(ctx, record)
	if err != nil {
		s.store.Dispatch(MutationFailed{Message: model.DisplayMessage(err)})
		return updated, err
	}

	s.store.Dispatch(Replaced[T]{Item: updated})
	return updated, nil
}

// ChangeState - запись с тем же идентификатором заменяется ответом сервера;
// если такой записи нет, коллекция не меняется
func (s *Session[T, S]) ChangeState(ctx context.Context, record T, state S) (T, error) {
	updated, err := s.gw.UpdateState(ctx, record, state)
	if err != nil {
		s.store.Dispatch(MutationFailed{Message: model.DisplayMessage(err)})
		return updated, err
	}

	s.store.Dispatch(Replaced[T]{Item: updated})
	return updated, nil
}

// Delete вызывает шлюз только после подтверждения. Возвращает false, если пользователь отказался.
func (s *Session[T, S]) Delete(ctx context.Context, id string, c Confirmer) (bool, error) {
	if c == nil || !c.Confirm(s.prompt) {
		return false, nil
	}

	if _, err := s.gw.Delete(ctx, id); err != nil {
		s.store.Dispatch(MutationFailed{Message: model.DisplayMessage(err)})
		return true, err
	}

	s.store.Dispatch(Removed{ID: id})
	return true, nil
}

// Find ищет запись в локальной коллекции без обращения к серверу
func (s *Session[T, S]) Find(id string) (T, bool) {
	for _, item := range s.store.Snapshot().Items {
		if item.GetID() == id {
			return item, true
		}
	}

	var zero T
	return zero, false
}
