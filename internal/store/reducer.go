package store

type Record interface {
	GetID() string
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// State - локальная копия коллекции, отражающая последний известный ответ сервера
type State[T Record] struct {
	Phase   Phase
	Items   []T
	Current *T
	Error   string
}

// Event - изменение состояния; применяется только через Reduce
type Event interface {
	event()
}

type (
	Started     struct{}
	FetchFailed struct{ Message string }
	Removed     struct{ ID string }

	MutationFailed struct{ Message string }
	ErrorShown     struct{ Message string }

	Fetched[T Record]  struct{ Items []T }
	Replaced[T Record] struct{ Item T }
	Added[T Record]    struct{ Item T }
	Selected[T Record] struct{ Item T }
)

func (Started) event()        {}
func (FetchFailed) event()    {}
func (Removed) event()        {}
func (MutationFailed) event() {}
func (ErrorShown) event()     {}
func (Fetched[T]) event()     {}
func (Replaced[T]) event()    {}
func (Added[T]) event()       {}
func (Selected[T]) event()    {}

// Reduce - чистая функция: входное состояние и его срез не изменяются
func Reduce[T Record](s State[T], e Event) State[T] {
	switch ev := e.(type) {
	case Started:
		return State[T]{Phase: PhaseLoading, Current: s.Current}

	case Fetched[T]:
		items := make([]T, len(ev.Items))
		copy(items, ev.Items)
		return State[T]{Phase: PhaseLoaded, Items: items, Current: s.Current}

	case FetchFailed:
		return State[T]{Phase: PhaseFailed, Current: s.Current, Error: ev.Message}

	case Replaced[T]:
		next := s
		next.Items = make([]T, len(s.Items))
		for i, item := range s.Items {
			if item.GetID() == ev.Item.GetID() {
				next.Items[i] = ev.Item
				continue
			}
			next.Items[i] = item
		}
		if s.Current != nil && (*s.Current).GetID() == ev.Item.GetID() {
			next.Current = ptr(ev.Item)
		}
		next.Error = ""
		return next

	case Removed:
		next := s
		next.Items = make([]T, 0, len(s.Items))
		for _, item := range s.Items {
			if item.GetID() != ev.ID {
				next.Items = append(next.Items, item)
			}
		}
		if s.Current != nil && (*s.Current).GetID() == ev.ID {
			next.Current = nil
		}
		next.Error = ""
		return next

	case Added[T]:
		next := s
		next.Items = make([]T, len(s.Items), len(s.Items)+1)
		copy(next.Items, s.Items)
		next.Items = append(next.Items, ev.Item)
		next.Current = ptr(ev.Item)
		next.Error = ""
		return next

	case Selected[T]:
		next := s
		next.Current = ptr(ev.Item)
		next.Error = ""
		return next

	case MutationFailed:
		next := s
		next.Error = ev.Message
		return next

	// ErrorShown сбрасывает только то сообщение, которое уже показано
	case ErrorShown:
		if s.Phase != PhaseLoaded || s.Error != ev.Message {
			return s
		}
		next := s
		next.Error = ""
		return next
	}

	return s
}

func ptr[T any](v T) *T {
	return &v
}
