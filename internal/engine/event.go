package engine

// ListenerID identifies a subscription so it can be removed later.
type ListenerID int

// Event is a multi-cast event with no argument.
type Event struct {
	EventWithArg[struct{}]
}

// AddListener adds a callback to be invoked when the event fires.
func (e *Event) AddListener(callback func()) ListenerID {
	if callback == nil {
		return 0
	}
	return e.EventWithArg.AddListener(func(struct{}) { callback() })
}

func (e *Event) Invoke() {
	e.EventWithArg.Invoke(struct{}{})
}

// EventWithArg is a multi-cast event carrying one argument. Listeners run in
// subscription order.
type EventWithArg[T any] struct {
	listeners []listener[T]
	nextID    ListenerID
}

type listener[T any] struct {
	id ListenerID
	fn func(T)
}

func (e *EventWithArg[T]) AddListener(callback func(T)) ListenerID {
	if callback == nil {
		return 0
	}
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: e.nextID, fn: callback})
	return e.nextID
}

// RemoveListener drops the subscription with the given id.
func (e *EventWithArg[T]) RemoveListener(id ListenerID) bool {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls every listener. Listeners added during dispatch wait for the
// next Invoke.
func (e *EventWithArg[T]) Invoke(arg T) {
	ls := append([]listener[T](nil), e.listeners...)
	for _, l := range ls {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) ListenerCount() int {
	return len(e.listeners)
}
