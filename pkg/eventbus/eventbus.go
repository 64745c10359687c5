// Package eventbus - минимальная in-process шина событий с типизированной нагрузкой.
// Доставка синхронная, в порядке подписки; межпроцессной доставки нет.
package eventbus

import "sync"

// Handler обработчик события
type Handler[T any] func(event T)

// Bus шина событий одного типа
type Bus[T any] struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[uint64]Handler[T]
	order    []uint64
}

// New создает пустую шину
func New[T any]() *Bus[T] {
	return &Bus[T]{handlers: make(map[uint64]Handler[T])}
}

// Subscribe регистрирует обработчик и возвращает функцию отписки (повторный вызов безопасен)
func (b *Bus[T]) Subscribe(h Handler[T]) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[id] = h
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish вызывает всех подписчиков. Обработчики вызываются вне блокировки,
// поэтому могут сами подписываться и отписываться.
func (b *Bus[T]) Publish(event T) {
	b.mu.RLock()
	hs := make([]Handler[T], 0, len(b.order))
	for _, id := range b.order {
		hs = append(hs, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range hs {
		h(event)
	}
}

// Len количество активных подписчиков
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}
