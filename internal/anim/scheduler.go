// Package anim планирует покадровые колбэки по образцу requestAnimationFrame.
package anim

// FrameID — дескриптор запрошенного кадра. Нулевое значение не выдаётся.
type FrameID uint64

// Scheduler — контракт requestAnimationFrame / cancelAnimationFrame
type Scheduler interface {
	RequestFrame(cb func()) FrameID
	CancelFrame(id FrameID)
}

type request struct {
	id FrameID
	cb func()
}

// FrameQueue — однопоточная очередь кадров. Хост вызывает Pump один раз
// на каждое обновление экрана; колбэки, запрошенные во время кадра N,
// выполняются на кадре N+1.
type FrameQueue struct {
	nextID  FrameID
	pending []request
	running []request
	frame   uint64
}

// NewFrameQueue создаёт пустую очередь
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{nextID: 1}
}

// RequestFrame ставит колбэк на следующий кадр
func (q *FrameQueue) RequestFrame(cb func()) FrameID {
	id := q.nextID
	q.nextID++
	q.pending = append(q.pending, request{id: id, cb: cb})
	return id
}

// CancelFrame снимает колбэк. Неизвестный или уже выполненный id игнорируется.
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// Отмена из колбэка того же кадра
	for i, r := range q.running {
		if r.id == id {
			q.running[i].cb = nil
			return
		}
	}
}

// Pump выполняет колбэки текущего кадра и возвращает их число
func (q *FrameQueue) Pump() int {
	q.frame++
	// Меняем буферы местами, чтобы не аллоцировать на каждом кадре
	q.running, q.pending = q.pending, q.running[:0]

	n := 0
	for i := range q.running {
		cb := q.running[i].cb
		if cb == nil {
			continue
		}
		q.running[i].cb = nil
		cb()
		n++
	}
	q.running = q.running[:0]
	return n
}

// Pending — число колбэков, ожидающих следующего кадра
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Frame — число выполненных вызовов Pump
func (q *FrameQueue) Frame() uint64 {
	return q.frame
}
