package subsync

import (
	"context"
	"sync"
	"time"

	"promolink_backend/internal/logger"
)

// Syncer периодически опрашивает сервер и вливает изменения в Store.
//
// Курсор since двигается только после успешного тика и только на локальный
// момент ПЕРЕД запросом: изменения, случившиеся на сервере во время
// обработки запроса, попадут в следующий тик. Лучше получить запись
// дважды, чем потерять её.
type Syncer struct {
	transport Transport
	store     *Store
	actor     Actor
	interval  time.Duration

	mu         sync.Mutex
	since      time.Time
	visible    bool
	running    bool
	generation uint64
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func NewSyncer(transport Transport, store *Store, actor Actor, cfg Config) *Syncer {
	return &Syncer{
		transport: transport,
		store:     store,
		actor:     actor,
		interval:  cfg.pollInterval(),
		visible:   true,
	}
}

// Start запускает цикл опроса. Повторный Start без Stop - no-op.
func (s *Syncer) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.generation++
	gen := s.generation
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(runCtx, gen)
}

// Stop останавливает цикл. Ответ запроса, находящегося в полёте,
// будет отброшен: поколение уже сменилось.
func (s *Syncer) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.generation++
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
}

// SetVisible управляет опросом: невидимый экран не ходит в сеть.
func (s *Syncer) SetVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = visible
}

// Since возвращает текущий курсор опроса.
func (s *Syncer) Since() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.since
}

// SyncNow выполняет один тик вне расписания (pull-to-refresh).
func (s *Syncer) SyncNow(ctx context.Context) error {
	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()
	return s.tick(ctx, gen)
}

func (s *Syncer) run(ctx context.Context, gen uint64) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Первый тик сразу, не дожидаясь интервала
	s.tickIfVisible(ctx, gen)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tickIfVisible(ctx, gen)
		}
	}
}

func (s *Syncer) tickIfVisible(ctx context.Context, gen uint64) {
	s.mu.Lock()
	visible := s.visible
	s.mu.Unlock()
	if !visible {
		return
	}
	if err := s.tick(ctx, gen); err != nil && ctx.Err() == nil {
		// Неудачный тик пропускается, since не двигается
		logger.Warn("submission poll failed", "actor_id", s.actor.ID, "error", err)
	}
}

func (s *Syncer) tick(ctx context.Context, gen uint64) error {
	requestStart := time.Now()

	s.mu.Lock()
	since := s.since
	s.mu.Unlock()

	subs, err := s.transport.PollSubmissions(ctx, s.actor, since)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		// Поздний ответ: Stop/Start успел случиться, результат не нужен
		return nil
	}
	s.store.Merge(subs)
	s.since = requestStart
	return nil
}
