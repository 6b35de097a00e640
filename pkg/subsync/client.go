package subsync

import "context"

// Client собирает SDK для одного актора: кеш, опрос и действия.
type Client struct {
	Store      *Store
	Syncer     *Syncer
	Dispatcher *Dispatcher

	transport Transport
	actor     Actor
}

func NewClient(transport Transport, actor Actor, cfg Config) *Client {
	store := NewStore()
	return &Client{
		Store:      store,
		Syncer:     NewSyncer(transport, store, actor, cfg),
		Dispatcher: NewDispatcher(transport, store, actor, cfg),
		transport:  transport,
		actor:      actor,
	}
}

// Load выполняет полную выборку и заменяет кеш. Вызывается при входе
// на экран и при смене вкладки; дальше изменения доезжают опросом.
func (c *Client) Load(ctx context.Context, statusFilter string) error {
	subs, err := c.transport.ListSubmissions(ctx, c.actor, statusFilter)
	if err != nil {
		return err
	}
	c.Store.SetFilter(statusFilter)
	c.Store.Reset(subs)
	return nil
}
