package server

import "github.com/samber/lo"

// Participant is one connected user session.
type Participant struct {
	ID    string
	Name  string
	Color string
	X     float64
	Y     float64

	client *Client
}

// registry maps participant ids to their live sessions. It is not safe for
// concurrent use; the Hub guards it.
type registry struct {
	participants map[string]*Participant
}

func newRegistry() *registry {
	return &registry{participants: make(map[string]*Participant)}
}

func (r *registry) add(p *Participant) {
	r.participants[p.ID] = p
}

func (r *registry) get(id string) (*Participant, bool) {
	p, ok := r.participants[id]
	return p, ok
}

// lookup returns the participant owned by c, if c is still registered.
func (r *registry) lookup(c *Client) (*Participant, bool) {
	if c == nil {
		return nil, false
	}
	p, ok := r.participants[c.id]
	if !ok || p.client != c {
		return nil, false
	}
	return p, true
}

func (r *registry) remove(id string) {
	delete(r.participants, id)
}

func (r *registry) contains(id string) bool {
	_, ok := r.participants[id]
	return ok
}

func (r *registry) len() int {
	return len(r.participants)
}

// clientsExcept returns every registered client other than exclude, which
// may be nil.
func (r *registry) clientsExcept(exclude *Client) []*Client {
	return lo.FilterMap(lo.Values(r.participants), func(p *Participant, _ int) (*Client, bool) {
		return p.client, p.client != exclude
	})
}

func (r *registry) snapshot() []Participant {
	return lo.Map(lo.Values(r.participants), func(p *Participant, _ int) Participant {
		return *p
	})
}

func (r *registry) clear() []*Client {
	clients := r.clientsExcept(nil)
	r.participants = make(map[string]*Participant)
	return clients
}
