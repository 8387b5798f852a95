package store

import "kampung-service-server/models"

// Catalog holds the static service list. Entries are immutable for the
// session; there is no mutation surface at all.
type Catalog struct {
	services map[string]models.Service
	order    []string
}

func NewCatalog(services []models.Service) *Catalog {
	c := &Catalog{services: make(map[string]models.Service, len(services))}
	for _, svc := range services {
		c.services[svc.ID] = svc
		c.order = append(c.order, svc.ID)
	}
	return c
}

func (c *Catalog) Get(id string) (models.Service, bool) {
	svc, ok := c.services[id]
	return svc, ok
}

func (c *Catalog) List() []models.Service {
	result := make([]models.Service, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.services[id])
	}
	return result
}

// WorkerDirectory holds the seeded worker profiles, read-only
type WorkerDirectory struct {
	workers map[string]models.Worker
	order   []string
}

func NewWorkerDirectory(workers []models.Worker) *WorkerDirectory {
	d := &WorkerDirectory{workers: make(map[string]models.Worker, len(workers))}
	for _, w := range workers {
		d.workers[w.ID] = w
		d.order = append(d.order, w.ID)
	}
	return d
}

func (d *WorkerDirectory) Get(id string) (models.Worker, bool) {
	w, ok := d.workers[id]
	return w, ok
}

func (d *WorkerDirectory) List() []models.Worker {
	result := make([]models.Worker, 0, len(d.order))
	for _, id := range d.order {
		result = append(result, d.workers[id])
	}
	return result
}

// UserDirectory holds the seeded resident accounts, read-only
type UserDirectory struct {
	users map[string]models.User
}

func NewUserDirectory(users []models.User) *UserDirectory {
	d := &UserDirectory{users: make(map[string]models.User, len(users))}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *UserDirectory) Get(id string) (models.User, bool) {
	u, ok := d.users[id]
	return u, ok
}
