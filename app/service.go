package app

import (
	"fmt"

	"github.com/pontem-network/flashloan-loadgen/stats"
)

// Service is the interface implemented by the components that
// report their own stats
type Service interface {
	// Name returns a human readable identifier for a service.
	// Each service should have a unique name
	Name() string

	// Stats returns the current stats of the service
	Stats() stats.Metrics
}

// Services holds the services that report stats, by name
type Services map[string]Service

// NewServices returns a new instance of services
func NewServices() Services {
	return Services(make(map[string]Service))
}

// Add adds the service by name to the collection of
// services
func (s Services) Add(service Service) {
	if _, ok := s[service.Name()]; ok {
		panic(fmt.Sprintf("Services already contains service %s", service.Name()))
	}

	s[service.Name()] = service
}

// Get returns the service referred by that name if found
func (s Services) Get(name string) (Service, bool) {
	service, ok := s[name]
	return service, ok
}

// Stats returns the stats of all the services
func (s Services) Stats() map[string]stats.Metrics {
	group := make(map[string]stats.Metrics)

	for _, service := range s {
		group[service.Name()] = service.Stats()
	}

	return group
}
